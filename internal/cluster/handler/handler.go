package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/cluster"
	"github.com/byron-a/ExciteTrade-backend/internal/cluster/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/httpx"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

type ClusterHandler struct {
	uc     cluster.UseCase
	logger *zap.Logger
}

func NewClusterHandler(uc cluster.UseCase, log *zap.Logger) *ClusterHandler {
	return &ClusterHandler{uc: uc, logger: log}
}

func (h *ClusterHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/clusters", h.Create)
	rg.GET("/clusters", h.List)
	rg.GET("/clusters/:id", h.Get)
	rg.PUT("/clusters/:id", h.Update)
	rg.DELETE("/clusters/:id", h.Delete)

	rg.POST("/clusters/:id/agent", h.AssignAgent)
	rg.DELETE("/clusters/code/:code/agent/:agentId", h.DetachAgent)
	rg.POST("/clusters/:id/producers", h.AttachProducer)
	rg.DELETE("/clusters/code/:code/producers", h.DetachProducer)
}

func (h *ClusterHandler) Create(c *gin.Context) {
	var input dto.CreateClusterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.uc.CreateCluster(c.Request.Context(), httpx.Principal(c), &input)
	if err != nil {
		h.logger.Error("failed to create cluster", zap.Error(err))
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *ClusterHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	filters := &dto.ClusterFilters{
		Q:         c.Query("q"),
		Location:  c.Query("location"),
		Commodity: c.Query("commodity"),
		Type:      c.Query("type"),
		Page:      page,
		PageSize:  limit,
	}
	items, total, err := h.uc.ListClusters(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clusters": items, "total": total})
}

func (h *ClusterHandler) Get(c *gin.Context) {
	found, err := h.uc.GetCluster(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (h *ClusterHandler) Update(c *gin.Context) {
	var input dto.UpdateClusterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.uc.UpdateCluster(c.Request.Context(), httpx.Principal(c), c.Param("id"), &input)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ClusterHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteCluster(c.Request.Context(), httpx.Principal(c), c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ClusterHandler) AssignAgent(c *gin.Context) {
	var body struct {
		AgentID string `json:"agentId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.uc.AssignAgent(c.Request.Context(), httpx.Principal(c), c.Param("id"), body.AgentID)
	if err != nil {
		h.logger.Error("failed to assign agent", zap.Error(err))
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ClusterHandler) DetachAgent(c *gin.Context) {
	updated, err := h.uc.DetachAgent(c.Request.Context(), httpx.Principal(c), c.Param("code"), c.Param("agentId"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ClusterHandler) AttachProducer(c *gin.Context) {
	var input dto.AttachProducerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.uc.AttachProducer(c.Request.Context(), httpx.Principal(c), c.Param("id"), input.ProducerID)
	if err != nil {
		h.logger.Error("failed to attach producer", zap.Error(err))
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *ClusterHandler) DetachProducer(c *gin.Context) {
	var input dto.DetachInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.uc.DetachProducer(c.Request.Context(), httpx.Principal(c),
		c.Param("code"), model.UserType(input.UserType), input.UserID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
