package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/httpx"
	"github.com/byron-a/ExciteTrade-backend/internal/warehouse"
	"github.com/byron-a/ExciteTrade-backend/internal/warehouse/dto"
)

type WarehouseHandler struct {
	uc     warehouse.UseCase
	logger *zap.Logger
}

func NewWarehouseHandler(uc warehouse.UseCase, log *zap.Logger) *WarehouseHandler {
	return &WarehouseHandler{uc: uc, logger: log}
}

func (h *WarehouseHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/warehouses", h.Create)
	rg.GET("/warehouses", h.List)
	rg.GET("/warehouses/:id", h.Get)
	rg.PUT("/warehouses/:id", h.Update)
	rg.DELETE("/warehouses/:id", h.Delete)
	rg.POST("/warehouses/:id/batches", h.AddBatch)
}

func (h *WarehouseHandler) Create(c *gin.Context) {
	var input dto.CreateWarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.uc.CreateWarehouse(c.Request.Context(), httpx.Principal(c), &input)
	if err != nil {
		h.logger.Error("failed to create warehouse", zap.Error(err))
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WarehouseHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	filters := &dto.WarehouseFilters{
		Q:        c.Query("q"),
		Type:     c.Query("type"),
		Location: c.Query("location"),
		Page:     page,
		PageSize: limit,
	}
	items, total, err := h.uc.ListWarehouses(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"warehouses": items, "total": total})
}

func (h *WarehouseHandler) Get(c *gin.Context) {
	detail, err := h.uc.GetWarehouse(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *WarehouseHandler) Update(c *gin.Context) {
	var input dto.UpdateWarehouseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.uc.UpdateWarehouse(c.Request.Context(), httpx.Principal(c), c.Param("id"), &input)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *WarehouseHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteWarehouse(c.Request.Context(), httpx.Principal(c), c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WarehouseHandler) AddBatch(c *gin.Context) {
	var input dto.AddBatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	batch, err := h.uc.AddCommodityBatch(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		h.logger.Error("failed to add commodity batch", zap.Error(err))
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}
