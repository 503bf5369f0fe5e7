package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/httpx"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/request"
	"github.com/byron-a/ExciteTrade-backend/internal/request/dto"
)

type RequestHandler struct {
	uc     request.UseCase
	logger *zap.Logger
}

func NewRequestHandler(uc request.UseCase, log *zap.Logger) *RequestHandler {
	return &RequestHandler{uc: uc, logger: log}
}

func (h *RequestHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/requests/overview", h.Overview)
	rg.GET("/requests/:id", h.Get)
	rg.POST("/requests/:id/assign", h.AssignUsers)
	rg.PATCH("/requests/:id/status", h.Advance)
	rg.PATCH("/user-requests/:id/status", h.AdvanceUserRequest)
}

func (h *RequestHandler) Get(c *gin.Context) {
	r, err := h.uc.GetRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RequestHandler) AssignUsers(c *gin.Context) {
	var input dto.AssignUsersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := h.uc.AssignUsersToRequest(c.Request.Context(), httpx.Principal(c), c.Param("id"), &input)
	if err != nil {
		h.logger.Error("failed to assign users to request", zap.Error(err))
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RequestHandler) Advance(c *gin.Context) {
	var body dto.AdvanceInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	r, err := h.uc.AdvanceRequest(c.Request.Context(), httpx.Principal(c),
		c.Param("id"), model.OrderStatus(body.Status))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RequestHandler) AdvanceUserRequest(c *gin.Context) {
	var body dto.AdvanceInput
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ur, err := h.uc.AdvanceUserRequest(c.Request.Context(), httpx.Principal(c),
		c.Param("id"), model.UserRequestStatus(body.Status))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ur)
}

func (h *RequestHandler) Overview(c *gin.Context) {
	ov, err := h.uc.Overview(c.Request.Context(), httpx.Principal(c))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ov)
}
