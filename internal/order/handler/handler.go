package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/httpx"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/order"
	"github.com/byron-a/ExciteTrade-backend/internal/order/dto"
)

type OrderHandler struct {
	uc     order.UseCase
	logger *zap.Logger
}

func NewOrderHandler(uc order.UseCase, log *zap.Logger) *OrderHandler {
	return &OrderHandler{uc: uc, logger: log}
}

func (h *OrderHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/orders/checkout", h.Checkout)
	rg.GET("/orders", h.List)
	rg.GET("/orders/:id", h.Get)
	rg.PATCH("/orders/:id/status", h.Advance)
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	var input dto.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	orders, err := h.uc.Checkout(c.Request.Context(), httpx.Principal(c), &input)
	if err != nil {
		h.logger.Error("checkout failed", zap.Error(err))
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"orders": orders})
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.uc.GetOrders(c.Request.Context(), httpx.Principal(c))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.uc.GetOrder(c.Request.Context(), httpx.Principal(c), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *OrderHandler) Advance(c *gin.Context) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o, err := h.uc.AdvanceOrder(c.Request.Context(), c.Param("id"), model.OrderStatus(body.Status))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
