package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/commodity"
	"github.com/byron-a/ExciteTrade-backend/internal/commodity/dto"
	"github.com/byron-a/ExciteTrade-backend/internal/httpx"
)

type CommodityHandler struct {
	uc     commodity.UseCase
	logger *zap.Logger
}

func NewCommodityHandler(uc commodity.UseCase, log *zap.Logger) *CommodityHandler {
	return &CommodityHandler{uc: uc, logger: log}
}

func (h *CommodityHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/commodities/upload", h.Upload)
	rg.GET("/commodities/mine", h.ListMine)
	rg.GET("/commodities/cluster", h.ListForCluster)
}

func (h *CommodityHandler) Upload(c *gin.Context) {
	var input dto.UploadCommodityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	upload, err := h.uc.UploadCommodity(c.Request.Context(), httpx.Principal(c), &input)
	if err != nil {
		h.logger.Error("commodity upload failed", zap.Error(err))
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, upload)
}

func (h *CommodityHandler) ListMine(c *gin.Context) {
	items, err := h.uc.ListForUser(c.Request.Context(), httpx.Principal(c))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commodities": items})
}

func (h *CommodityHandler) ListForCluster(c *gin.Context) {
	items, err := h.uc.ListUploadedForCluster(c.Request.Context(), httpx.Principal(c))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"commodities": items})
}
