package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/byron-a/ExciteTrade-backend/internal/httpx"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
	"github.com/byron-a/ExciteTrade-backend/internal/notification"
)

type NotificationHandler struct {
	repo notification.Repository
}

func NewNotificationHandler(repo notification.Repository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/notifications", h.ListMine)
}

func (h *NotificationHandler) ListMine(c *gin.Context) {
	p := httpx.Principal(c)
	n, err := h.repo.FindByUser(c.Request.Context(), p.ID)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	if n == nil {
		c.JSON(http.StatusOK, gin.H{"messages": model.MessageList{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": n.MessageContainer})
}
