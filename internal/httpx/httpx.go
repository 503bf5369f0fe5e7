// Package httpx holds the shared gin plumbing used by every handler: the
// identity middleware and the error response envelope.
package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/byron-a/ExciteTrade-backend/internal/apperror"
	"github.com/byron-a/ExciteTrade-backend/internal/auth"
	"github.com/byron-a/ExciteTrade-backend/internal/model"
)

const (
	HeaderUserID   = "X-User-Id"
	HeaderUserType = "X-User-Type"
)

// Identity lifts the gateway-verified identity headers into the request
// context. Requests without them are rejected before any handler runs.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderUserID)
		userType := c.GetHeader(HeaderUserType)
		if id == "" || userType == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
			return
		}
		p := auth.Principal{ID: id, UserType: model.UserType(userType)}
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// Principal reads the identity placed by the middleware.
func Principal(c *gin.Context) auth.Principal {
	p, _ := auth.PrincipalFrom(c.Request.Context())
	return p
}

// Error maps an error onto the taxonomy's HTTP status and writes the
// envelope.
func Error(c *gin.Context, err error) {
	c.JSON(apperror.HTTPStatus(err), gin.H{"error": err.Error()})
}

// RequestLogger logs one line per request the way the rest of the service
// logs: structured, with status and latency.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		log.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
