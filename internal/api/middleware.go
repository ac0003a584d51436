package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/onzacore/distri-api/internal/auth"
	"github.com/onzacore/distri-api/internal/models"
	"github.com/onzacore/distri-api/internal/util"
)

const sessionKey = "session"

// authMiddleware validates the bearer token and attaches the session to the
// request context.
func authMiddleware(tokens *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token requerido"})
			return
		}

		sess, err := tokens.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token inválido"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// requireAdmin rejects non-admin sessions.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionFrom(c).Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Requiere rol de administrador"})
			return
		}
		c.Next()
	}
}

func sessionFrom(c *gin.Context) auth.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(auth.Session); ok {
			return sess
		}
	}
	return auth.Session{}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
