package server

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"lavka-stub/internal/apperr"
	"lavka-stub/internal/schema"
)

const (
	requestIDHeader = "X-Request-Id"
	requestIDKey    = "request_id"
)

// requestID keeps a caller-supplied X-Request-Id or mints one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func requestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"request_id": c.GetString(requestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"bytes":      c.Writer.Size(),
			"duration":   time.Since(start).String(),
		})
		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			entry.Error("request")
		case c.Writer.Status() >= http.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// tokenAuth guards the job routes. A present Authorization header must
// contain one of the allowed tokens among its words. An absent header passes
// unless strict is set.
func tokenAuth(tokens []string, strict bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if strict {
				abortWithError(c, apperr.ErrUnauthorized)
				return
			}
			c.Next()
			return
		}
		for _, word := range strings.Fields(header) {
			if slices.Contains(tokens, word) {
				c.Next()
				return
			}
		}
		abortWithError(c, &schema.ValidationError{Violations: []schema.FieldViolation{{
			Field:   "authorization",
			Rule:    "token",
			Message: "Wrong token",
		}}})
	}
}
