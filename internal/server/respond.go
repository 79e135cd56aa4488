package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"lavka-stub/internal/apperr"
	"lavka-stub/internal/schema"
)

// bind decodes the JSON body into dst and checks it against the schema.
// On failure the 400 response has already been written.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		abortWithError(c, schema.DecodeError(err))
		return false
	}
	if err := schema.Validate(dst); err != nil {
		abortWithError(c, err)
		return false
	}
	return true
}

func errorBody(err error) schema.ErrorResponse {
	return schema.ErrorResponse{
		Code:    apperr.Kind(err),
		Message: apperr.Message(err),
		Details: schema.ErrorDetails{RetryAfter: apperr.RetryAfterSeconds},
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(apperr.HTTPStatus(err), errorBody(err))
}

// fail logs errors that are not the caller's fault before answering.
func (s *Server) fail(c *gin.Context, err error) {
	if !apperr.Public(err) {
		s.log.WithFields(logrus.Fields{
			"request_id": c.GetString(requestIDKey),
			"path":       c.FullPath(),
		}).WithError(err).Error("request failed")
	}
	abortWithError(c, err)
}

var errPanic = errors.New("panic")

func (s *Server) handlePanic(c *gin.Context, rec any) {
	s.log.WithFields(logrus.Fields{
		"request_id": c.GetString(requestIDKey),
		"panic":      rec,
	}).Error("panic while serving request")
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(errPanic))
}
