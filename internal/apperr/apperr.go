// Package apperr classifies errors into the stable codes returned to
// integration partners.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

const (
	KindBadRequest   = "bad_request"
	KindOrderExists  = "grocery_order_id_exists"
	KindUnauthorized = "unauthorized"
	KindTimeout      = "timeout"
	KindCanceled     = "canceled"
	KindInternal     = "internal_error"
)

// RetryAfterSeconds is the retry hint carried by every structured error.
const RetryAfterSeconds = 5

var (
	ErrOrderExists  = errors.New("order already exists")
	ErrUnauthorized = errors.New("unauthorized")
)

// kinder is satisfied by errors that carry their own classification.
type kinder interface {
	Kind() string
}

var kindToStatus = map[string]int{
	KindBadRequest:   http.StatusBadRequest,
	KindOrderExists:  http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindTimeout:      http.StatusGatewayTimeout,
	KindCanceled:     http.StatusRequestTimeout,
}

// DuplicateOrderError reports a second submission for a created_order_id
// that is already stored.
type DuplicateOrderError struct {
	CreatedOrderID string
	Err            error
}

func (e *DuplicateOrderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("order with created_order_id %q already exists", e.CreatedOrderID)
	}
	return e.Err.Error()
}

func (e *DuplicateOrderError) Unwrap() error { return e.Err }

func (e *DuplicateOrderError) Is(target error) bool { return target == ErrOrderExists }

func (e *DuplicateOrderError) Kind() string { return KindOrderExists }

func Kind(err error) string {
	if err == nil {
		return ""
	}
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	switch {
	case errors.Is(err, ErrOrderExists):
		return KindOrderExists
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, context.Canceled):
		return KindCanceled
	default:
		return KindInternal
	}
}

func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if s, ok := kindToStatus[Kind(err)]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// fixedMessages replaces the error text for kinds whose chain describes
// server internals rather than the request.
var fixedMessages = map[string]string{
	KindTimeout:  "request timed out",
	KindCanceled: "request canceled",
	KindInternal: "internal server error",
}

// Public reports whether the error text may be shown to the caller.
func Public(err error) bool {
	if err == nil {
		return false
	}
	_, fixed := fixedMessages[Kind(err)]
	return !fixed
}

// Message is the text sent to the caller for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := fixedMessages[Kind(err)]; ok {
		return msg
	}
	return err.Error()
}
