package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lavka-stub/internal/schema"
)

func (s *Server) handleSubmit(c *gin.Context) {
	var req schema.RequestOrder
	if !bind(c, &req) {
		return
	}
	resp, err := s.orders.Submit(c.Request.Context(), &req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// The remaining order endpoints validate their input and answer with fixed
// bodies; they never touch storage.

func (s *Server) handleState(c *gin.Context) {
	var req schema.OrdersStateRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, schema.ExampleOrdersState())
}

func (s *Server) handleCancel(c *gin.Context) {
	var req schema.CancelOrderRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusAccepted, schema.EmptyResponse{})
}

func (s *Server) handleContactObtain(c *gin.Context) {
	var req schema.ContactObtainRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, schema.ExampleContact())
}

func (s *Server) handleSetPaymentStatus(c *gin.Context) {
	var req schema.SetPaymentStatusRequest
	if !bind(c, &req) {
		return
	}
	c.JSON(http.StatusOK, schema.EmptyResponse{})
}

func (s *Server) handleSyncProducts(c *gin.Context) {
	switch {
	case s.sync == nil:
		s.log.Warn("sync-products requested but no WMS is configured")
	case !s.sync.Trigger():
		s.log.Debug("catalog sync already pending")
	}
	c.JSON(http.StatusOK, schema.MessageResponse{Message: "Notification sent in the background"})
}

func (s *Server) handleGetProducts(c *gin.Context) {
	list, err := s.products.ListProducts(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]schema.Product, 0, len(list))
	for _, p := range list {
		out = append(out, schema.Product{ProductID: p.ProductID, ExternalID: p.ExternalID})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleHealth(c *gin.Context) {
	stats := s.db.Health(c.Request.Context())
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}
