package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"lavka-stub/internal/apperr"
	"lavka-stub/internal/domain"
	"lavka-stub/internal/repo"
	"lavka-stub/internal/schema"
)

const (
	orderIDMin = 100000
	orderIDMax = 999999
)

type OrderService interface {
	// Submit records a validated order. A repeated created_order_id yields
	// *apperr.DuplicateOrderError and writes nothing.
	Submit(ctx context.Context, req *schema.RequestOrder) (*schema.OrderResponse, error)
}

type orderService struct {
	orderRepo             repo.OrderRepo
	log                   logrus.FieldLogger
	requireCreatedOrderID bool
	now                   func() time.Time
	randIntN              func(n int) int
}

type Option func(*orderService)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *orderService) { s.log = l }
}

// WithRequireCreatedOrderID rejects submissions without an idempotency key
// instead of treating them as fresh orders.
func WithRequireCreatedOrderID(require bool) Option {
	return func(s *orderService) { s.requireCreatedOrderID = require }
}

func WithClock(now func() time.Time) Option {
	return func(s *orderService) { s.now = now }
}

func WithRand(randIntN func(n int) int) Option {
	return func(s *orderService) { s.randIntN = randIntN }
}

func NewOrderService(orderRepo repo.OrderRepo, opts ...Option) OrderService {
	s := &orderService{
		orderRepo: orderRepo,
		log:       logrus.StandardLogger(),
		now:       time.Now,
		randIntN:  rand.IntN,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewOrderID formats <YYMMDD>-<NNNNNN> with NNNNNN uniform in [100000, 999999].
func NewOrderID(now time.Time, randIntN func(n int) int) string {
	return fmt.Sprintf("%s-%d", now.Format("060102"), orderIDMin+randIntN(orderIDMax-orderIDMin+1))
}

func (s *orderService) Submit(ctx context.Context, req *schema.RequestOrder) (*schema.OrderResponse, error) {
	externalID := req.ExternalID()
	if s.requireCreatedOrderID && externalID == "" {
		return nil, schema.NewValidationError("created_order_id", "required", "field required")
	}

	order := &domain.Order{
		CreatedOrderID: externalID,
		OrderID:        NewOrderID(s.now(), s.randIntN),
		Status:         domain.OrderNew,
	}

	err := s.orderRepo.CreateOrder(ctx, order)
	if errors.Is(err, repo.ErrDuplicateKey) {
		s.logDuplicate(ctx, externalID, order.OrderID)
		return nil, &apperr.DuplicateOrderError{CreatedOrderID: externalID, Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	fields := logrus.Fields{
		"order_id":         order.OrderID,
		"created_order_id": externalID,
		"payment_type":     req.PaymentType,
	}
	if req.Cart != nil {
		fields["items"] = len(req.Cart.Items)
		if total, err := cartValue(req.Cart); err == nil {
			fields["cart_value"] = total.String()
		}
	}
	s.log.WithFields(fields).Info("order submitted")

	return &schema.OrderResponse{OrderID: order.OrderID, Newbie: false}, nil
}

func (s *orderService) logDuplicate(ctx context.Context, externalID, discardedID string) {
	fields := logrus.Fields{
		"created_order_id": externalID,
		"discarded_id":     discardedID,
	}
	existing, err := s.orderRepo.FindByCreatedOrderID(ctx, externalID)
	switch {
	case err != nil:
		fields["lookup_error"] = err.Error()
	case existing != nil:
		fields["existing_order_id"] = existing.OrderID
	}
	s.log.WithFields(fields).Info("duplicate order submission")
}

// cartValue sums quantity * full_price over the cart items.
func cartValue(cart *schema.Cart) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range cart.Items {
		qty, err := item.Quantity.Decimal()
		if err != nil {
			return decimal.Zero, err
		}
		price, err := item.FullPrice.Decimal()
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(qty.Mul(price))
	}
	return total, nil
}
