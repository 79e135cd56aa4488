package domain

type OrderStatus string

const (
	OrderNew OrderStatus = "NEW"
)

// Order is the stored trace of a submission. CreatedOrderID is the caller's
// idempotency key; empty means the caller sent none.
type Order struct {
	CreatedOrderID string
	OrderID        string
	Status         OrderStatus
}
