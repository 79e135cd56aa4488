package schema

type CancelOrderReason struct {
	Type *string `json:"type,omitempty" validate:"omitempty,max=128"`
}

type CancelOrderRequest struct {
	OrderID    string             `json:"order_id" validate:"required"`
	Reason     *CancelOrderReason `json:"reason,omitempty" validate:"omitempty"`
	CancelType *CancelOrderType   `json:"cancel_type,omitempty" validate:"omitempty,enum"`
}

type ContactObtainRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

type ContactObtainResponse struct {
	Phone string `json:"phone"`
	Ext   string `json:"ext"`
}

func ExampleContact() ContactObtainResponse {
	return ContactObtainResponse{Phone: "+966582904515", Ext: "231"}
}

type SetPaymentStatusRequest struct {
	OrderID       string         `json:"order_id" validate:"required"`
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty" validate:"omitempty,enum"`
	PaymentType   *PaymentType   `json:"payment_type,omitempty" validate:"omitempty,enum"`
}

// Product is a catalog entry mirrored from the WMS.
type Product struct {
	ProductID  string `json:"product_id"`
	ExternalID string `json:"external_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
