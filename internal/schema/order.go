// Package schema defines every request and response body of the integration
// API together with the field-level rules enforced before any handler logic
// runs.
package schema

// CartItem is an item inside a cart.
type CartItem struct {
	ID             string         `json:"id" validate:"required"`
	Quantity       DecimalString  `json:"quantity" validate:"required,decimal"`
	FullPrice      DecimalString  `json:"full_price" validate:"required,decimal"`
	Title          *string        `json:"title,omitempty"`
	StackPrice     *DecimalString `json:"stack_price,omitempty" validate:"omitempty,decimal"`
	StackFullPrice *DecimalString `json:"stack_full_price,omitempty" validate:"omitempty,decimal"`
}

type Cart struct {
	Items             []CartItem     `json:"items" validate:"required,dive"`
	CartTotalCost     *DecimalString `json:"cart_total_cost,omitempty" validate:"omitempty,decimal"`
	CartTotalDiscount *DecimalString `json:"cart_total_discount,omitempty" validate:"omitempty,decimal"`
	DeliveryFee       *DecimalString `json:"delivery_fee,omitempty" validate:"omitempty,decimal"`
}

// Point is a geo coordinate. Both fields are required; out-of-range values
// are rejected, never clamped.
type Point struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

func NewPoint(lat, lon float64) *Point {
	return &Point{Lat: &lat, Lon: &lon}
}

// Location is a delivery point plus optional delivery instructions.
type Location struct {
	Position      *Point  `json:"position" validate:"required"`
	PlaceID       string  `json:"place_id" validate:"required"`
	Floor         *string `json:"floor,omitempty"`
	Flat          *string `json:"flat,omitempty"`
	Doorcode      *string `json:"doorcode,omitempty"`
	DoorcodeExtra *string `json:"doorcode_extra,omitempty"`
	Entrance      *string `json:"entrance,omitempty"`
	BuildingName  *string `json:"building_name,omitempty"`
	DoorbellName  *string `json:"doorbell_name,omitempty"`
	LeftAtDoor    *bool   `json:"left_at_door,omitempty"`
	MeetOutside   *bool   `json:"meet_outside,omitempty"`
	NoDoorCall    *bool   `json:"no_door_call,omitempty"`
	PostalCode    *string `json:"postal_code,omitempty"`
	Comment       *string `json:"comment,omitempty"`
}

// RequestOrder is the body of order/submit.
type RequestOrder struct {
	UserID              string      `json:"user_id" validate:"required"`
	UserPhone           string      `json:"user_phone" validate:"required"`
	Cart                *Cart       `json:"cart" validate:"required"`
	PaymentType         PaymentType `json:"payment_type" validate:"required,enum"`
	Location            *Location   `json:"location" validate:"required"`
	CreatedOrderID      *string     `json:"created_order_id,omitempty"`
	UseExternalDelivery *bool       `json:"use_external_delivery,omitempty"`
}

// ExternalID returns created_order_id, or "" when the caller sent none.
func (r *RequestOrder) ExternalID() string {
	if r.CreatedOrderID == nil {
		return ""
	}
	return *r.CreatedOrderID
}

type OrderResponse struct {
	OrderID string `json:"order_id"`
	Newbie  bool   `json:"newbie"`
}

type ErrorDetails struct {
	Cart       *Cart `json:"cart"`
	RetryAfter int   `json:"retry_after"`
}

// ErrorResponse is the body of every structured 4xx/5xx answer.
type ErrorResponse struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details ErrorDetails `json:"details"`
}

type EmptyResponse struct{}
