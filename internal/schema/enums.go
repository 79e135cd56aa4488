package schema

// Enumerations are closed, case-sensitive string sets.

type PaymentType string

const (
	PaymentTypeCash   PaymentType = "cash"
	PaymentTypeOnline PaymentType = "online"
)

func (p PaymentType) IsValid() bool {
	switch p {
	case PaymentTypeCash, PaymentTypeOnline:
		return true
	}
	return false
}

type DeliveryType string

const (
	DeliveryTypeCourier DeliveryType = "courier"
	DeliveryTypePickup  DeliveryType = "pickup"
	DeliveryTypeRover   DeliveryType = "rover"
)

func (d DeliveryType) IsValid() bool {
	switch d {
	case DeliveryTypeCourier, DeliveryTypePickup, DeliveryTypeRover:
		return true
	}
	return false
}

type OrderStatus string

const (
	OrderStatusCreated         OrderStatus = "created"
	OrderStatusAssembling      OrderStatus = "assembling"
	OrderStatusAssembled       OrderStatus = "assembled"
	OrderStatusPerformerFound  OrderStatus = "performer_found"
	OrderStatusDelivering      OrderStatus = "delivering"
	OrderStatusDeliveryArrived OrderStatus = "delivery_arrived"
	OrderStatusClosed          OrderStatus = "closed"
)

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusAssembling, OrderStatusAssembled,
		OrderStatusPerformerFound, OrderStatusDelivering,
		OrderStatusDeliveryArrived, OrderStatusClosed:
		return true
	}
	return false
}

type OrderResolution string

const (
	OrderResolutionSucceeded OrderResolution = "succeeded"
	OrderResolutionCanceled  OrderResolution = "canceled"
	OrderResolutionFailed    OrderResolution = "failed"
)

func (r OrderResolution) IsValid() bool {
	switch r {
	case OrderResolutionSucceeded, OrderResolutionCanceled, OrderResolutionFailed:
		return true
	}
	return false
}

type OrderActionType string

const (
	OrderActionCancel         OrderActionType = "cancel"
	OrderActionCallCourier    OrderActionType = "call_courier"
	OrderActionRoverOpenHatch OrderActionType = "rover_open_hatch"
)

func (a OrderActionType) IsValid() bool {
	switch a {
	case OrderActionCancel, OrderActionCallCourier, OrderActionRoverOpenHatch:
		return true
	}
	return false
}

type CancelOrderType string

const (
	CancelOrderLogical CancelOrderType = "logical"
	CancelOrderUser    CancelOrderType = "user"
)

func (c CancelOrderType) IsValid() bool {
	switch c {
	case CancelOrderLogical, CancelOrderUser:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFail    PaymentStatus = "fail"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentStatusSuccess, PaymentStatusFail:
		return true
	}
	return false
}
