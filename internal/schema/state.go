package schema

import "time"

type OrdersStateRequest struct {
	UserID      *string  `json:"user_id,omitempty"`
	KnownOrders []string `json:"known_orders" validate:"required"`
}

type OrderAction struct {
	Type OrderActionType `json:"type" validate:"required,enum"`
}

type CargoDispatchInfo struct {
	DispatchInBatch *bool `json:"dispatch_in_batch,omitempty"`
	BatchOrderNum   *int  `json:"batch_order_num,omitempty"`
}

type StateCourierInfo struct {
	Name              *string            `json:"name,omitempty"`
	TransportType     *string            `json:"transport_type,omitempty"`
	Position          *Point             `json:"position,omitempty" validate:"omitempty"`
	CargoDispatchInfo *CargoDispatchInfo `json:"cargo_dispatch_info,omitempty"`
	CarNumber         *string            `json:"car_number,omitempty"`
	DriverID          *string            `json:"driver_id,omitempty"`
}

type OrderInfo struct {
	ID             string           `json:"id" validate:"required"`
	ShortOrderID   string           `json:"short_order_id" validate:"required"`
	DeliveryType   DeliveryType     `json:"delivery_type" validate:"required,enum"`
	Status         OrderStatus      `json:"status" validate:"required,enum"`
	DeliveryETAMin int              `json:"delivery_eta_min" validate:"gt=0"`
	Resolution     OrderResolution  `json:"resolution" validate:"required,enum"`
	Actions        []OrderAction    `json:"actions" validate:"required,dive"`
	CourierInfo    StateCourierInfo `json:"courier_info"`
	Address        *Location        `json:"address" validate:"required"`
	DepotLocation  *Point           `json:"depot_location" validate:"required"`
	PromiseMax     time.Time        `json:"promise_max" validate:"required"`
}

type OrdersStateResponse struct {
	GroceryOrders []OrderInfo `json:"grocery_orders" validate:"dive"`
}

// ExampleOrderInfo is the fixed order returned by order/state.
func ExampleOrderInfo() OrderInfo {
	return OrderInfo{
		ID:             "3422b448-2460-4fd2-9183-8000de6f8343",
		ShortOrderID:   "2000-3213-23",
		DeliveryType:   DeliveryTypeCourier,
		Status:         OrderStatusCreated,
		DeliveryETAMin: 20,
		Resolution:     OrderResolutionSucceeded,
		Actions:        []OrderAction{{Type: OrderActionCallCourier}},
		CourierInfo: StateCourierInfo{
			Position: NewPoint(20, 20),
		},
		Address: &Location{
			Position: NewPoint(20, 20),
			PlaceID:  "2018391",
		},
		DepotLocation: NewPoint(20, 20),
		PromiseMax:    time.Date(2022, time.August, 10, 16, 22, 18, 0, time.UTC),
	}
}

func ExampleOrdersState() OrdersStateResponse {
	return OrdersStateResponse{GroceryOrders: []OrderInfo{ExampleOrderInfo()}}
}
