package model

import "main/internal/model/enum"

// ExecutionOrder is an order that can be placed on an exchange.
type ExecutionOrder struct {
	Product         Bond
	Side            enum.PricingSide
	OrderID         string
	Type            enum.OrderType
	Price           Price
	VisibleQuantity Quantity
	HiddenQuantity  Quantity
	ParentOrderID   string
	IsChildOrder    bool
}

// AlgoExecution wraps an ExecutionOrder generated by the algo stage.
type AlgoExecution struct {
	Order ExecutionOrder
}
