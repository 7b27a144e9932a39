package model

import "main/internal/model/enum"

// Trade is an executed trade booked against a ledger book.
type Trade struct {
	Product  Bond
	TradeID  string
	Price    Price
	Book     string
	Quantity Quantity
	Side     enum.Side
}
