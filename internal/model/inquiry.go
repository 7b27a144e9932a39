package model

import "main/internal/model/enum"

// Inquiry is a customer request for a quote.
type Inquiry struct {
	InquiryID string
	Product   Bond
	Side      enum.Side
	Quantity  Quantity
	Price     Price
	State     enum.InquiryState
}
