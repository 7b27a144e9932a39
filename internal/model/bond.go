package model

import "time"

// IDType is the identifier scheme of a product.
type IDType uint8

const (
	IDTypeCUSIP IDType = iota + 1
	IDTypeISIN
)

// Bond identifies a U.S. Treasury security. Equality is by ProductID;
// the identifier is immutable for the lifetime of the entity.
type Bond struct {
	ProductID string
	IDType    IDType
	Ticker    string
	Coupon    float64
	Maturity  time.Time
}
