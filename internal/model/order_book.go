package model

import "main/internal/model/enum"

// Order is a resting level of depth-of-book market data.
type Order struct {
	Price    Price
	Quantity Quantity
	Side     enum.PricingSide
}

// BidOffer pairs the best resting order of each side.
type BidOffer struct {
	Bid   Order
	Offer Order
}

// OrderBook is a five-level depth snapshot for a product. Bids are sorted
// descending, offers ascending.
type OrderBook struct {
	Product Bond
	Bids    []Order
	Offers  []Order
}
