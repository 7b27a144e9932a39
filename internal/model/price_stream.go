package model

import "main/internal/model/enum"

// PriceStreamOrder is one side of a streamed two-way quote.
type PriceStreamOrder struct {
	Side            enum.PricingSide
	Price           Price
	VisibleQuantity Quantity
	HiddenQuantity  Quantity
}

// PriceStream is a streamed two-way market for a product.
type PriceStream struct {
	Product Bond
	Bid     PriceStreamOrder
	Offer   PriceStreamOrder
}

// AlgoStream wraps the latest derived PriceStream for a product.
type AlgoStream struct {
	Stream PriceStream
}
