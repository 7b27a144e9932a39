package model

// PriceTick is one internal mid-price observation for a product.
type PriceTick struct {
	Product        Bond
	Mid            Price
	BidOfferSpread Price
}
