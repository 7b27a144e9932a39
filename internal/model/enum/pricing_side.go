package enum

// PricingSide is the side of a quoted or resting price.
type PricingSide uint8

const (
	_pricing_side_beg PricingSide = iota
	PricingSideBid
	PricingSideOffer
	_pricing_side_end
)

func (s PricingSide) IsAvailable() bool {
	return s > _pricing_side_beg && s < _pricing_side_end
}

func (s PricingSide) String() string {
	switch s {
	case PricingSideBid:
		return "Bid"
	case PricingSideOffer:
		return "Ask"
	default:
		return "Unknown"
	}
}
