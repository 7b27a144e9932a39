package enum

// Side is the direction of a trade or inquiry.
type Side uint8

const (
	_side_beg Side = iota
	SideBuy
	SideSell
	_side_end
)

func (s Side) IsAvailable() bool {
	return s > _side_beg && s < _side_end
}

func (s Side) String() string {
	switch s {
	case SideBuy:
		return "BUY"
	case SideSell:
		return "SELL"
	default:
		return "UNKNOWN"
	}
}

// ParseSide maps input text to a Side. Anything other than SELL is a buy,
// matching the input file convention.
func ParseSide(s string) Side {
	if s == "SELL" {
		return SideSell
	}
	return SideBuy
}
