package model

import "main/internal/model/enum"

// Position is the per-book ledger for one product. Book quantities are
// signed; the aggregate is their sum.
type Position struct {
	Product Bond
	books   map[string]Quantity
}

// NewPosition creates an empty position for a product.
func NewPosition(product Bond) *Position {
	return &Position{
		Product: product,
		books:   make(map[string]Quantity),
	}
}

// Apply books a trade into the ledger. Trades for a different product are
// ignored.
func (p *Position) Apply(trade Trade) {
	if trade.Product.ProductID != p.Product.ProductID {
		return
	}
	qty := trade.Quantity
	if trade.Side == enum.SideSell {
		qty = -qty
	}
	p.books[trade.Book] += qty
}

// Book returns the signed quantity held in one book.
func (p *Position) Book(name string) Quantity {
	return p.books[name]
}

// Aggregate returns the sum of all book quantities.
func (p *Position) Aggregate() Quantity {
	var total Quantity
	for _, qty := range p.books {
		total += qty
	}
	return total
}
