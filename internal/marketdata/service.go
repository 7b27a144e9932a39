// Package marketdata ingests five-level depth-of-book snapshots and serves
// best-bid-offer and aggregated-depth views to the execution stage.
package marketdata

import (
	"time"

	"main/internal/model"
	"main/internal/obs"
	"main/internal/soa"
)

// Service stores the latest OrderBook per product.
type Service struct {
	store   *soa.Store[string, model.OrderBook]
	metrics *obs.Metrics
}

// NewService creates the market-data service.
func NewService(metrics *obs.Metrics) *Service {
	return &Service{
		store:   soa.NewStore[string, model.OrderBook](),
		metrics: metrics,
	}
}

// GetData returns the latest book for a product, or the zero value.
func (s *Service) GetData(productID string) model.OrderBook {
	return s.store.GetData(productID)
}

// Get returns the latest book for a product and whether one exists.
func (s *Service) Get(productID string) (model.OrderBook, bool) {
	return s.store.Get(productID)
}

// OnMessage upserts the book and publishes it to every listener.
func (s *Service) OnMessage(book model.OrderBook) {
	s.store.Upsert(book.Product.ProductID, book)
	s.metrics.IncAccepted(obs.StageMarketData)

	start := time.Now()
	s.store.Publish(book)
	s.metrics.ObserveDispatch(time.Since(start))
}

// GetBestBidOffer returns the top level of each side of the latest book.
// Sides with no depth come back as zero orders.
func (s *Service) GetBestBidOffer(productID string) model.BidOffer {
	book := s.store.GetData(productID)
	var best model.BidOffer
	if len(book.Bids) > 0 {
		best.Bid = book.Bids[0]
	}
	if len(book.Offers) > 0 {
		best.Offer = book.Offers[0]
	}
	return best
}

// AggregateDepth collapses consecutive same-price levels within each side,
// summing quantities. The collapsed level keeps the first price seen at
// that value and the side ordering is preserved.
func (s *Service) AggregateDepth(productID string) model.OrderBook {
	book := s.store.GetData(productID)
	return model.OrderBook{
		Product: book.Product,
		Bids:    aggregateSide(book.Bids),
		Offers:  aggregateSide(book.Offers),
	}
}

func aggregateSide(levels []model.Order) []model.Order {
	if len(levels) == 0 {
		return nil
	}
	out := make([]model.Order, 0, len(levels))
	current := levels[0]
	for _, level := range levels[1:] {
		if level.Price == current.Price {
			current.Quantity += level.Quantity
			continue
		}
		out = append(out, current)
		current = level
	}
	return append(out, current)
}

// AddListener appends a listener; registration order is dispatch order.
func (s *Service) AddListener(listener soa.Listener[model.OrderBook]) {
	s.store.AddListener(listener)
}

// GetListeners returns the registered listeners in dispatch order.
func (s *Service) GetListeners() []soa.Listener[model.OrderBook] {
	return s.store.Listeners()
}
