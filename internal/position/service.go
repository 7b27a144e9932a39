// Package position maintains the per-book signed ledger for each product
// and republishes the full position after every booked trade.
package position

import (
	"main/internal/model"
	"main/internal/obs"
	"main/internal/soa"
)

// Service stores one Position per product. Listeners receive the stored
// position itself, so downstream reads never drift from the ledger.
type Service struct {
	store   *soa.Store[string, *model.Position]
	metrics *obs.Metrics
}

// NewService creates the position service.
func NewService(metrics *obs.Metrics) *Service {
	return &Service{
		store:   soa.NewStore[string, *model.Position](),
		metrics: metrics,
	}
}

// GetData returns the position for a product, or nil if no trade has
// touched it.
func (s *Service) GetData(productID string) *model.Position {
	return s.store.GetData(productID)
}

// Get returns the position for a product and whether one exists.
func (s *Service) Get(productID string) (*model.Position, bool) {
	return s.store.Get(productID)
}

// AddTrade applies the trade to its product's ledger, creating the
// position on first touch, and publishes the updated position.
func (s *Service) AddTrade(trade model.Trade) {
	pos, ok := s.store.Get(trade.Product.ProductID)
	if !ok {
		pos = model.NewPosition(trade.Product)
		s.store.Upsert(trade.Product.ProductID, pos)
	}
	pos.Apply(trade)
	s.metrics.IncAccepted(obs.StagePosition)
	s.store.Publish(pos)
}

// OnMessage ingests one trade; it is AddTrade under the service contract.
func (s *Service) OnMessage(trade model.Trade) {
	s.AddTrade(trade)
}

// AddListener appends a listener; registration order is dispatch order.
func (s *Service) AddListener(listener soa.Listener[*model.Position]) {
	s.store.AddListener(listener)
}

// GetListeners returns the registered listeners in dispatch order.
func (s *Service) GetListeners() []soa.Listener[*model.Position] {
	return s.store.Listeners()
}

// TradeListener adapts the booking stream onto AddTrade.
type TradeListener struct {
	soa.BaseListener[model.Trade]
	service *Service
}

// NewTradeListener attaches the position service to the booking stream.
func NewTradeListener(service *Service) *TradeListener {
	return &TradeListener{service: service}
}

// ProcessAdd applies one booked trade to the ledger.
func (l *TradeListener) ProcessAdd(trade model.Trade) {
	l.service.AddTrade(trade)
}
