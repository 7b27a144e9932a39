// Package booking keys executed trades by trade-id. The service is a
// shared sink with two producers: the trade file connector and the
// execution listener, which synthesizes a trade from every routed order.
package booking

import (
	"fmt"
	"time"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/obs"
	"main/internal/soa"
)

// Service stores every booked trade by trade-id.
type Service struct {
	store   *soa.Store[string, model.Trade]
	metrics *obs.Metrics
}

// NewService creates the trade-booking service.
func NewService(metrics *obs.Metrics) *Service {
	return &Service{
		store:   soa.NewStore[string, model.Trade](),
		metrics: metrics,
	}
}

// GetData returns the trade for a trade-id, or the zero value.
func (s *Service) GetData(tradeID string) model.Trade {
	return s.store.GetData(tradeID)
}

// Get returns the trade for a trade-id and whether it exists.
func (s *Service) Get(tradeID string) (model.Trade, bool) {
	return s.store.Get(tradeID)
}

// BookTrade upserts the trade and publishes it.
func (s *Service) BookTrade(trade model.Trade) {
	s.OnMessage(trade)
}

// OnMessage ingests one trade.
func (s *Service) OnMessage(trade model.Trade) {
	s.store.Upsert(trade.TradeID, trade)
	s.metrics.IncAccepted(obs.StageTradeBooking)

	start := time.Now()
	s.store.Publish(trade)
	s.metrics.ObserveDispatch(time.Since(start))
}

// AddListener appends a listener; registration order is dispatch order.
func (s *Service) AddListener(listener soa.Listener[model.Trade]) {
	s.store.AddListener(listener)
}

// GetListeners returns the registered listeners in dispatch order.
func (s *Service) GetListeners() []soa.Listener[model.Trade] {
	return s.store.Listeners()
}

// ExecutionListener synthesizes a trade from every routed order and books
// it. Orders rotate over books TRSY1..TRSY3 and the full order size
// (visible plus hidden) is booked.
type ExecutionListener struct {
	soa.BaseListener[model.ExecutionOrder]
	service *Service
	seq     *obs.Sequence
}

// NewExecutionListener attaches the booking service to the execution
// stream.
func NewExecutionListener(service *Service) *ExecutionListener {
	return &ExecutionListener{service: service, seq: obs.NewSequence(0)}
}

// ProcessAdd books the order as a trade.
func (l *ExecutionListener) ProcessAdd(order model.ExecutionOrder) {
	side := enum.SideSell
	if order.Side == enum.PricingSideBid {
		side = enum.SideBuy
	}
	n := l.seq.Next()
	l.service.BookTrade(model.Trade{
		Product:  order.Product,
		TradeID:  fmt.Sprintf("ETrade%d", n),
		Price:    order.Price,
		Book:     fmt.Sprintf("TRSY%d", n%3+1),
		Quantity: order.VisibleQuantity + order.HiddenQuantity,
		Side:     side,
	})
}
