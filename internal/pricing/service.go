// Package pricing ingests internal mid-price ticks and fans them out to
// the streaming derivation and the GUI tap.
package pricing

import (
	"time"

	"main/internal/model"
	"main/internal/obs"
	"main/internal/soa"
)

// Service stores the latest PriceTick per product.
type Service struct {
	store   *soa.Store[string, model.PriceTick]
	metrics *obs.Metrics
}

// NewService creates the pricing service.
func NewService(metrics *obs.Metrics) *Service {
	return &Service{
		store:   soa.NewStore[string, model.PriceTick](),
		metrics: metrics,
	}
}

// GetData returns the latest tick for a product, or the zero value.
func (s *Service) GetData(productID string) model.PriceTick {
	return s.store.GetData(productID)
}

// Get returns the latest tick for a product and whether one exists.
func (s *Service) Get(productID string) (model.PriceTick, bool) {
	return s.store.Get(productID)
}

// OnMessage upserts the tick and publishes it to every listener.
func (s *Service) OnMessage(tick model.PriceTick) {
	s.store.Upsert(tick.Product.ProductID, tick)
	s.metrics.IncAccepted(obs.StagePricing)

	start := time.Now()
	s.store.Publish(tick)
	s.metrics.ObserveDispatch(time.Since(start))
}

// AddListener appends a listener; registration order is dispatch order.
func (s *Service) AddListener(listener soa.Listener[model.PriceTick]) {
	s.store.AddListener(listener)
}

// GetListeners returns the registered listeners in dispatch order.
func (s *Service) GetListeners() []soa.Listener[model.PriceTick] {
	return s.store.Listeners()
}
