// Package gui taps the pricing stream for a display feed. The tap is
// throttled to a minimum interval between records and capped at a fixed
// record count per run; ticks beyond the cap are silently dropped.
package gui

import (
	"time"

	"main/internal/model"
	"main/internal/obs"
	"main/internal/soa"
)

// Service is the throttled GUI tap. It blocks until the throttle interval
// has elapsed since its last publication, then publishes the tick to its
// listeners.
type Service struct {
	store    *soa.Store[string, model.PriceTick]
	metrics  *obs.Metrics
	throttle time.Duration
	maxTicks int

	published int
	last      time.Time

	clock func() time.Time
	sleep func(time.Duration)
}

// NewService creates the GUI tap with its throttle interval and record cap.
func NewService(throttle time.Duration, maxTicks int, metrics *obs.Metrics) *Service {
	return &Service{
		store:    soa.NewStore[string, model.PriceTick](),
		metrics:  metrics,
		throttle: throttle,
		maxTicks: maxTicks,
		clock:    time.Now,
		sleep:    time.Sleep,
	}
}

// SetClock overrides the monotonic clock and sleep used by the throttle.
func (s *Service) SetClock(clock func() time.Time, sleep func(time.Duration)) {
	s.clock = clock
	s.sleep = sleep
}

// GetData returns the last displayed tick for a product, or the zero value.
func (s *Service) GetData(productID string) model.PriceTick {
	return s.store.GetData(productID)
}

// OnMessage applies the throttle and cap, then publishes the tick.
func (s *Service) OnMessage(tick model.PriceTick) {
	if s.published >= s.maxTicks {
		s.metrics.IncSkipped(obs.StageGUI)
		return
	}
	if !s.last.IsZero() {
		if wait := s.throttle - s.clock().Sub(s.last); wait > 0 {
			s.sleep(wait)
		}
	}
	s.last = s.clock()
	s.published++

	s.store.Upsert(tick.Product.ProductID, tick)
	s.metrics.IncAccepted(obs.StageGUI)
	s.store.Publish(tick)
}

// Published returns the number of records let through so far.
func (s *Service) Published() int {
	return s.published
}

// AddListener appends a listener; registration order is dispatch order.
func (s *Service) AddListener(listener soa.Listener[model.PriceTick]) {
	s.store.AddListener(listener)
}

// GetListeners returns the registered listeners in dispatch order.
func (s *Service) GetListeners() []soa.Listener[model.PriceTick] {
	return s.store.Listeners()
}

// PricingListener adapts the pricing feed onto the tap.
type PricingListener struct {
	soa.BaseListener[model.PriceTick]
	service *Service
}

// NewPricingListener attaches the GUI tap to the pricing stream.
func NewPricingListener(service *Service) *PricingListener {
	return &PricingListener{service: service}
}

// ProcessAdd forwards one tick into the tap.
func (l *PricingListener) ProcessAdd(tick model.PriceTick) {
	l.service.OnMessage(tick)
}
