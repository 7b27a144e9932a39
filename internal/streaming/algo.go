// Package streaming derives two-way streamed quotes from mid-price ticks.
// AlgoService owns the sizing policy; Service is the publication channel.
package streaming

import (
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/obs"
	"main/internal/soa"
)

const baseVisibleQty = 1_000_000

// AlgoService turns each price tick into a sized two-way stream. Visible
// size alternates between 1M and 2M per accepted tick; hidden size is
// always twice visible.
type AlgoService struct {
	store   *soa.Store[string, model.AlgoStream]
	metrics *obs.Metrics
	ticks   uint64
}

// NewAlgoService creates the algo-streaming service.
func NewAlgoService(metrics *obs.Metrics) *AlgoService {
	return &AlgoService{
		store:   soa.NewStore[string, model.AlgoStream](),
		metrics: metrics,
	}
}

// GetData returns the latest algo stream for a product, or the zero value.
func (s *AlgoService) GetData(productID string) model.AlgoStream {
	return s.store.GetData(productID)
}

// Get returns the latest algo stream for a product and whether one exists.
func (s *AlgoService) Get(productID string) (model.AlgoStream, bool) {
	return s.store.Get(productID)
}

// AddPrice derives the two-way stream for a tick and publishes it. The
// offer carries any odd remainder of the spread so bid+spread == offer.
func (s *AlgoService) AddPrice(tick model.PriceTick) {
	half := tick.BidOfferSpread / 2
	bidPrice := tick.Mid - half
	offerPrice := tick.Mid + (tick.BidOfferSpread - half)

	visible := model.Quantity((1 + s.ticks%2) * baseVisibleQty)
	s.ticks++

	stream := model.PriceStream{
		Product: tick.Product,
		Bid: model.PriceStreamOrder{
			Side:            enum.PricingSideBid,
			Price:           bidPrice,
			VisibleQuantity: visible,
			HiddenQuantity:  2 * visible,
		},
		Offer: model.PriceStreamOrder{
			Side:            enum.PricingSideOffer,
			Price:           offerPrice,
			VisibleQuantity: visible,
			HiddenQuantity:  2 * visible,
		},
	}

	algo := model.AlgoStream{Stream: stream}
	s.store.Upsert(tick.Product.ProductID, algo)
	s.metrics.IncAccepted(obs.StageAlgoStreaming)
	s.store.Publish(algo)
}

// OnMessage ingests one tick; it is AddPrice under the service contract.
func (s *AlgoService) OnMessage(tick model.PriceTick) {
	s.AddPrice(tick)
}

// AddListener appends a listener; registration order is dispatch order.
func (s *AlgoService) AddListener(listener soa.Listener[model.AlgoStream]) {
	s.store.AddListener(listener)
}

// GetListeners returns the registered listeners in dispatch order.
func (s *AlgoService) GetListeners() []soa.Listener[model.AlgoStream] {
	return s.store.Listeners()
}

// PricingListener adapts the pricing feed onto AddPrice.
type PricingListener struct {
	soa.BaseListener[model.PriceTick]
	service *AlgoService
}

// NewPricingListener attaches the algo service to the pricing stream.
func NewPricingListener(service *AlgoService) *PricingListener {
	return &PricingListener{service: service}
}

// ProcessAdd forwards one tick into the sizing policy.
func (l *PricingListener) ProcessAdd(tick model.PriceTick) {
	l.service.AddPrice(tick)
}
