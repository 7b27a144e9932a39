package streaming

import (
	"main/internal/model"
	"main/internal/obs"
	"main/internal/soa"
)

// Service publishes the latest two-way stream per product.
type Service struct {
	store   *soa.Store[string, model.PriceStream]
	metrics *obs.Metrics
}

// NewService creates the streaming service.
func NewService(metrics *obs.Metrics) *Service {
	return &Service{
		store:   soa.NewStore[string, model.PriceStream](),
		metrics: metrics,
	}
}

// GetData returns the latest stream for a product, or the zero value.
func (s *Service) GetData(productID string) model.PriceStream {
	return s.store.GetData(productID)
}

// Get returns the latest stream for a product and whether one exists.
func (s *Service) Get(productID string) (model.PriceStream, bool) {
	return s.store.Get(productID)
}

// PublishPrice upserts the stream and publishes it.
func (s *Service) PublishPrice(stream model.PriceStream) {
	s.store.Upsert(stream.Product.ProductID, stream)
	s.metrics.IncAccepted(obs.StageStreaming)
	s.store.Publish(stream)
}

// OnMessage ingests one stream; it is PublishPrice under the service
// contract.
func (s *Service) OnMessage(stream model.PriceStream) {
	s.PublishPrice(stream)
}

// AddListener appends a listener; registration order is dispatch order.
func (s *Service) AddListener(listener soa.Listener[model.PriceStream]) {
	s.store.AddListener(listener)
}

// GetListeners returns the registered listeners in dispatch order.
func (s *Service) GetListeners() []soa.Listener[model.PriceStream] {
	return s.store.Listeners()
}

// AlgoListener unwraps algo streams into the publication channel.
type AlgoListener struct {
	soa.BaseListener[model.AlgoStream]
	service *Service
}

// NewAlgoListener attaches the streaming service to the algo stream.
func NewAlgoListener(service *Service) *AlgoListener {
	return &AlgoListener{service: service}
}

// ProcessAdd publishes the derived stream.
func (l *AlgoListener) ProcessAdd(algo model.AlgoStream) {
	l.service.PublishPrice(algo.Stream)
}
