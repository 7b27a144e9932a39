package execution

import (
	"github.com/yanun0323/logs"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/obs"
	"main/internal/soa"
)

// Service routes accepted orders. The store is keyed on product-id, so it
// holds one live order per product; a later order for the same product
// overwrites the earlier one.
type Service struct {
	store   *soa.Store[string, model.ExecutionOrder]
	metrics *obs.Metrics
}

// NewService creates the execution service.
func NewService(metrics *obs.Metrics) *Service {
	return &Service{
		store:   soa.NewStore[string, model.ExecutionOrder](),
		metrics: metrics,
	}
}

// GetData returns the live order for a product, or the zero value.
func (s *Service) GetData(productID string) model.ExecutionOrder {
	return s.store.GetData(productID)
}

// Get returns the live order for a product and whether one exists.
func (s *Service) Get(productID string) (model.ExecutionOrder, bool) {
	return s.store.Get(productID)
}

// ExecuteOrder routes the order to a market and publishes it. The market
// tag is carried only in the routing log, not on the stored order.
func (s *Service) ExecuteOrder(order model.ExecutionOrder, market enum.Market) {
	logs.Infof("execution: order %s on %s routed to %s", order.OrderID, order.Product.ProductID, market)
	s.store.Upsert(order.Product.ProductID, order)
	s.metrics.IncAccepted(obs.StageExecution)
	s.store.Publish(order)
}

// OnMessage routes the order to the default venue.
func (s *Service) OnMessage(order model.ExecutionOrder) {
	s.ExecuteOrder(order, enum.MarketBrokerTec)
}

// AddListener appends a listener; registration order is dispatch order.
func (s *Service) AddListener(listener soa.Listener[model.ExecutionOrder]) {
	s.store.AddListener(listener)
}

// GetListeners returns the registered listeners in dispatch order.
func (s *Service) GetListeners() []soa.Listener[model.ExecutionOrder] {
	return s.store.Listeners()
}

// AlgoListener unwraps algo executions into the routing service.
type AlgoListener struct {
	soa.BaseListener[model.AlgoExecution]
	service *Service
}

// NewAlgoListener attaches the execution service to the algo stream.
func NewAlgoListener(service *Service) *AlgoListener {
	return &AlgoListener{service: service}
}

// ProcessAdd routes the generated order.
func (l *AlgoListener) ProcessAdd(algo model.AlgoExecution) {
	l.service.ExecuteOrder(algo.Order, enum.MarketBrokerTec)
}
