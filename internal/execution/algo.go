// Package execution generates market-aggressing orders from depth books.
// AlgoService gates on the top-of-book spread; Service routes the accepted
// order per product.
package execution

import (
	"fmt"
	"math/rand"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/obs"
	"main/internal/ops"
	"main/internal/soa"
)

const algoOrderQty = 1_000_000

// AlgoService fires a market order off each book whose top-of-book spread
// is inside the configured gate. Order sides alternate with the order
// counter: odd orders aggress offers, even orders aggress bids.
type AlgoService struct {
	store   *soa.Store[string, model.AlgoExecution]
	metrics *obs.Metrics
	policy  ops.AlgoConfig
	seq     *obs.Sequence
	rng     *rand.Rand
}

// NewAlgoService creates the algo-execution service.
func NewAlgoService(policy ops.AlgoConfig, rng *rand.Rand, metrics *obs.Metrics) *AlgoService {
	return &AlgoService{
		store:   soa.NewStore[string, model.AlgoExecution](),
		metrics: metrics,
		policy:  policy,
		seq:     obs.NewSequence(0),
		rng:     rng,
	}
}

// GetData returns the latest algo execution for a product, or the zero
// value.
func (s *AlgoService) GetData(productID string) model.AlgoExecution {
	return s.store.GetData(productID)
}

// Get returns the latest algo execution for a product and whether one
// exists.
func (s *AlgoService) Get(productID string) (model.AlgoExecution, bool) {
	return s.store.Get(productID)
}

// ExecuteAlgo fires if and only if bestOffer - bestBid is at most the
// configured spread gate. A spread exactly on the gate fires.
func (s *AlgoService) ExecuteAlgo(book model.OrderBook) {
	if len(book.Bids) == 0 || len(book.Offers) == 0 {
		s.metrics.IncSkipped(obs.StageAlgoExecution)
		return
	}
	bestBid := book.Bids[0]
	bestOffer := book.Offers[0]
	if int64(bestOffer.Price-bestBid.Price) > s.policy.MaxSpreadTicks {
		s.metrics.IncSkipped(obs.StageAlgoExecution)
		return
	}

	n := s.seq.Next()
	side := enum.PricingSideOffer
	if n%2 == 1 {
		side = enum.PricingSideBid
	}

	price := s.aggressPrice(side, bestBid.Price, bestOffer.Price)
	parentID := fmt.Sprintf("%d-%d", n, s.rng.Intn(10))
	order := model.ExecutionOrder{
		Product:         book.Product,
		Side:            side,
		OrderID:         fmt.Sprintf("%s%d", parentID, s.rng.Intn(1_000_000)),
		Type:            enum.OrderTypeMarket,
		Price:           price,
		VisibleQuantity: algoOrderQty,
		HiddenQuantity:  algoOrderQty,
		ParentOrderID:   parentID,
		IsChildOrder:    false,
	}

	algo := model.AlgoExecution{Order: order}
	s.store.Upsert(book.Product.ProductID, algo)
	s.metrics.IncAccepted(obs.StageAlgoExecution)
	s.store.Publish(algo)
}

// aggressPrice picks the price crossed against the opposite resting side.
// Natural aggression pays the offer when buying and hits the bid when
// selling; legacy mode swaps the two.
func (s *AlgoService) aggressPrice(side enum.PricingSide, bestBid, bestOffer model.Price) model.Price {
	buying := side == enum.PricingSideBid
	if !s.policy.AggressNatural {
		buying = !buying
	}
	if buying {
		return bestOffer
	}
	return bestBid
}

// OnMessage ingests one book; it is ExecuteAlgo under the service contract.
func (s *AlgoService) OnMessage(book model.OrderBook) {
	s.ExecuteAlgo(book)
}

// AddListener appends a listener; registration order is dispatch order.
func (s *AlgoService) AddListener(listener soa.Listener[model.AlgoExecution]) {
	s.store.AddListener(listener)
}

// GetListeners returns the registered listeners in dispatch order.
func (s *AlgoService) GetListeners() []soa.Listener[model.AlgoExecution] {
	return s.store.Listeners()
}

// BookListener adapts the market-data feed onto ExecuteAlgo.
type BookListener struct {
	soa.BaseListener[model.OrderBook]
	service *AlgoService
}

// NewBookListener attaches the algo service to the market-data stream.
func NewBookListener(service *AlgoService) *BookListener {
	return &BookListener{service: service}
}

// ProcessAdd forwards one book into the spread gate.
func (l *BookListener) ProcessAdd(book model.OrderBook) {
	l.service.ExecuteAlgo(book)
}
