// Package risk accumulates PV01 per security from published positions and
// aggregates sector buckets on demand.
package risk

import (
	"github.com/shopspring/decimal"

	"main/internal/model"
	"main/internal/obs"
	"main/internal/soa"
)

// pv01Exp scales aggregate position into dollar sensitivity: each position
// event adds aggregate x 1e-6.
const pv01Exp = -6

// Service stores the accumulated PV01 per product.
type Service struct {
	store   *soa.Store[string, model.PV01]
	metrics *obs.Metrics
}

// NewService creates the risk service.
func NewService(metrics *obs.Metrics) *Service {
	return &Service{
		store:   soa.NewStore[string, model.PV01](),
		metrics: metrics,
	}
}

// GetData returns the PV01 for a product, or the zero value.
func (s *Service) GetData(productID string) model.PV01 {
	return s.store.GetData(productID)
}

// Get returns the PV01 for a product and whether one exists.
func (s *Service) Get(productID string) (model.PV01, bool) {
	return s.store.Get(productID)
}

// AddPosition folds one published position into the product's PV01. The
// first touch allocates a zero entry; every event then adds the scaled
// aggregate, so the accumulated value tracks the ledger history.
func (s *Service) AddPosition(pos *model.Position) {
	if pos == nil {
		return
	}
	pv, ok := s.store.Get(pos.Product.ProductID)
	if !ok {
		pv = model.PV01{Product: pos.Product}
	}
	agg := pos.Aggregate()
	pv.Value = pv.Value.Add(decimal.New(int64(agg), pv01Exp))
	pv.Quantity += agg

	s.store.Upsert(pos.Product.ProductID, pv)
	s.metrics.IncAccepted(obs.StageRisk)
	s.store.Publish(pv)
}

// OnMessage ingests one position; it is AddPosition under the service
// contract.
func (s *Service) OnMessage(pos *model.Position) {
	s.AddPosition(pos)
}

// GetBucketedRisk sums PV01 and quantity across the sector's products,
// skipping products with no risk entry. The aggregate is computed on
// demand and never stored.
func (s *Service) GetBucketedRisk(sector model.BucketedSector) model.SectorRisk {
	out := model.SectorRisk{Sector: sector, Value: decimal.Zero}
	for _, product := range sector.Products {
		pv, ok := s.store.Get(product.ProductID)
		if !ok {
			continue
		}
		out.Value = out.Value.Add(pv.Value)
		out.Quantity += pv.Quantity
	}
	return out
}

// AddListener appends a listener; registration order is dispatch order.
func (s *Service) AddListener(listener soa.Listener[model.PV01]) {
	s.store.AddListener(listener)
}

// GetListeners returns the registered listeners in dispatch order.
func (s *Service) GetListeners() []soa.Listener[model.PV01] {
	return s.store.Listeners()
}

// PositionListener adapts the position stream onto AddPosition.
type PositionListener struct {
	soa.BaseListener[*model.Position]
	service *Service
}

// NewPositionListener attaches the risk service to the position stream.
func NewPositionListener(service *Service) *PositionListener {
	return &PositionListener{service: service}
}

// ProcessAdd folds one position event into PV01.
func (l *PositionListener) ProcessAdd(pos *model.Position) {
	l.service.AddPosition(pos)
}
