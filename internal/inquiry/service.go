// Package inquiry runs the customer-quote state machine. Every inquiry
// arriving as RECEIVED is quoted at par and confirmed, so its history
// shows RECEIVED, QUOTED, DONE in order. REJECTED and CUSTOMER_REJECTED
// are storable terminal states with no transitions.
package inquiry

import (
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/obs"
	"main/internal/soa"
)

// QuotePrice is the par quote sent for every received inquiry.
const QuotePrice = model.Price(100 * model.TicksPerPoint)

// Service stores the latest state of every inquiry. State only ever
// advances: each OnMessage overwrites the stored record, publishes it,
// then drives the next transition.
type Service struct {
	store     *soa.Store[string, model.Inquiry]
	metrics   *obs.Metrics
	connector *Connector
}

// NewService creates the inquiry service. The quote connector is attached
// afterwards via SetConnector.
func NewService(metrics *obs.Metrics) *Service {
	return &Service{
		store:   soa.NewStore[string, model.Inquiry](),
		metrics: metrics,
	}
}

// SetConnector attaches the connector used to send quotes back out.
func (s *Service) SetConnector(connector *Connector) {
	s.connector = connector
}

// GetData returns the latest record for an inquiry, or the zero value.
func (s *Service) GetData(inquiryID string) model.Inquiry {
	return s.store.GetData(inquiryID)
}

// Get returns the latest record for an inquiry and whether it exists.
func (s *Service) Get(inquiryID string) (model.Inquiry, bool) {
	return s.store.Get(inquiryID)
}

// OnMessage stores and publishes the inquiry, then advances it: RECEIVED
// triggers the quote, QUOTED confirms to DONE. Each advance re-enters
// OnMessage only after the previous dispatch has completed.
func (s *Service) OnMessage(q model.Inquiry) {
	s.store.Upsert(q.InquiryID, q)
	s.metrics.IncAccepted(obs.StageInquiry)
	s.store.Publish(q)

	switch q.State {
	case enum.InquiryReceived:
		s.SendQuote(q.InquiryID, QuotePrice)
	case enum.InquiryQuoted:
		q.State = enum.InquiryDone
		s.store.Upsert(q.InquiryID, q)
		s.store.Publish(q)
	}
}

// SendQuote sets the quoted price on a stored inquiry and publishes it
// back through the connector. Unknown inquiry-ids are ignored.
func (s *Service) SendQuote(inquiryID string, price model.Price) {
	q, ok := s.store.Get(inquiryID)
	if !ok || s.connector == nil {
		return
	}
	q.Price = price
	s.connector.Publish(q)
}

// AddListener appends a listener; registration order is dispatch order.
func (s *Service) AddListener(listener soa.Listener[model.Inquiry]) {
	s.store.AddListener(listener)
}

// GetListeners returns the registered listeners in dispatch order.
func (s *Service) GetListeners() []soa.Listener[model.Inquiry] {
	return s.store.Listeners()
}
