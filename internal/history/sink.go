package history

import (
	"github.com/yanun0323/logs"

	"main/internal/obs"
	"main/internal/soa"
)

// Sink is the historical service for one derived entity. It keeps the
// canonical copy of every persisted record by key and appends each event
// to its log. Sinks feed nothing downstream.
type Sink[T any] struct {
	soa.BaseListener[T]

	store   *soa.Store[string, T]
	writer  *Writer
	key     func(T) string
	format  func(T) [][]string
	stage   obs.Stage
	metrics *obs.Metrics
}

// NewSink builds a sink. key extracts the store key; format renders one
// event as one or more records.
func NewSink[T any](writer *Writer, stage obs.Stage, metrics *obs.Metrics, key func(T) string, format func(T) [][]string) *Sink[T] {
	return &Sink[T]{
		store:   soa.NewStore[string, T](),
		writer:  writer,
		key:     key,
		format:  format,
		stage:   stage,
		metrics: metrics,
	}
}

// ProcessAdd upserts the entity and appends its records to the log.
func (s *Sink[T]) ProcessAdd(data T) {
	s.OnMessage(data)
}

// OnMessage ingests one entity into the sink.
func (s *Sink[T]) OnMessage(data T) {
	s.store.Upsert(s.key(data), data)
	for _, fields := range s.format(data) {
		if err := s.writer.Write(fields); err != nil {
			logs.Errorf("%s sink: %+v", s.stage, err)
			return
		}
	}
	s.metrics.IncPersisted(s.stage)
}

// GetData returns the last persisted entity for a key, or the zero value.
func (s *Sink[T]) GetData(key string) T {
	return s.store.GetData(key)
}

// Get returns the last persisted entity for a key and whether it exists.
func (s *Sink[T]) Get(key string) (T, bool) {
	return s.store.Get(key)
}

// Len returns the number of distinct keys persisted.
func (s *Sink[T]) Len() int {
	return s.store.Len()
}
