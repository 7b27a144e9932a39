package soa

// Store is the keyed store and dispatch list every service embeds. Keys
// grow monotonically; existing keys are overwritten on update and entities
// are never deleted during a run.
type Store[K comparable, T any] struct {
	data        map[K]T
	listeners   []Listener[T]
	dispatching bool
}

// NewStore allocates an empty store.
func NewStore[K comparable, T any]() *Store[K, T] {
	return &Store[K, T]{data: make(map[K]T)}
}

// Get returns the entity for a key and whether it exists.
func (s *Store[K, T]) Get(key K) (T, bool) {
	data, ok := s.data[key]
	return data, ok
}

// GetData returns the entity for a key, or the zero value on a miss.
func (s *Store[K, T]) GetData(key K) T {
	return s.data[key]
}

// Upsert stores the entity under the key without publishing.
func (s *Store[K, T]) Upsert(key K, data T) {
	s.data[key] = data
}

// Publish dispatches the entity to every listener in registration order.
// Dispatch is synchronous: Publish does not return until every listener
// has processed the event. A listener chain that loops back into a store
// it is already dispatching from cannot terminate, so re-entry panics.
func (s *Store[K, T]) Publish(data T) {
	if s.dispatching {
		panic("soa: listener cycle: re-entrant publish on the same store")
	}
	s.dispatching = true
	defer func() { s.dispatching = false }()

	for _, listener := range s.listeners {
		listener.ProcessAdd(data)
	}
}

// AddListener appends a listener. Registration order defines dispatch
// order; registration must complete before any connector subscribes.
func (s *Store[K, T]) AddListener(listener Listener[T]) {
	s.listeners = append(s.listeners, listener)
}

// Listeners returns the registered listeners in dispatch order.
func (s *Store[K, T]) Listeners() []Listener[T] {
	return s.listeners
}

// Len returns the number of stored keys.
func (s *Store[K, T]) Len() int {
	return len(s.data)
}
