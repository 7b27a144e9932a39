// Package soa is the service/listener/connector fabric the pipeline stages
// compose on. A Service owns the authoritative keyed store for one entity
// type and publishes every accepted mutation to its listeners synchronously,
// in registration order.
package soa

import "context"

// Listener receives entity mutations from a Service. Only ProcessAdd is
// dispatched by this system; ProcessRemove and ProcessUpdate are reserved
// for deletes and partial updates.
type Listener[T any] interface {
	ProcessAdd(data T)
	ProcessRemove(data T)
	ProcessUpdate(data T)
}

// Service owns a keyed mapping of entities and a list of listeners.
type Service[K comparable, T any] interface {
	// GetData returns the entity last accepted for a key, or the zero
	// value if the key has never been seen.
	GetData(key K) T

	// OnMessage ingests one entity: update the store, publish to every
	// listener.
	OnMessage(data T)

	AddListener(listener Listener[T])
	GetListeners() []Listener[T]
}

// Connector adapts a Service to the outside world. Subscribe drives data
// into the service until the source is exhausted or the context is
// cancelled; Publish carries data out.
type Connector[T any] interface {
	Publish(data T)
	Subscribe(ctx context.Context) error
}

// BaseListener provides no-op ProcessRemove and ProcessUpdate so listeners
// only implement the dispatch they handle.
type BaseListener[T any] struct{}

func (BaseListener[T]) ProcessRemove(T) {}
func (BaseListener[T]) ProcessUpdate(T) {}
