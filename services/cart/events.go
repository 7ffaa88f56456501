package cart

import (
	"context"

	"github.com/shopspring/decimal"
)

type EventType string

const (
	ItemAdded       EventType = "itemAdded"
	ItemRemoved     EventType = "itemRemoved"
	QuantityChanged EventType = "quantityChanged"
	Cleared         EventType = "cleared"
)

// Event describes a completed mutation. Entry holds the entry as it is after the
// mutation, or as it was for ItemRemoved. Index is -1 for Cleared.
type Event struct {
	Type           EventType
	CartKey        string
	Index          int
	Entry          Entry
	TotalItemCount int
	TotalPrice     decimal.Decimal
}

// Handlers run synchronously on the goroutine that mutated the store, after the
// cart has been persisted, in registration order. A handler must not mutate the
// store it is subscribed to.
type Handler func(c context.Context, event Event)

type subscription struct {
	eventType EventType
	all       bool
	handler   Handler
}

func (s *Store) On(eventType EventType, handler Handler) {
	s.subscriptions = append(s.subscriptions, subscription{eventType: eventType, handler: handler})
}

func (s *Store) OnAny(handler Handler) {
	s.subscriptions = append(s.subscriptions, subscription{all: true, handler: handler})
}

func (s *Store) emit(c context.Context, eventType EventType, index int, entry Entry) {
	event := Event{
		Type:           eventType,
		CartKey:        s.key,
		Index:          index,
		Entry:          entry,
		TotalItemCount: s.TotalItemCount(),
		TotalPrice:     s.TotalPrice(),
	}

	s.dispatching = true
	defer func() { s.dispatching = false }()

	for _, sub := range s.subscriptions {
		if sub.all || sub.eventType == eventType {
			sub.handler(c, event)
		}
	}
}
