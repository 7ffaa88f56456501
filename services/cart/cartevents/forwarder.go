package cartevents

import (
	"context"

	"github.com/MarcGrol/storefront/lib/myevents"
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/services/cart"
)

// Forwarder publishes cart mutations on the cart topic so other systems can
// correlate them. Publication is best effort and never affects the cart.
type Forwarder struct {
	publisher mypublisher.Publisher
	logger    mylog.Logger
}

func NewForwarder(publisher mypublisher.Publisher, logger mylog.Logger) *Forwarder {
	return &Forwarder{
		publisher: publisher,
		logger:    logger,
	}
}

func (f *Forwarder) CreateTopic(c context.Context) error {
	return f.publisher.CreateTopic(c, TopicName)
}

func (f *Forwarder) Register(store *cart.Store) {
	store.OnAny(f.forward)
}

func (f *Forwarder) forward(c context.Context, event cart.Event) {
	published := toPublished(event)
	if published == nil {
		return
	}

	err := f.publisher.Publish(c, TopicName, published)
	if err != nil {
		f.logger.Log(c, event.CartKey, mylog.SeverityWarn, "Error publishing %s: %s", published.GetEventTypeName(), err)
	}
}

func toPublished(event cart.Event) myevents.Event {
	switch event.Type {
	case cart.ItemAdded:
		return ItemAdded{CartKey: event.CartKey, Name: event.Entry.Name, Price: event.Entry.Price, Quantity: event.Entry.Quantity}
	case cart.ItemRemoved:
		return ItemRemoved{CartKey: event.CartKey, Name: event.Entry.Name, Price: event.Entry.Price}
	case cart.QuantityChanged:
		return QuantityChanged{CartKey: event.CartKey, Name: event.Entry.Name, Price: event.Entry.Price, Quantity: event.Entry.Quantity}
	case cart.Cleared:
		return Cleared{CartKey: event.CartKey}
	default:
		return nil
	}
}
