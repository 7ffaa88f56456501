package mypublisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MarcGrol/storefront/lib/myevents"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/mytime"
)

type publisher struct {
	pubsub    mypubsub.PubSub
	enveloper enveloper
}

func New(pubsub mypubsub.PubSub, nower mytime.Nower) Publisher {
	return &publisher{
		pubsub:    pubsub,
		enveloper: newEnveloper(nower),
	}
}

func (p *publisher) CreateTopic(c context.Context, topic string) error {
	return p.pubsub.CreateTopic(c, topic)
}

func (p *publisher) Publish(c context.Context, topic string, event myevents.Event) error {
	envelope, err := p.enveloper.do(topic, event)
	if err != nil {
		return fmt.Errorf("error creating envelope: %w", err)
	}

	jsonBytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("error serializing envelope %s: %w", envelope, err)
	}

	err = p.pubsub.Publish(c, topic, string(jsonBytes))
	if err != nil {
		return fmt.Errorf("error publishing envelope %s: %w", envelope, err)
	}

	return nil
}
