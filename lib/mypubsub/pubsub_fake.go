package mypubsub

import (
	"context"
	"os"
	"sync"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = func(c context.Context) (PubSub, func(), error) {
			return newDiscardingPubSub(), func() {}, nil
		}
	}
}

// FakePubSub keeps published messages in memory per topic. Without a Google Cloud
// project the messages have no consumer and are dropped instead.
type FakePubSub struct {
	sync.Mutex
	Topics    map[string]bool
	Published map[string][]string
	discard   bool
}

func NewFakePubSub() *FakePubSub {
	return &FakePubSub{
		Topics:    map[string]bool{},
		Published: map[string][]string{},
	}
}

func newDiscardingPubSub() *FakePubSub {
	ps := NewFakePubSub()
	ps.discard = true
	return ps
}

func (ps *FakePubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.Topics[topic] = true

	return nil
}

func (ps *FakePubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	defer ps.Unlock()

	if ps.discard {
		return nil
	}
	ps.Published[topic] = append(ps.Published[topic], data)

	return nil
}

func (ps *FakePubSub) Messages(topic string) []string {
	ps.Lock()
	defer ps.Unlock()

	return append([]string{}, ps.Published[topic]...)
}
