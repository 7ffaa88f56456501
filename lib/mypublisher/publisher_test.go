package mypublisher

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/myevents"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/mytime"
)

type testEvent struct {
	CartKey string
	Name    string
}

func (e testEvent) GetEventTypeName() string {
	return "cart.item.added"
}

func (e testEvent) GetAggregateName() string {
	return e.CartKey
}

func TestPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()
	nower := mytime.NewMockNower(ctrl)
	pubsub := mypubsub.NewFakePubSub()
	sut := New(pubsub, nower)

	t.Run("Create topic", func(t *testing.T) {
		err := sut.CreateTopic(c, "cart")
		assert.NoError(t, err)
		assert.True(t, pubsub.Topics["cart"])
	})

	t.Run("Publish enveloped event", func(t *testing.T) {
		nower.EXPECT().Now().Return(mytime.ExampleTime).Times(2)

		err := sut.Publish(c, "cart", testEvent{CartKey: "cart", Name: "Widget"})
		assert.NoError(t, err)
		err = sut.Publish(c, "cart", testEvent{CartKey: "cart", Name: "Widget"})
		assert.NoError(t, err)

		messages := pubsub.Messages("cart")
		assert.Len(t, messages, 2)

		envelope := myevents.EventEnvelope{}
		err = json.Unmarshal([]byte(messages[0]), &envelope)
		assert.NoError(t, err)
		assert.Equal(t, "cart", envelope.Topic)
		assert.Equal(t, "cart", envelope.AggregateUID)
		assert.Equal(t, "cart.item.added", envelope.EventTypeName)
		assert.Equal(t, `{"CartKey":"cart","Name":"Widget"}`, envelope.EventPayload)
		assert.Equal(t, mytime.ExampleTime, envelope.CreatedAt.UTC())
		assert.NotEmpty(t, envelope.UID)

		// identical events get identical uids
		second := myevents.EventEnvelope{}
		err = json.Unmarshal([]byte(messages[1]), &second)
		assert.NoError(t, err)
		assert.Equal(t, envelope.UID, second.UID)
	})
}
