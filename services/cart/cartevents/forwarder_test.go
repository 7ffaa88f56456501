package cartevents

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/cart"
)

func TestForwarder(t *testing.T) {

	t.Run("Create topic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, _, publisher, _ := setup(t, ctrl)
		sut := NewForwarder(publisher, mylog.New("cartevents"))

		// given
		publisher.EXPECT().CreateTopic(ctx, TopicName).Return(nil)

		// when
		err := sut.CreateTopic(ctx)

		// then
		assert.NoError(t, err)
	})

	t.Run("Publish every mutation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, store, publisher, uuider := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("id-1")
		gomock.InOrder(
			publisher.EXPECT().Publish(ctx, TopicName, ItemAdded{CartKey: "cart", Name: "Widget", Price: "$10.00", Quantity: 1}),
			publisher.EXPECT().Publish(ctx, TopicName, QuantityChanged{CartKey: "cart", Name: "Widget", Price: "$10.00", Quantity: 3}),
			publisher.EXPECT().Publish(ctx, TopicName, ItemRemoved{CartKey: "cart", Name: "Widget", Price: "$10.00"}),
			publisher.EXPECT().Publish(ctx, TopicName, Cleared{CartKey: "cart"}),
		)

		// when
		store.AddItem(ctx, "Widget", "$10.00", "img1")
		store.SetQuantity(ctx, 0, 2)
		store.RemoveItem(ctx, 0)
		store.Clear(ctx)
	})

	t.Run("Publish failure leaves cart intact", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, store, publisher, uuider := setup(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("id-1")
		publisher.EXPECT().Publish(ctx, TopicName, gomock.Any()).Return(fmt.Errorf("unavailable"))

		// when
		_, err := store.AddItem(ctx, "Widget", "$10.00", "img1")

		// then
		assert.NoError(t, err)
		assert.Equal(t, 1, store.TotalItemCount())
	})
}

func TestEventNames(t *testing.T) {
	assert.Equal(t, "cart.item.added", ItemAdded{}.GetEventTypeName())
	assert.Equal(t, "cart.item.removed", ItemRemoved{}.GetEventTypeName())
	assert.Equal(t, "cart.quantity.changed", QuantityChanged{}.GetEventTypeName())
	assert.Equal(t, "cart.cleared", Cleared{}.GetEventTypeName())
	assert.Equal(t, "cart-1", Cleared{CartKey: "cart-1"}.GetAggregateName())
}

func setup(t *testing.T, ctrl *gomock.Controller) (context.Context, *cart.Store, *mypublisher.MockPublisher, *myuuid.MockUUIDer) {
	c := context.TODO()
	storer, _, err := mystore.NewInMemoryStore[cart.StoredCart](c)
	assert.NoError(t, err)
	uuider := myuuid.NewMockUUIDer(ctrl)
	publisher := mypublisher.NewMockPublisher(ctrl)

	store := cart.NewStore(cart.DefaultKey, cart.NewStorage(storer), uuider, mylog.New("cart"))
	NewForwarder(publisher, mylog.New("cartevents")).Register(store)

	return c, store, publisher, uuider
}
