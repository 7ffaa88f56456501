package storefront

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/cart"
)

func TestDisplay(t *testing.T) {

	t.Run("Empty cart", func(t *testing.T) {
		sut := NewDisplay(mytime.NewFakeScheduler())

		view := sut.View()

		assert.True(t, view.Empty)
		assert.Equal(t, 0, view.BadgeCount)
		assert.Equal(t, "0.00", view.Total)
	})

	t.Run("Refresh and notify on add", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, store, uuider, scheduler, sut := setupDisplay(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("id-1")
		uuider.EXPECT().Create().Return("id-2")

		// when
		store.AddItem(ctx, "Gaming Laptop", "R18999", "laptop.jpg")
		store.AddItem(ctx, "Budget Phone", "R2499", "phone.jpg")
		store.AddItem(ctx, "Budget Phone", "R2499", "phone.jpg")

		// then
		view := sut.View()
		assert.False(t, view.Empty)
		assert.Equal(t, 3, view.BadgeCount)
		assert.Equal(t, "R23997.00", view.Total)
		assert.Equal(t, []CartLine{
			{Index: 0, Name: "Gaming Laptop", Price: "R18999", Image: "laptop.jpg", Quantity: 1, LineTotal: "R18999.00"},
			{Index: 1, Name: "Budget Phone", Price: "R2499", Image: "phone.jpg", Quantity: 2, LineTotal: "R4998.00"},
		}, view.Lines)

		notification, visible := sut.Notification()
		assert.True(t, visible)
		assert.Equal(t, Notification{Severity: SeveritySuccess, Message: "Budget Phone added to cart!"}, notification)
		assert.True(t, sut.BadgePulsing())

		// when
		scheduler.FireAll()

		// then
		_, visible = sut.Notification()
		assert.False(t, visible)
		assert.False(t, sut.BadgePulsing())
	})

	t.Run("Quantity change only refreshes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, store, uuider, scheduler, sut := setupDisplay(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("id-1")
		store.AddItem(ctx, "Smartwatch", "R3499", "watch.jpg")
		scheduler.FireAll()

		// when
		store.SetQuantity(ctx, 0, 1)

		// then
		assert.Equal(t, 2, sut.View().BadgeCount)
		_, visible := sut.Notification()
		assert.False(t, visible)
		assert.Equal(t, 0, scheduler.Pending())
	})

	t.Run("Remove and clear notify", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, store, uuider, _, sut := setupDisplay(t, ctrl)

		// given
		uuider.EXPECT().Create().Return("id-1")
		uuider.EXPECT().Create().Return("id-2")
		store.AddItem(ctx, "Smartwatch", "R3499", "watch.jpg")
		store.AddItem(ctx, "Smartphone X", "R12999", "phone.jpg")

		// when
		store.RemoveItem(ctx, 0)

		// then
		notification, _ := sut.Notification()
		assert.Equal(t, Notification{Severity: SeverityInfo, Message: "Item removed from cart"}, notification)
		assert.Equal(t, "Smartphone X", sut.View().Lines[0].Name)
		assert.Equal(t, 0, sut.View().Lines[0].Index)

		// when
		store.Clear(ctx)

		// then
		notification, _ = sut.Notification()
		assert.Equal(t, "Cart cleared", notification.Message)
		assert.True(t, sut.View().Empty)
	})
}

func TestCurrencyPrefix(t *testing.T) {
	assert.Equal(t, "R", currencyPrefix("R1999"))
	assert.Equal(t, "$", currencyPrefix("$19.99"))
	assert.Equal(t, "€", currencyPrefix("€ 5"))
	assert.Equal(t, "", currencyPrefix("19.99"))
	assert.Equal(t, "", currencyPrefix("free"))
}

func setupDisplay(t *testing.T, ctrl *gomock.Controller) (context.Context, *cart.Store, *myuuid.MockUUIDer, *mytime.FakeScheduler, *Display) {
	c := context.TODO()
	storer, _, err := mystore.NewInMemoryStore[cart.StoredCart](c)
	assert.NoError(t, err)
	uuider := myuuid.NewMockUUIDer(ctrl)
	scheduler := mytime.NewFakeScheduler()

	store := cart.NewStore(cart.DefaultKey, cart.NewStorage(storer), uuider, mylog.New("cart"))
	sut := NewDisplay(scheduler)
	sut.Register(store)

	return c, store, uuider, scheduler, sut
}
