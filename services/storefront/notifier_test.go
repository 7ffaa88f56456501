package storefront

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storefront/lib/mytime"
)

func TestNotifier(t *testing.T) {

	t.Run("Auto dismiss", func(t *testing.T) {
		scheduler := mytime.NewFakeScheduler()
		sut := NewNotifier(scheduler, 2*time.Second)

		sut.Notify(SeveritySuccess, "Widget added to cart!")

		got, visible := sut.Current()
		assert.True(t, visible)
		assert.Equal(t, Notification{Severity: SeveritySuccess, Message: "Widget added to cart!"}, got)

		scheduler.FireAll()

		_, visible = sut.Current()
		assert.False(t, visible)
	})

	t.Run("Last notification replaces visible one", func(t *testing.T) {
		scheduler := mytime.NewFakeScheduler()
		sut := NewNotifier(scheduler, 2*time.Second)

		sut.Notify(SeveritySuccess, "Widget added to cart!")
		sut.Notify(SeverityInfo, "Item removed from cart")

		got, _ := sut.Current()
		assert.Equal(t, "Item removed from cart", got.Message)

		// the dismiss timer of the first notification must not hide the second
		scheduler.FireNext()
		got, visible := sut.Current()
		assert.True(t, visible)
		assert.Equal(t, SeverityInfo, got.Severity)

		scheduler.FireNext()
		_, visible = sut.Current()
		assert.False(t, visible)
	})
}

func TestPulse(t *testing.T) {
	scheduler := mytime.NewFakeScheduler()
	sut := NewPulse(scheduler, 600*time.Millisecond)
	assert.False(t, sut.Active())

	sut.Trigger()
	sut.Trigger()
	assert.True(t, sut.Active())
	assert.Equal(t, 2, scheduler.Pending())

	scheduler.FireNext()
	assert.True(t, sut.Active())

	scheduler.FireNext()
	assert.False(t, sut.Active())
}
