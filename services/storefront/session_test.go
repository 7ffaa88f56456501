package storefront

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/mytime"
)

func TestSessionRegistry(t *testing.T) {

	t.Run("Same uid returns same session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, now, created := setupRegistry(t, ctrl)

		// given
		*now = mytime.ExampleTime

		// when
		first := sut.get(ctx, "a")
		second := sut.get(ctx, "a")

		// then
		assert.Same(t, first, second)
		assert.Equal(t, []string{"a"}, *created)
	})

	t.Run("Idle sessions are evicted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, now, created := setupRegistry(t, ctrl)

		// given
		*now = mytime.ExampleTime
		first := sut.get(ctx, "idle")
		sut.get(ctx, "busy")
		*now = mytime.ExampleTime.Add(sessionIdleTimeout / 2)
		sut.get(ctx, "busy")

		// when
		*now = mytime.ExampleTime.Add(sessionIdleTimeout + time.Hour)
		sut.get(ctx, "other")

		// then
		assert.Len(t, sut.sessions, 2)
		assert.Contains(t, sut.sessions, "busy")
		assert.Contains(t, sut.sessions, "other")
		assert.NotContains(t, sut.sessions, "idle")

		again := sut.get(ctx, "idle")
		assert.NotSame(t, first, again)
		assert.Equal(t, []string{"idle", "busy", "other", "idle"}, *created)
	})

	t.Run("Sweep runs at most once per interval", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, now, _ := setupRegistry(t, ctrl)

		// given
		*now = mytime.ExampleTime
		sut.get(ctx, "a")
		sut.lastSweep = mytime.ExampleTime.Add(sessionIdleTimeout + time.Hour)

		// when
		*now = mytime.ExampleTime.Add(sessionIdleTimeout + time.Hour + time.Second)
		sut.get(ctx, "b")

		// then
		assert.Contains(t, sut.sessions, "a")
	})

	t.Run("Concurrent first requests share one session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		ctx, sut, now, _ := setupRegistry(t, ctrl)

		// given
		*now = mytime.ExampleTime

		// when
		sessions := make([]*session, 10)
		wg := sync.WaitGroup{}
		for i := range sessions {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				sessions[i] = sut.get(ctx, "shared")
			}(i)
		}
		wg.Wait()

		// then
		for _, s := range sessions {
			assert.Same(t, sessions[0], s)
		}
		assert.Len(t, sut.sessions, 1)
	})
}

func setupRegistry(t *testing.T, ctrl *gomock.Controller) (context.Context, *sessionRegistry, *time.Time, *[]string) {
	now := &time.Time{}
	nower := mytime.NewMockNower(ctrl)
	nower.EXPECT().Now().DoAndReturn(func() time.Time { return *now }).AnyTimes()

	mutex := sync.Mutex{}
	created := []string{}
	create := func(c context.Context, sessionUID string) *session {
		mutex.Lock()
		defer mutex.Unlock()
		created = append(created, sessionUID)
		return &session{display: NewDisplay(mytime.NewFakeScheduler())}
	}

	return context.TODO(), newSessionRegistry(create, nower, sessionIdleTimeout), now, &created
}
