package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type pingEvent struct{ n int }

func (pingEvent) Name() string { return "ping" }

func TestBus_DeliversToEverySubscriber(t *testing.T) {
	bus := New(zap.NewNop())
	var mu sync.Mutex
	var got []int

	for i := 0; i < 2; i++ {
		bus.Subscribe("ping", func(_ context.Context, e Event) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, e.(pingEvent).n)
			return nil
		})
	}
	bus.Subscribe("other", func(context.Context, Event) error {
		t.Error("чужое событие не должно доставляться")
		return nil
	})

	bus.Publish(context.Background(), pingEvent{n: 5})
	bus.Wait()

	assert.Equal(t, []int{5, 5}, got)
}

func TestBus_ListenerErrorDoesNotStopOthers(t *testing.T) {
	bus := New(zap.NewNop())
	done := make(chan struct{}, 1)
	bus.Subscribe("ping", func(context.Context, Event) error { return errors.New("сбой") })
	bus.Subscribe("ping", func(context.Context, Event) error {
		done <- struct{}{}
		return nil
	})

	bus.Publish(context.Background(), pingEvent{})
	bus.Wait()

	assert.Len(t, done, 1)
}

func TestBus_ListenerContextOutlivesRequest(t *testing.T) {
	bus := New(zap.NewNop())
	var listenerErr error
	bus.Subscribe("ping", func(ctx context.Context, _ Event) error {
		listenerErr = ctx.Err()
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, pingEvent{})
	bus.Wait()

	assert.NoError(t, listenerErr)
}
