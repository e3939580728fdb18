package signal

import (
	"context"
	"testing"
	"time"

	"github.com/teltechdev/teltech-backend/internal/storefront/views"
)

type notifyingView struct {
	refreshed chan struct{}
}

func (v *notifyingView) Name() string { return "test_view" }

func (v *notifyingView) Refresh(ctx context.Context) error {
	select {
	case v.refreshed <- struct{}{}:
	default:
	}
	return nil
}

func TestPollerRefreshesWithinInterval(t *testing.T) {
	view := &notifyingView{refreshed: make(chan struct{}, 1)}
	registry := views.NewRegistry(nil, nil)
	registry.Register(view)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller := NewPoller(10*time.Millisecond, registry, nil, nil)
	go poller.Run(ctx)

	select {
	case <-view.refreshed:
	case <-time.After(time.Second):
		t.Fatal("view was not refreshed within the poll interval")
	}
}

func TestPollerStopsOnContextCancel(t *testing.T) {
	registry := views.NewRegistry(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	poller := NewPoller(10*time.Millisecond, registry, nil, nil)
	if err := poller.Run(ctx); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPollerDefaultsInterval(t *testing.T) {
	poller := NewPoller(0, views.NewRegistry(nil, nil), nil, nil)
	if poller.interval != DefaultPollInterval {
		t.Fatalf("expected default interval, got %s", poller.interval)
	}
}
