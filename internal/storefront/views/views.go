// Package views tracks the storefront's render surfaces and refreshes them
// together after a state change or sync signal.
package views

import (
	"context"
	"sync"

	"go.uber.org/multierr"

	"github.com/teltechdev/teltech-backend/pkg/logger"
	"github.com/teltechdev/teltech-backend/pkg/metrics"
)

// View is a render surface that can re-read state and redraw itself.
type View interface {
	Name() string
	Refresh(ctx context.Context) error
}

// Registry holds the active views. RefreshAll is how a change in one surface
// becomes visible in the others.
type Registry struct {
	mu    sync.RWMutex
	views []View
	logg  *logger.Logger
	sm    *metrics.SyncMetrics
}

func NewRegistry(logg *logger.Logger, sm *metrics.SyncMetrics) *Registry {
	return &Registry{logg: logg, sm: sm}
}

func (r *Registry) Register(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

// RefreshAll refreshes every registered view. One failing view does not stop
// the others; failures are aggregated and logged per view.
func (r *Registry) RefreshAll(ctx context.Context) error {
	r.mu.RLock()
	views := make([]View, len(r.views))
	copy(views, r.views)
	r.mu.RUnlock()

	var errs error
	for _, v := range views {
		if err := v.Refresh(ctx); err != nil {
			if r.logg != nil {
				r.logg.Error(r.logg.WithView(ctx, v.Name()), "view refresh failed", err)
			}
			errs = multierr.Append(errs, err)
			continue
		}
		r.sm.IncRefresh(v.Name())
	}
	return errs
}
