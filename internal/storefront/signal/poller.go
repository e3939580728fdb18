package signal

import (
	"context"
	"time"

	"github.com/teltechdev/teltech-backend/internal/storefront/views"
	"github.com/teltechdev/teltech-backend/pkg/logger"
	"github.com/teltechdev/teltech-backend/pkg/metrics"
)

// DefaultPollInterval bounds how stale a view can get when changes arrive
// with no signal, such as edits made directly against the remote catalog.
const DefaultPollInterval = 10 * time.Second

// Poller refreshes all views on a fixed interval. It complements the signal
// channel rather than replacing it: signals give low latency, the poll gives
// the staleness bound.
type Poller struct {
	interval time.Duration
	registry *views.Registry
	logg     *logger.Logger
	sm       *metrics.SyncMetrics
}

func NewPoller(interval time.Duration, registry *views.Registry, logg *logger.Logger, sm *metrics.SyncMetrics) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{interval: interval, registry: registry, logg: logg, sm: sm}
}

// Run blocks, refreshing every interval until the context is cancelled. A
// failed cycle is counted and logged; the loop keeps going.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	if p.logg != nil {
		p.logg.Info(p.logg.WithField(ctx, "interval", p.interval.String()), "polling refresh started")
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.cycle(ctx)
		}
	}
}

func (p *Poller) cycle(ctx context.Context) {
	start := time.Now()
	err := p.registry.RefreshAll(ctx)
	p.sm.ObservePoll("poll", time.Since(start))
	if err != nil {
		p.sm.IncPollFailure("poll")
		if p.logg != nil {
			p.logg.Error(ctx, "polling refresh cycle failed", err)
		}
	}
}
