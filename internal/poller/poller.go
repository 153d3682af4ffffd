// Package poller drives the dashboard refresh loop. It replaces the
// original always-ticking timer with an explicit task: Start runs the
// loop, Stop cancels it, and leaving the dashboard view stops the
// ticker instead of gating its effect.
package poller

import (
	"context"
	"sync"
	"time"

	"shuletrack/internal/domain/dashboard"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// StatusFailed is the sync indicator text after a failed refresh.
const StatusFailed = "sync failed"

// Source provides the dashboard payloads. *client.Client implements it.
type Source interface {
	Stats(ctx context.Context) (*dashboard.Stats, error)
	KPIs(ctx context.Context) (*dashboard.KPIs, error)
}

// Snapshot is one complete refresh result. Stats and KPIs are fetched
// jointly; a snapshot is only published when both arrived.
type Snapshot struct {
	Stats    *dashboard.Stats
	KPIs     *dashboard.KPIs
	SyncedAt time.Time
}

// Poller refreshes the dashboard on a fixed cadence. A failed refresh
// arms exactly one retry timer; if the retry fails too it re-arms,
// forming a deliberate fixed-delay retry loop that only cancellation
// stops.
type Poller struct {
	src        Source
	interval   time.Duration
	retryDelay time.Duration
	onUpdate   func(Snapshot)

	mu         sync.Mutex
	status     string
	retryArmed bool
	running    bool
	cancel     context.CancelFunc
	done       chan struct{}
}

// New creates a poller. onUpdate receives every successful snapshot and
// must not block for long; it runs on the poll goroutine.
func New(src Source, interval, retryDelay time.Duration, onUpdate func(Snapshot)) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if retryDelay <= 0 {
		retryDelay = 10 * time.Second
	}
	return &Poller{
		src:        src,
		interval:   interval,
		retryDelay: retryDelay,
		onUpdate:   onUpdate,
	}
}

// Start launches the poll loop with an immediate first refresh.
// Starting a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	p.running = true
	p.mu.Unlock()

	go p.run(ctx)
}

// Stop cancels the loop and waits for it to exit. Safe to call
// repeatedly and on a poller that never started.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done
}

// SyncStatus returns the current sync indicator text.
func (p *Poller) SyncStatus() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Poller) retryPending() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.retryArmed
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)
	log.Info().Dur("interval", p.interval).Msg("dashboard poller: started")

	t := time.NewTicker(p.interval)
	defer t.Stop()

	retry := time.NewTimer(p.retryDelay)
	if !retry.Stop() {
		<-retry.C
	}
	defer retry.Stop()

	p.tick(ctx, retry)
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("dashboard poller: stopping")
			return
		case <-t.C:
			p.tick(ctx, retry)
		case <-retry.C:
			p.mu.Lock()
			p.retryArmed = false
			p.mu.Unlock()
			p.tick(ctx, retry)
		}
	}
}

// tick runs one refresh and manages the single retry timer: armed on
// failure, disarmed once a refresh succeeds.
func (p *Poller) tick(ctx context.Context, retry *time.Timer) {
	if err := p.refresh(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Error().Err(err).Msg("dashboard poller: refresh failed")
		p.mu.Lock()
		p.status = StatusFailed
		if !p.retryArmed {
			p.retryArmed = true
		}
		p.mu.Unlock()
		retry.Reset(p.retryDelay)
		return
	}

	p.mu.Lock()
	if p.retryArmed {
		p.retryArmed = false
		if !retry.Stop() {
			select {
			case <-retry.C:
			default:
			}
		}
	}
	p.mu.Unlock()
}

// refresh fetches stats and KPIs in parallel and publishes them only
// when both succeeded, so the view never renders a partial update.
func (p *Poller) refresh(ctx context.Context) error {
	var (
		stats *dashboard.Stats
		kpis  *dashboard.KPIs
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = p.src.Stats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		kpis, err = p.src.KPIs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	now := time.Now()
	p.mu.Lock()
	p.status = "synced " + now.Format("15:04:05")
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(Snapshot{Stats: stats, KPIs: kpis, SyncedAt: now})
	}
	return nil
}
