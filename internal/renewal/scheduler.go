package renewal

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"coin_panel/internal/logger"
	"coin_panel/internal/ptero"
	"coin_panel/internal/store"
)

// Panel is the slice of the Pterodactyl client the renewal system uses.
type Panel interface {
	ListServers(ctx context.Context) ([]ptero.Server, error)
	GetServer(ctx context.Context, id string) (*ptero.Server, error)
	Suspend(ctx context.Context, id string) error
	Unsuspend(ctx context.Context, id string) error
}

var _ Panel = (*ptero.Client)(nil)

// Scheduler sweeps all panel servers once a minute and suspends any whose
// renewal window has lapsed. Sweeps are serialized: a tick that fires while
// the previous sweep is still running is skipped, bounding the number of
// outstanding panel calls. The sweep itself is idempotent, so several
// worker processes may run their own schedulers against the same store.
type Scheduler struct {
	store    store.Store
	panel    Panel
	window   Window
	verbose  bool
	interval time.Duration
	running  atomic.Bool
	log      *slog.Logger
}

func NewScheduler(st store.Store, panel Panel, window Window, verbose bool) *Scheduler {
	return &Scheduler{
		store:    st,
		panel:    panel,
		window:   window,
		verbose:  verbose,
		interval: time.Minute,
		log:      logger.With("component", "renewal-sweep"),
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Sweep(ctx)
			case <-ctx.Done():
				s.log.Info("renewal scheduler stopped")
				return
			}
		}
	}()
}

// Sweep checks every server once. One server's failure never aborts the
// rest of the batch.
func (s *Scheduler) Sweep(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Debug("previous sweep still running, skipping tick")
		return
	}
	defer s.running.Store(false)

	if s.verbose {
		s.log.Info("checking renewal servers")
	}

	servers, err := s.panel.ListServers(ctx)
	if err != nil {
		SweepErrors.Inc()
		s.log.Error("failed to list servers", "error", err)
		return
	}

	for _, srv := range servers {
		s.checkServer(ctx, srv.ID)
	}

	Sweeps.Inc()
	if s.verbose {
		s.log.Info("renewal check-over complete", "servers", len(servers))
	}
}

func (s *Scheduler) checkServer(ctx context.Context, id string) {
	lastRenewal, tracked, err := s.store.GetInt64(ctx, store.LastRenewalKey(id))
	if err != nil {
		SweepErrors.Inc()
		s.log.Error("failed to read renewal record", "server", id, "error", err)
		return
	}
	if !tracked {
		return
	}

	if !s.window.DueForSuspension(lastRenewal, time.Now()) {
		return
	}

	details, err := s.panel.GetServer(ctx, id)
	if err != nil {
		SweepErrors.Inc()
		s.log.Error("failed to fetch server details, skipping", "server", id, "error", err)
		return
	}
	if details.Suspended {
		// already suspended, don't issue a redundant call
		return
	}

	if err := s.panel.Suspend(ctx, id); err != nil {
		SweepErrors.Inc()
		s.log.Error("failed to suspend server", "server", id, "error", err)
		return
	}

	Suspensions.Inc()
	if s.verbose {
		s.log.Info("server failed renewal and was suspended", "server", id)
	}
}
