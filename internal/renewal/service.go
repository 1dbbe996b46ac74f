package renewal

import (
	"context"
	"sync"
	"time"

	"coin_panel/internal/logger"
	"coin_panel/internal/store"
)

type RenewStatus int

const (
	RenewOK RenewStatus = iota
	// RenewNotTracked means no renewal record exists for the server;
	// renewals are simply not in effect for it.
	RenewNotTracked
	// RenewTooEarly means the request came before the final day of the
	// current period.
	RenewTooEarly
	RenewCannotAfford
	// RenewUnsuspendFailed means the coin deduction and clock advance
	// committed but the panel unsuspend call failed.
	RenewUnsuspendFailed
)

// RenewResult is the outcome of a manual renewal attempt.
type RenewResult struct {
	Status RenewStatus
	// Remaining is the time left until the period end; set for RenewTooEarly.
	Remaining time.Duration
}

// Service implements manual renewal. A keyed per-server mutex serializes
// concurrent renewals of the same server within this process, so two
// requests cannot both pass the affordability check before either deducts.
type Service struct {
	store  store.Store
	panel  Panel
	window Window
	cost   int64

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(st store.Store, panel Panel, window Window, cost int64) *Service {
	return &Service{
		store:  st,
		panel:  panel,
		window: window,
		cost:   cost,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *Service) serverLock(serverID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[serverID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[serverID] = l
	}
	return l
}

// Status returns the renewal state for a tracked server, or nil when no
// renewal record exists.
func (s *Service) Status(ctx context.Context, serverID string) (*Status, error) {
	lastRenewal, tracked, err := s.store.GetInt64(ctx, store.LastRenewalKey(serverID))
	if err != nil {
		return nil, err
	}
	if !tracked {
		return nil, nil
	}
	st := s.window.StatusAt(lastRenewal, time.Now())
	return &st, nil
}

// Renew performs the manual renewal for one of the caller's servers. On
// success the cost is deducted and lastRenewal advances to the end of the
// current period — never to "now", so renewing early inside the grace day
// cannot stretch the clock.
//
// A failed unsuspend after the deduction is NOT rolled back: the renewal
// bookkeeping is the source of truth and the panel's suspend state is
// reconciled by the next sweep or a manual retry.
func (s *Service) Renew(ctx context.Context, userID, serverID string) (*RenewResult, error) {
	lock := s.serverLock(serverID)
	lock.Lock()
	defer lock.Unlock()

	lastRenewal, tracked, err := s.store.GetInt64(ctx, store.LastRenewalKey(serverID))
	if err != nil {
		return nil, err
	}
	if !tracked {
		return &RenewResult{Status: RenewNotTracked}, nil
	}

	now := time.Now()
	periodEnd := s.window.PeriodEnd(lastRenewal)

	if !s.window.CanRenew(lastRenewal, now) {
		Renewals.WithLabelValues("too_early").Inc()
		return &RenewResult{Status: RenewTooEarly, Remaining: periodEnd.Sub(now)}, nil
	}

	balance, _, err := s.store.GetInt64(ctx, store.CoinsKey(userID))
	if err != nil {
		return nil, err
	}
	if s.cost > balance {
		Renewals.WithLabelValues("cannot_afford").Inc()
		return &RenewResult{Status: RenewCannotAfford}, nil
	}

	if err := s.store.SetInt64(ctx, store.CoinsKey(userID), balance-s.cost); err != nil {
		return nil, err
	}
	if err := s.store.SetInt64(ctx, store.LastRenewalKey(serverID), periodEnd.UnixMilli()); err != nil {
		// the deduction already committed; surface the error loudly
		logger.Error("renewal: deducted coins but failed to advance clock", "server", serverID, "user", userID, "error", err)
		return nil, err
	}

	if err := s.panel.Unsuspend(ctx, serverID); err != nil {
		Renewals.WithLabelValues("unsuspend_failed").Inc()
		logger.Error("renewal: failed to unsuspend server", "server", serverID, "error", err)
		return &RenewResult{Status: RenewUnsuspendFailed}, nil
	}

	Renewals.WithLabelValues("ok").Inc()
	logger.Info("server renewed and unsuspended", "server", serverID, "user", userID)
	return &RenewResult{Status: RenewOK}, nil
}
