package renewal

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"coin_panel/internal/ptero"
	"coin_panel/internal/store"

	"github.com/stretchr/testify/require"
)

// fakePanel records suspend/unsuspend calls and lets tests inject failures
// per server.
type fakePanel struct {
	mu           sync.Mutex
	servers      []ptero.Server
	listErr      error
	getErr       map[string]error
	suspendErr   map[string]error
	unsuspendErr map[string]error
	suspended    []string
	unsuspended  []string
}

func newFakePanel(servers ...ptero.Server) *fakePanel {
	return &fakePanel{
		servers:      servers,
		getErr:       make(map[string]error),
		suspendErr:   make(map[string]error),
		unsuspendErr: make(map[string]error),
	}
}

func (p *fakePanel) ListServers(_ context.Context) ([]ptero.Server, error) {
	if p.listErr != nil {
		return nil, p.listErr
	}
	return p.servers, nil
}

func (p *fakePanel) GetServer(_ context.Context, id string) (*ptero.Server, error) {
	if err := p.getErr[id]; err != nil {
		return nil, err
	}
	for _, s := range p.servers {
		if s.ID == id {
			srv := s
			return &srv, nil
		}
	}
	return nil, errors.New("not found")
}

func (p *fakePanel) Suspend(_ context.Context, id string) error {
	if err := p.suspendErr[id]; err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.suspended = append(p.suspended, id)
	return nil
}

func (p *fakePanel) Unsuspend(_ context.Context, id string) error {
	if err := p.unsuspendErr[id]; err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.unsuspended = append(p.unsuspended, id)
	return nil
}

func setLastRenewal(t *testing.T, st store.Store, serverID string, at time.Time) {
	t.Helper()
	require.NoError(t, st.SetInt64(context.Background(), store.LastRenewalKey(serverID), at.UnixMilli()))
}

func TestSweep_SuspendsExpired(t *testing.T) {
	st := store.NewMemory()
	panel := newFakePanel(ptero.Server{ID: "1", Name: "expired"})
	setLastRenewal(t, st, "1", time.Now().Add(-7*24*time.Hour).Add(-time.Millisecond))

	s := NewScheduler(st, panel, NewWindow(7), false)
	s.Sweep(context.Background())

	require.Equal(t, []string{"1"}, panel.suspended)
}

func TestSweep_SkipsInsideWindow(t *testing.T) {
	st := store.NewMemory()
	panel := newFakePanel(ptero.Server{ID: "1"})
	setLastRenewal(t, st, "1", time.Now().Add(-7*24*time.Hour).Add(time.Second))

	s := NewScheduler(st, panel, NewWindow(7), false)
	s.Sweep(context.Background())

	require.Empty(t, panel.suspended)
}

func TestSweep_SkipsUntracked(t *testing.T) {
	st := store.NewMemory()
	panel := newFakePanel(ptero.Server{ID: "1"})

	s := NewScheduler(st, panel, NewWindow(7), false)
	s.Sweep(context.Background())

	require.Empty(t, panel.suspended)
}

func TestSweep_SkipsFutureRenewal(t *testing.T) {
	st := store.NewMemory()
	panel := newFakePanel(ptero.Server{ID: "1"})
	setLastRenewal(t, st, "1", time.Now().Add(24*time.Hour))

	s := NewScheduler(st, panel, NewWindow(7), false)
	s.Sweep(context.Background())

	require.Empty(t, panel.suspended)
}

func TestSweep_IdempotentOnSuspended(t *testing.T) {
	st := store.NewMemory()
	panel := newFakePanel(ptero.Server{ID: "1", Suspended: true})
	setLastRenewal(t, st, "1", time.Now().Add(-30*24*time.Hour))

	s := NewScheduler(st, panel, NewWindow(7), false)
	s.Sweep(context.Background())

	require.Empty(t, panel.suspended, "already-suspended server must not get a redundant suspend call")
}

func TestSweep_OneFailureDoesNotAbortBatch(t *testing.T) {
	st := store.NewMemory()
	panel := newFakePanel(
		ptero.Server{ID: "1"},
		ptero.Server{ID: "2"},
		ptero.Server{ID: "3"},
	)
	expired := time.Now().Add(-14 * 24 * time.Hour)
	setLastRenewal(t, st, "1", expired)
	setLastRenewal(t, st, "2", expired)
	setLastRenewal(t, st, "3", expired)
	panel.getErr["1"] = errors.New("panel timeout")
	panel.suspendErr["2"] = errors.New("suspend refused")

	s := NewScheduler(st, panel, NewWindow(7), false)
	s.Sweep(context.Background())

	require.Equal(t, []string{"3"}, panel.suspended,
		"the sweep must keep going past failing servers")
}

func TestSweep_ListFailureTolerated(t *testing.T) {
	st := store.NewMemory()
	panel := newFakePanel()
	panel.listErr = errors.New("panel down")

	s := NewScheduler(st, panel, NewWindow(7), false)
	s.Sweep(context.Background()) // must not panic

	require.Empty(t, panel.suspended)
}

func TestSweep_Serialized(t *testing.T) {
	st := store.NewMemory()
	panel := newFakePanel(ptero.Server{ID: "1"})
	setLastRenewal(t, st, "1", time.Now().Add(-14*24*time.Hour))

	s := NewScheduler(st, panel, NewWindow(7), false)

	// simulate a sweep still in flight
	require.True(t, s.running.CompareAndSwap(false, true))
	s.Sweep(context.Background())
	require.Empty(t, panel.suspended, "overlapping tick must be skipped")
	s.running.Store(false)

	s.Sweep(context.Background())
	require.Equal(t, []string{"1"}, panel.suspended)
}
