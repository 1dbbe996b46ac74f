package renewal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDueForSuspension_Boundaries(t *testing.T) {
	w := NewWindow(7)
	last := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	lastMs := last.UnixMilli()
	end := last.Add(7 * 24 * time.Hour)

	require.False(t, w.DueForSuspension(lastMs, end.Add(-time.Millisecond)),
		"1ms before the window lapses must not suspend")
	require.False(t, w.DueForSuspension(lastMs, end),
		"exactly at the boundary must not suspend")
	require.True(t, w.DueForSuspension(lastMs, end.Add(time.Millisecond)),
		"1ms past the window must suspend")
}

func TestDueForSuspension_FutureRenewal(t *testing.T) {
	w := NewWindow(7)
	now := time.Now()
	future := now.Add(48 * time.Hour).UnixMilli()

	require.False(t, w.DueForSuspension(future, now),
		"a pre-seeded future renewal is never due")
}

func TestCanRenew(t *testing.T) {
	w := NewWindow(7)
	last := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lastMs := last.UnixMilli()
	end := w.PeriodEnd(lastMs)

	require.False(t, w.CanRenew(lastMs, end.Add(-2*24*time.Hour)),
		"two days before period end is outside the grace day")
	require.True(t, w.CanRenew(lastMs, end.Add(-time.Hour)),
		"inside the final day renewal is allowed")
	require.True(t, w.CanRenew(lastMs, end.Add(time.Hour)),
		"past the period end renewal is still allowed")
}

func TestStatusAt(t *testing.T) {
	w := NewWindow(3)
	last := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	lastMs := last.UnixMilli()

	st := w.StatusAt(lastMs, last.Add(24*time.Hour))
	require.False(t, st.LastChance)
	require.Equal(t, 2*24*time.Hour, st.Remaining)

	st = w.StatusAt(lastMs, last.Add(3*24*time.Hour).Add(time.Minute))
	require.True(t, st.LastChance)
}

func TestPeriodEnd(t *testing.T) {
	w := NewWindow(7)
	last := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.Equal(t, last.Add(7*24*time.Hour), w.PeriodEnd(last.UnixMilli()))
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{2*24*time.Hour + 5*time.Hour, "2 days and 5 hours"},
		{24*time.Hour + time.Hour, "1 day and 1 hour"},
		{30 * time.Minute, "0 days and 0.5 hours"},
		{0, "0 days and 0 hours"},
		{-time.Hour, "0 days and 0 hours"},
		{6*24*time.Hour + 23*time.Hour + 59*time.Minute, "6 days and 23.98 hours"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, FormatRemaining(tc.d))
	}
}
