// Package renewal implements the renewal window arithmetic, the minutely
// suspension sweep and the manual renew operation.
package renewal

import (
	"fmt"
	"math"
	"time"
)

const (
	msPerDay  = 86_400_000
	msPerHour = 3_600_000

	// renewals are only permitted inside the final day of a period
	gracePeriod = 24 * time.Hour
)

// Window is the renewal period: delay days counted from a server's
// lastRenewal timestamp (epoch milliseconds).
type Window struct {
	delay time.Duration
}

func NewWindow(delayDays int) Window {
	return Window{delay: time.Duration(delayDays) * 24 * time.Hour}
}

// PeriodEnd is when the current period expires.
func (w Window) PeriodEnd(lastRenewalMillis int64) time.Time {
	return time.UnixMilli(lastRenewalMillis).Add(w.delay)
}

// DueForSuspension reports whether the window has fully lapsed. A
// lastRenewal in the future is never due (guards against clock skew and
// pre-seeded renewals).
func (w Window) DueForSuspension(lastRenewalMillis int64, now time.Time) bool {
	last := time.UnixMilli(lastRenewalMillis)
	if last.After(now) {
		return false
	}
	return now.Sub(last) > w.delay
}

// CanRenew reports whether now falls inside the grace day at the end of
// the period (or past it).
func (w Window) CanRenew(lastRenewalMillis int64, now time.Time) bool {
	return !now.Before(w.PeriodEnd(lastRenewalMillis).Add(-gracePeriod))
}

// Status describes a tracked server's renewal state for the status endpoint.
type Status struct {
	// LastChance is set once the period has fully expired.
	LastChance bool
	// Remaining is the time until the period ends; zero when LastChance.
	Remaining time.Duration
}

func (w Window) StatusAt(lastRenewalMillis int64, now time.Time) Status {
	if now.Sub(time.UnixMilli(lastRenewalMillis)) > w.delay {
		return Status{LastChance: true}
	}
	return Status{Remaining: w.PeriodEnd(lastRenewalMillis).Sub(now)}
}

// FormatRemaining renders a duration as "N days and H hours", hours to two
// decimals, with the same pluralization the dashboard has always shown.
func FormatRemaining(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}

	days := ms / msPerDay
	hours := math.Round(float64(ms-days*msPerDay)/msPerHour*100) / 100

	dayUnit := "days"
	if days == 1 {
		dayUnit = "day"
	}
	hourUnit := "hours"
	if hours == 1 {
		hourUnit = "hour"
	}

	return fmt.Sprintf("%d %s and %g %s", days, dayUnit, hours, hourUnit)
}
