package model

import (
	"math"
	"time"
)

const DefaultCancellationLead = 2 * time.Hour

// CancellationPolicy allows cancellation only while the booking start is more than MinimumLead away.
type CancellationPolicy struct {
	MinimumLead time.Duration
	Location    *time.Location
}

type CancellationDecision struct {
	CanCancel            bool
	AlreadyCancelled     bool
	HoursUntilBooking    float64
	MinimumHoursRequired float64
}

func NewCancellationPolicy(leadHours int, loc *time.Location) CancellationPolicy {
	lead := time.Duration(leadHours) * time.Hour
	if leadHours <= 0 {
		lead = DefaultCancellationLead
	}

	if loc == nil {
		loc = time.UTC
	}

	return CancellationPolicy{MinimumLead: lead, Location: loc}
}

// Evaluate decides whether b may be cancelled at now.
func (p CancellationPolicy) Evaluate(b Booking, now time.Time) (CancellationDecision, error) {
	decision := CancellationDecision{
		MinimumHoursRequired: p.MinimumLead.Hours(),
	}

	start, err := b.StartsAt(p.Location)
	if err != nil {
		return decision, err
	}

	until := start.Sub(now)
	decision.HoursUntilBooking = RoundHours(until)

	if b.Status == StatusCancelled {
		decision.AlreadyCancelled = true

		return decision, nil
	}

	decision.CanCancel = until > p.MinimumLead

	return decision, nil
}

// RoundHours rounds d to one decimal place of an hour, halves rounding up.
func RoundHours(d time.Duration) float64 {
	return math.Floor(d.Hours()*10+0.5) / 10
}
