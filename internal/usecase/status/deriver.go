package status

import (
	"fmt"
	"time"

	"github.com/lavamax/console/internal/domain"
)

// Stage is the derived lifecycle stage of a service. It is never stored:
// deriving it from the timestamps on every read keeps the displayed status
// consistent with the record by construction.
type Stage string

const (
	StageReceived   Stage = "received"
	StageInProgress Stage = "in_progress"
	StageCompleted  Stage = "completed"
)

// StageOf derives the lifecycle stage from which optional fields are
// present, in fixed precedence: a delivery time always means completed,
// regardless of the other fields; otherwise an assigned washing employee
// means in progress; otherwise the service is merely received.
func StageOf(rec *domain.ServiceRecord) Stage {
	if rec.DeliveryTime != nil {
		return StageCompleted
	}
	if rec.WashingEmployee != nil {
		return StageInProgress
	}
	return StageReceived
}

// Duration is an elapsed wall-clock span in whole hours and remaining
// minutes. Known is false when either endpoint was absent; such a value
// must never be read as a zero duration.
type Duration struct {
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Known   bool `json:"known"`
}

// NotAvailable is the label shown for an unknown duration.
const NotAvailable = "not available"

func (d Duration) String() string {
	if !d.Known {
		return NotAvailable
	}
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}

// clockLayout matches the backend's time-of-day strings.
const clockLayout = "15:04:05"

// referenceDate anchors the date-less clock values. Any fixed date works;
// only the difference between the two instants matters.
var referenceDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Elapsed computes the span between two times of day. When the end reads
// earlier than the start, the end is assumed to fall on the following
// calendar day (a wash crossing midnight); the rollover is applied exactly
// once, so a span beyond 24 hours is not representable.
func Elapsed(startClock, endClock string) Duration {
	if startClock == "" || endClock == "" {
		return Duration{}
	}

	start, err := parseClock(startClock)
	if err != nil {
		return Duration{}
	}
	end, err := parseClock(endClock)
	if err != nil {
		return Duration{}
	}

	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}

	elapsed := end.Sub(start)
	return Duration{
		Hours:   int(elapsed / time.Hour),
		Minutes: int(elapsed % time.Hour / time.Minute),
		Known:   true,
	}
}

// ElapsedOf computes a service's duration from reception to delivery.
func ElapsedOf(rec *domain.ServiceRecord) Duration {
	if rec.DeliveryTime == nil {
		return Duration{}
	}
	return Elapsed(rec.ReceiveTime, *rec.DeliveryTime)
}

func parseClock(clock string) (time.Time, error) {
	parsed, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time of day %q: %w", clock, err)
	}
	return referenceDate.Add(
		time.Duration(parsed.Hour())*time.Hour +
			time.Duration(parsed.Minute())*time.Minute +
			time.Duration(parsed.Second())*time.Second,
	), nil
}
