package shipment

import "time"

// Status is the delivery status of a shipment at a given reference date.
type Status int

const (
	// StatusInTransit: no expected delivery scheduled yet, or scheduled
	// and not yet due.
	StatusInTransit Status = iota
	// StatusInTransitLate: not delivered and the expected date has passed.
	StatusInTransitLate
	// StatusOnTime: delivered exactly on the expected date.
	StatusOnTime
	// StatusEarly: delivered before the expected date.
	StatusEarly
	// StatusLate: delivered after the expected date.
	StatusLate
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{
	StatusInTransit,
	StatusInTransitLate,
	StatusOnTime,
	StatusEarly,
	StatusLate,
}

// Label returns the Portuguese UI label for the status.
func (s Status) Label() string {
	switch s {
	case StatusInTransit:
		return "Em Trânsito"
	case StatusInTransitLate:
		return "Em Trânsito (atrasado)"
	case StatusOnTime:
		return "No Prazo"
	case StatusEarly:
		return "Antecipado"
	case StatusLate:
		return "Atrasado"
	}
	return "desconhecido"
}

// String returns a stable machine name, used in JSON output and filters.
func (s Status) String() string {
	switch s {
	case StatusInTransit:
		return "em_transito"
	case StatusInTransitLate:
		return "em_transito_atrasado"
	case StatusOnTime:
		return "no_prazo"
	case StatusEarly:
		return "antecipado"
	case StatusLate:
		return "atrasado"
	}
	return "desconhecido"
}

// ParseStatus maps a machine name back to a Status.
func ParseStatus(name string) (Status, bool) {
	for _, s := range AllStatuses {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// Delivered reports whether the status corresponds to a completed delivery.
func (s Status) Delivered() bool {
	return s == StatusOnTime || s == StatusEarly || s == StatusLate
}

// Classify derives the status of a record at the given reference date.
//
// The rules are evaluated in order, first match wins:
//  1. no expected delivery -> InTransit
//  2. not delivered: past due -> InTransitLate, otherwise InTransit
//  3. delivered: expected - actual < 0 -> Late, > 0 -> Early, == 0 -> OnTime
//
// Classify is total and pure: every record maps to exactly one status and
// the result depends only on the two dates and today.
func Classify(rec Record, today time.Time) Status {
	today = DateOnly(today)
	if rec.ExpectedDelivery.IsZero() {
		return StatusInTransit
	}
	if rec.ActualDelivery.IsZero() {
		if today.After(rec.ExpectedDelivery) {
			return StatusInTransitLate
		}
		return StatusInTransit
	}
	diff := daysBetween(rec.ActualDelivery, rec.ExpectedDelivery)
	switch {
	case diff < 0:
		return StatusLate
	case diff > 0:
		return StatusEarly
	default:
		return StatusOnTime
	}
}

// DayDelta derives the signed day count shown next to the status.
//
// The sign convention differs per branch and is kept exactly as the
// dashboards display it:
//   - Late: -(today - expected), days overdue as a negative number
//   - InTransit / InTransitLate: expected - today, negative once overdue;
//     0 when no expected date exists
//   - OnTime / Early: expected - actual, the delivery variance
func DayDelta(rec Record, status Status, today time.Time) int {
	today = DateOnly(today)
	switch status {
	case StatusLate:
		return -daysBetween(rec.ExpectedDelivery, today)
	case StatusInTransit, StatusInTransitLate:
		if rec.ExpectedDelivery.IsZero() {
			return 0
		}
		return daysBetween(today, rec.ExpectedDelivery)
	default:
		return daysBetween(rec.ActualDelivery, rec.ExpectedDelivery)
	}
}
