package shipment

import (
	"strconv"
	"strings"
	"time"
)

// HubNotInformed is the bucket used when a shipment's destination city has
// no hub match. It is a first-class filterable value, not an error.
const HubNotInformed = "Não informado"

// Record is one (CTE, NF) shipment row as produced by the data access
// layer. Dates are day-granular; the zero time means "absent" (not yet
// scheduled / not yet delivered). Display-only columns that the upstream
// table carries but the engine does not interpret live in Extra.
type Record struct {
	CTE     string
	NF      string
	Issuer  string
	Hub     string
	Carrier string

	DestinationCity string
	DestinationUF   string

	EmissionDate     time.Time
	ExpectedDelivery time.Time
	ActualDelivery   time.Time

	VolumeCount int

	Extra map[string]string
}

// Key returns the composite (CTE, NF) identity of the record.
func (r Record) Key() string {
	return r.CTE + "\x1f" + r.NF
}

// HubOrDefault returns the matched hub or the "not informed" bucket.
func (r Record) HubOrDefault() string {
	if r.Hub == "" {
		return HubNotInformed
	}
	return r.Hub
}

// IssuerOrDefault returns the issuer or "unknown" when the source row had
// no issuer.
func (r Record) IssuerOrDefault() string {
	if r.Issuer == "" {
		return "unknown"
	}
	return r.Issuer
}

// Collapse deduplicates records sharing a (CTE, NF) key, keeping the first
// occurrence of every other field. Input order is preserved for the
// surviving records.
func Collapse(records []Record) []Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		key := rec.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// ParseVolume coerces raw volume text to a non-negative count.
// Non-numeric and negative input map to 0, never to an error.
func ParseVolume(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	// Upstream sheets sometimes store volumes as "12.0".
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		if f < 0 {
			return 0
		}
		return int(f)
	}
	return 0
}

// ParseDate parses a day-granular date from the formats the upstream tables
// actually contain. Malformed or empty input returns the zero time, which
// the engine treats as "absent".
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", "02/01/2006"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return DateOnly(t)
		}
	}
	return time.Time{}
}

// DateOnly truncates a timestamp to UTC midnight. All date comparisons in
// the engine happen at day granularity.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns b - a in whole days. Both arguments must already be
// day-granular (see DateOnly).
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
