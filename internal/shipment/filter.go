package shipment

import (
	"strings"
	"time"
)

// Criteria narrows a classified record set. Zero-valued fields do not
// filter: a nil set admits every value, zero dates disable the range
// bounds. Set membership uses the same values the UI offers: the hub set
// may contain HubNotInformed and the issuer set "unknown" to select
// records where the source row left those columns empty.
type Criteria struct {
	EmissionFrom time.Time
	EmissionTo   time.Time

	CTEContains string
	NFContains  string

	Issuers  map[string]struct{}
	Hubs     map[string]struct{}
	Statuses map[Status]struct{}
}

// NewSet builds a membership set from a value list. An empty list yields
// nil, meaning "no filter".
func NewSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// NewStatusSet builds a status membership set from machine names, ignoring
// names that do not parse.
func NewStatusSet(names []string) map[Status]struct{} {
	if len(names) == 0 {
		return nil
	}
	set := make(map[Status]struct{}, len(names))
	for _, name := range names {
		if s, ok := ParseStatus(name); ok {
			set[s] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil
	}
	return set
}

// Filter returns the records matching every criterion, preserving input
// order. Filtering is pure set intersection: applying criteria in any
// order yields the same subset.
func Filter(records []Classified, c Criteria) []Classified {
	out := make([]Classified, 0, len(records))
	for _, rec := range records {
		if matches(rec, c) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(c Classified, crit Criteria) bool {
	rec := c.Record
	if !crit.EmissionFrom.IsZero() && rec.EmissionDate.Before(crit.EmissionFrom) {
		return false
	}
	if !crit.EmissionTo.IsZero() && rec.EmissionDate.After(crit.EmissionTo) {
		return false
	}
	if crit.CTEContains != "" && !strings.Contains(rec.CTE, crit.CTEContains) {
		return false
	}
	if crit.NFContains != "" && !strings.Contains(rec.NF, crit.NFContains) {
		return false
	}
	if crit.Issuers != nil {
		if _, ok := crit.Issuers[rec.IssuerOrDefault()]; !ok {
			return false
		}
	}
	if crit.Hubs != nil {
		if _, ok := crit.Hubs[rec.HubOrDefault()]; !ok {
			return false
		}
	}
	if crit.Statuses != nil {
		if _, ok := crit.Statuses[c.Status]; !ok {
			return false
		}
	}
	return true
}
