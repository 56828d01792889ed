package shipment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestClassify_Rules(t *testing.T) {
	today := date("2024-05-15")

	tests := []struct {
		name     string
		expected time.Time
		actual   time.Time
		want     Status
	}{
		{"no expected date", time.Time{}, time.Time{}, StatusInTransit},
		{"no expected date, delivered anyway", time.Time{}, date("2024-05-10"), StatusInTransit},
		{"not delivered, not due", date("2024-05-20"), time.Time{}, StatusInTransit},
		{"not delivered, due today", date("2024-05-15"), time.Time{}, StatusInTransit},
		{"not delivered, past due", date("2024-05-10"), time.Time{}, StatusInTransitLate},
		{"delivered on the expected date", date("2024-05-10"), date("2024-05-10"), StatusOnTime},
		{"delivered early", date("2024-05-10"), date("2024-05-08"), StatusEarly},
		{"delivered late", date("2024-05-10"), date("2024-05-12"), StatusLate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{ExpectedDelivery: tt.expected, ActualDelivery: tt.actual}
			assert.Equal(t, tt.want, Classify(rec, today))
		})
	}
}

func TestClassify_TotalAndDeterministic(t *testing.T) {
	// Every combination of present/absent dates and today before/on/after
	// the expected date yields exactly one status, and yields it twice.
	dates := []time.Time{{}, date("2024-05-10")}
	todays := []time.Time{date("2024-05-09"), date("2024-05-10"), date("2024-05-11")}

	for _, expected := range dates {
		for _, actual := range dates {
			for _, today := range todays {
				rec := Record{ExpectedDelivery: expected, ActualDelivery: actual}
				first := Classify(rec, today)
				second := Classify(rec, today)
				require.Equal(t, first, second)
				assert.Contains(t, AllStatuses, first)
			}
		}
	}
}

func TestDayDelta_Branches(t *testing.T) {
	today := date("2024-05-15")

	tests := []struct {
		name     string
		expected time.Time
		actual   time.Time
		want     int
	}{
		// In transit, past due: expected - today, negative once overdue.
		{"in transit late", date("2024-05-10"), time.Time{}, -5},
		// In transit before the due date: days remaining.
		{"in transit ahead of schedule", date("2024-05-20"), time.Time{}, 5},
		{"in transit without schedule", time.Time{}, time.Time{}, 0},
		// Delivered late: -(today - expected), not actual-based.
		{"delivered late", date("2024-05-10"), date("2024-05-12"), -5},
		// Delivered early or on time: delivery variance.
		{"delivered early", date("2024-05-10"), date("2024-05-08"), 2},
		{"delivered on time", date("2024-05-10"), date("2024-05-10"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{ExpectedDelivery: tt.expected, ActualDelivery: tt.actual}
			status := Classify(rec, today)
			assert.Equal(t, tt.want, DayDelta(rec, status, today))
		})
	}
}

func TestDayDelta_LateScenarioFromDashboard(t *testing.T) {
	// The documented dashboard scenario: due 2024-05-10, undelivered,
	// evaluated on 2024-05-15.
	rec := Record{ExpectedDelivery: date("2024-05-10")}
	today := date("2024-05-15")

	status := Classify(rec, today)
	require.Equal(t, StatusInTransitLate, status)
	assert.Equal(t, -5, DayDelta(rec, status, today))
}

func TestStatus_Delivered(t *testing.T) {
	assert.True(t, StatusOnTime.Delivered())
	assert.True(t, StatusEarly.Delivered())
	assert.True(t, StatusLate.Delivered())
	assert.False(t, StatusInTransit.Delivered())
	assert.False(t, StatusInTransitLate.Delivered())
}

func TestStatus_ParseRoundTrip(t *testing.T) {
	for _, s := range AllStatuses {
		got, ok := ParseStatus(s.String())
		require.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}
	_, ok := ParseStatus("nope")
	assert.False(t, ok)
}
