package shipment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseVolume(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"12", 12},
		{"12.0", 12},
		{" 7 ", 7},
		{"", 0},
		{"abc", 0},
		{"-3", 0},
		{"0", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseVolume(tt.raw), "raw=%q", tt.raw)
	}
}

func TestParseDate(t *testing.T) {
	assert.Equal(t, date("2024-05-10"), ParseDate("2024-05-10"))
	assert.Equal(t, date("2024-05-10"), ParseDate("2024-05-10 14:22:01"))
	assert.Equal(t, date("2024-05-10"), ParseDate("10/05/2024"))
	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate("not a date").IsZero())
	assert.True(t, ParseDate("2024-13-40").IsZero())
}

func TestDateOnly(t *testing.T) {
	ts := time.Date(2024, 5, 10, 23, 59, 1, 0, time.UTC)
	assert.Equal(t, date("2024-05-10"), DateOnly(ts))
	assert.True(t, DateOnly(time.Time{}).IsZero())
}

func TestCollapse_FirstValueWins(t *testing.T) {
	records := []Record{
		{CTE: "1", NF: "a", Issuer: "first"},
		{CTE: "1", NF: "a", Issuer: "second"},
		{CTE: "1", NF: "b", Issuer: "third"},
		{CTE: "2", NF: "a", Issuer: "fourth"},
	}

	got := Collapse(records)

	assert.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Issuer)
	assert.Equal(t, "third", got[1].Issuer)
	assert.Equal(t, "fourth", got[2].Issuer)
}

func TestHubOrDefault(t *testing.T) {
	assert.Equal(t, "Hub Sul", Record{Hub: "Hub Sul"}.HubOrDefault())
	assert.Equal(t, HubNotInformed, Record{}.HubOrDefault())
}
