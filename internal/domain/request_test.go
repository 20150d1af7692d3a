package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRequestStatusTransitions(t *testing.T) {
	all := []RequestStatus{RequestPending, RequestAccepted, RequestRejected, RequestCancelled}

	tests := []struct {
		name   string
		from   RequestStatus
		to     RequestStatus
		wantOK bool
	}{
		{"pending to accepted", RequestPending, RequestAccepted, true},
		{"pending to rejected", RequestPending, RequestRejected, true},
		{"pending to cancelled", RequestPending, RequestCancelled, true},
		{"pending to pending", RequestPending, RequestPending, false},
		{"accepted to rejected", RequestAccepted, RequestRejected, false},
		{"accepted to cancelled", RequestAccepted, RequestCancelled, false},
		{"rejected to accepted", RequestRejected, RequestAccepted, false},
		{"cancelled to pending", RequestCancelled, RequestPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantOK, tt.from.CanTransitionTo(tt.to))
		})
	}

	// Terminal states admit no outgoing transitions at all.
	for _, from := range all {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range all {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s should be rejected", from, to)
		}
	}
}

func TestRequestStatusClassification(t *testing.T) {
	assert.True(t, RequestPending.IsActive())
	assert.True(t, RequestAccepted.IsActive())
	assert.False(t, RequestRejected.IsActive())
	assert.False(t, RequestCancelled.IsActive())

	assert.False(t, RequestPending.IsTerminal())
	assert.True(t, RequestAccepted.IsTerminal())
	assert.True(t, RequestRejected.IsTerminal())
	assert.True(t, RequestCancelled.IsTerminal())

	assert.False(t, RequestPending.IsResolution())
	assert.True(t, RequestAccepted.IsResolution())

	assert.False(t, RequestStatus("PENDING").IsValid())
	assert.False(t, RequestStatus("").IsValid())
	assert.True(t, RequestRejected.IsValid())
}

func TestPlanOverlaps(t *testing.T) {
	date := func(s string) time.Time {
		d, err := ParseDate(s)
		if err != nil {
			t.Fatalf("bad date %q: %v", s, err)
		}
		return d
	}

	plan := &TravelPlan{
		StartDate: date("2026-06-10"),
		EndDate:   date("2026-06-20"),
	}

	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"window inside plan", "2026-06-12", "2026-06-15", true},
		{"plan inside window", "2026-06-01", "2026-06-30", true},
		{"touching at start", "2026-06-01", "2026-06-10", true},
		{"touching at end", "2026-06-20", "2026-06-25", true},
		{"entirely before", "2026-05-01", "2026-06-09", false},
		{"entirely after", "2026-06-21", "2026-07-01", false},
		{"open start", "", "2026-06-10", true},
		{"open end", "2026-06-20", "", true},
		{"open start miss", "", "2026-06-09", false},
		{"open end miss", "2026-06-21", "", false},
		{"unbounded", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var from, to time.Time
			if tt.from != "" {
				from = date(tt.from)
			}
			if tt.to != "" {
				to = date(tt.to)
			}
			assert.Equal(t, tt.want, plan.Overlaps(from, to))
		})
	}
}
