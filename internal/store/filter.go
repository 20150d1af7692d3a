package store

import (
	"strings"
	"time"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
)

// PlanFilter holds the optional criteria for listing and matching travel
// plans. Zero-valued fields are ignored; an empty filter matches every plan.
type PlanFilter struct {
	// Destination matches plans whose destination contains this string,
	// case-insensitively.
	Destination string
	// TravelType matches plans with exactly this travel type.
	TravelType domain.TravelType
	// StartDate and EndDate select plans whose date window overlaps the
	// [StartDate, EndDate] interval. Either bound may be zero, leaving that
	// side open.
	StartDate time.Time
	EndDate   time.Time
}

// IsZero reports whether no criteria are set.
func (f PlanFilter) IsZero() bool {
	return f.Destination == "" && f.TravelType == "" && f.StartDate.IsZero() && f.EndDate.IsZero()
}

// Matches reports whether the plan satisfies every set criterion.
//
// This is the in-memory twin of the SQL WHERE clause the SQLite store builds;
// the store tests cross-check the two against each other.
func (f PlanFilter) Matches(p *domain.TravelPlan) bool {
	if f.Destination != "" &&
		!strings.Contains(strings.ToLower(p.Destination), strings.ToLower(f.Destination)) {
		return false
	}
	if f.TravelType != "" && p.TravelType != f.TravelType {
		return false
	}
	if !p.Overlaps(f.StartDate, f.EndDate) {
		return false
	}
	return true
}
