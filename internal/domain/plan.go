package domain

import "time"

// DateFormat is the wire and storage format for calendar dates.
// Travel plan dates are calendar dates, not instants; they carry no time of
// day and no zone.
const DateFormat = "2006-01-02"

// ParseDate parses a calendar date in DateFormat.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// TravelType categorizes a travel plan. Free-form, but these values cover
// the common cases and are what clients offer in pickers.
type TravelType string

const (
	TravelTypeAdventure   TravelType = "adventure"
	TravelTypeLeisure     TravelType = "leisure"
	TravelTypeBusiness    TravelType = "business"
	TravelTypeBackpacking TravelType = "backpacking"
	TravelTypeFamily      TravelType = "family"
)

// TravelPlan represents a published trip: a host, a destination, and a date
// window other users can ask to join.
//
// Invariant: StartDate <= EndDate. Enforced at creation and on every update.
type TravelPlan struct {
	Record
	HostID      string     `json:"host_id"`
	Destination string     `json:"destination"`
	TravelType  TravelType `json:"travel_type"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`

	// Participants holds the plan's join requests ordered by creation time.
	// Populated on single-plan reads; nil in listings.
	Participants []*ParticipantRequest `json:"participants,omitempty"`
}

// Overlaps reports whether the plan's [StartDate, EndDate] window intersects
// the given interval. A zero bound is treated as unbounded on that side.
func (p *TravelPlan) Overlaps(from, to time.Time) bool {
	if !to.IsZero() && p.StartDate.After(to) {
		return false
	}
	if !from.IsZero() && p.EndDate.Before(from) {
		return false
	}
	return true
}
