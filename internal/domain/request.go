package domain

// RequestStatus is the lifecycle state of a participant request.
//
// The state machine is intentionally small: a request starts pending and
// resolves exactly once. Terminal states never transition again.
//
//	pending -> accepted | rejected | cancelled
type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

// IsValid reports whether s is a known status value.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected, RequestCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s is a resolved state. Terminal requests are
// immutable.
func (s RequestStatus) IsTerminal() bool {
	switch s {
	case RequestAccepted, RequestRejected, RequestCancelled:
		return true
	}
	return false
}

// IsActive reports whether s counts toward the one-active-request-per-user
// rule. A pending or accepted request blocks the user from filing another
// request for the same plan.
func (s RequestStatus) IsActive() bool {
	return s == RequestPending || s == RequestAccepted
}

// IsResolution reports whether s is a status a response may set. Pending is
// never a valid target; requests are born pending and only leave it.
func (s RequestStatus) IsResolution() bool {
	return s.IsTerminal()
}

// CanTransitionTo reports whether the status may move from s to target.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	return s == RequestPending && target.IsResolution()
}

// ParticipantRequest is one user's request to join a travel plan.
type ParticipantRequest struct {
	Record
	PlanID string        `json:"plan_id"`
	UserID string        `json:"user_id"`
	Status RequestStatus `json:"status"`
}

// IsPending reports whether the request is still awaiting a response.
func (r *ParticipantRequest) IsPending() bool {
	return r.Status == RequestPending
}
