package service

import (
	"github.com/wayfarerapp/wayfarer-server/internal/domain"
)

// Authorization policy for travel plans and their join requests. Every
// service operation that mutates state routes through exactly one of these
// functions, so there is a single place to read (and test) who may do what.

// CanMutatePlan reports whether the actor may update or delete the plan.
// Only the host or an admin may.
func CanMutatePlan(actor domain.Actor, plan *domain.TravelPlan) bool {
	return actor.IsAdmin() || actor.ID == plan.HostID
}

// CanRespondToRequest reports whether the actor may accept or reject a join
// request on the plan. Only the host or an admin may.
func CanRespondToRequest(actor domain.Actor, plan *domain.TravelPlan) bool {
	return actor.IsAdmin() || actor.ID == plan.HostID
}

// CanCancelRequest reports whether the actor may cancel the join request.
// The original requester may withdraw their own request; the host and admins
// may cancel any request on the plan.
func CanCancelRequest(actor domain.Actor, req *domain.ParticipantRequest, plan *domain.TravelPlan) bool {
	return actor.IsAdmin() || actor.ID == plan.HostID || actor.ID == req.UserID
}
