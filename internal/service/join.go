package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
	"github.com/wayfarerapp/wayfarer-server/internal/errors"
	"github.com/wayfarerapp/wayfarer-server/internal/id"
	"github.com/wayfarerapp/wayfarer-server/internal/store"
)

// JoinService orchestrates the participant request lifecycle with policy
// enforcement.
type JoinService struct {
	store  store.Store
	logger *slog.Logger
}

// NewJoinService creates a new join service.
func NewJoinService(store store.Store, logger *slog.Logger) *JoinService {
	return &JoinService{
		store:  store,
		logger: logger,
	}
}

// RequestToJoin files a pending request by the actor to join the plan.
// Hosts cannot request to join their own plan, and a user with an active
// (pending or accepted) request cannot file another one.
func (s *JoinService) RequestToJoin(ctx context.Context, actor domain.Actor, planID string) (*domain.ParticipantRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan, err := s.store.GetPlan(ctx, planID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("travel plan %s not found", planID)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	if plan.HostID == actor.ID {
		return nil, errors.Forbidden("hosts cannot request to join their own plan")
	}

	reqID, err := id.Generate(id.PrefixRequest)
	if err != nil {
		return nil, fmt.Errorf("generate request ID: %w", err)
	}

	req := &domain.ParticipantRequest{
		PlanID: planID,
		UserID: actor.ID,
		Status: domain.RequestPending,
	}
	req.ID = reqID
	req.InitTimestamps()

	// The partial unique index on active requests makes this safe under
	// concurrent duplicate submissions.
	if err := s.store.CreateRequest(ctx, req); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, errors.Conflict("an active request for this plan already exists")
		}
		return nil, fmt.Errorf("create request: %w", err)
	}

	s.logger.Info("join request filed",
		"request_id", req.ID,
		"plan_id", planID,
		"user_id", actor.ID,
	)

	return req, nil
}

// Respond resolves a pending request to the given terminal status.
// Accepting and rejecting is reserved to the host or an admin; cancelling is
// additionally open to the original requester. A request that is already
// resolved cannot be resolved again.
func (s *JoinService) Respond(ctx context.Context, actor domain.Actor, planID, requestID string, status domain.RequestStatus) (*domain.ParticipantRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !status.IsResolution() {
		return nil, errors.InvalidTransitionf("status must be one of accepted, rejected, cancelled; got %q", status)
	}

	plan, err := s.store.GetPlan(ctx, planID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("travel plan %s not found", planID)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	req, err := s.store.GetRequest(ctx, planID, requestID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("join request %s not found on plan %s", requestID, planID)
	}
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}

	allowed := CanRespondToRequest(actor, plan)
	if status == domain.RequestCancelled {
		allowed = CanCancelRequest(actor, req, plan)
	}
	if !allowed {
		return nil, errors.Forbidden("not allowed to respond to this join request")
	}

	if !req.Status.CanTransitionTo(status) {
		return nil, errors.InvalidTransitionf("request is %s and cannot move to %s", req.Status, status)
	}

	// Compare-and-set in the store; a concurrent resolution that got there
	// first surfaces as an invalid transition.
	resolved, err := s.store.ResolveRequest(ctx, planID, requestID, status)
	if errors.Is(err, store.ErrStaleStatus) {
		current, getErr := s.store.GetRequest(ctx, planID, requestID)
		if getErr != nil {
			return nil, fmt.Errorf("get request after lost race: %w", getErr)
		}
		return nil, errors.InvalidTransitionf("request is %s and cannot move to %s", current.Status, status)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("join request %s not found on plan %s", requestID, planID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolve request: %w", err)
	}

	s.logger.Info("join request resolved",
		"request_id", requestID,
		"plan_id", planID,
		"status", string(status),
		"actor_id", actor.ID,
	)

	return resolved, nil
}

// ListForPlan returns a plan's join requests in creation order. Only the
// host or an admin may list them.
func (s *JoinService) ListForPlan(ctx context.Context, actor domain.Actor, planID string) ([]*domain.ParticipantRequest, error) {
	plan, err := s.store.GetPlan(ctx, planID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("travel plan %s not found", planID)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	if !CanRespondToRequest(actor, plan) {
		return nil, errors.Forbidden("only the host or an admin can list join requests")
	}

	reqs, err := s.store.ListRequestsByPlan(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return reqs, nil
}
