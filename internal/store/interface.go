// Package store defines the persistence contract for the Wayfarer server.
// Implementations live in subpackages; services depend only on the Store
// interface so storage engines can be swapped without touching business
// logic.
package store

import (
	"context"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
)

// Store is the persistence interface for the Wayfarer server.
type Store interface {
	UserStore
	SessionStore
	PlanStore
	RequestStore

	// Close releases the underlying database resources.
	Close() error
}

// UserStore manages user accounts.
type UserStore interface {
	// CreateUser inserts a new user.
	// Returns ErrAlreadyExists if the email is taken.
	CreateUser(ctx context.Context, user *domain.User) error

	// GetUser retrieves a user by ID.
	// Returns ErrNotFound if the user does not exist.
	GetUser(ctx context.Context, id string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email.
	// Returns ErrNotFound if no account uses the email.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdateUser performs a full row update on an existing user.
	// Returns ErrNotFound if the user does not exist.
	UpdateUser(ctx context.Context, user *domain.User) error

	// CountUsers returns the total number of accounts. The first account to
	// register becomes the admin.
	CountUsers(ctx context.Context) (int, error)
}

// SessionStore manages refresh-token sessions.
type SessionStore interface {
	// CreateSession inserts a new session.
	CreateSession(ctx context.Context, session *domain.Session) error

	// GetSession retrieves a session by ID.
	// Returns ErrNotFound if the session does not exist.
	GetSession(ctx context.Context, id string) (*domain.Session, error)

	// UpdateSession performs a full row update on an existing session.
	// Returns ErrNotFound if the session does not exist.
	UpdateSession(ctx context.Context, session *domain.Session) error

	// DeleteSession hard-deletes a session.
	// Returns ErrNotFound if the session does not exist.
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions removes sessions past their expiry.
	// Returns the number of sessions deleted.
	DeleteExpiredSessions(ctx context.Context) (int, error)
}

// PlanStore manages travel plans.
type PlanStore interface {
	// CreatePlan inserts a new travel plan.
	CreatePlan(ctx context.Context, plan *domain.TravelPlan) error

	// GetPlan retrieves a plan by ID with its participant requests attached.
	// Returns ErrNotFound if the plan does not exist.
	GetPlan(ctx context.Context, id string) (*domain.TravelPlan, error)

	// UpdatePlan performs a full row update on an existing plan.
	// Returns ErrNotFound if the plan does not exist.
	UpdatePlan(ctx context.Context, plan *domain.TravelPlan) error

	// DeletePlan hard-deletes a plan. Its participant requests are removed
	// with it.
	// Returns ErrNotFound if the plan does not exist.
	DeletePlan(ctx context.Context, id string) error

	// ListPlans returns one page of plans matching the filter, newest first,
	// plus the total count of matches across all pages.
	ListPlans(ctx context.Context, filter PlanFilter, page PageParams) (*PageResult[*domain.TravelPlan], error)

	// MatchPlans returns all plans matching the filter, newest first,
	// without pagination.
	MatchPlans(ctx context.Context, filter PlanFilter) ([]*domain.TravelPlan, error)

	// ListPlansByHost returns all plans published by the given host, newest
	// first.
	ListPlansByHost(ctx context.Context, hostID string) ([]*domain.TravelPlan, error)
}

// RequestStore manages participant requests.
type RequestStore interface {
	// CreateRequest inserts a new participant request.
	// Returns ErrAlreadyExists if the user already has an active (pending or
	// accepted) request for the plan.
	CreateRequest(ctx context.Context, req *domain.ParticipantRequest) error

	// GetRequest retrieves a request by plan ID and request ID.
	// Returns ErrNotFound if no such request exists under the plan.
	GetRequest(ctx context.Context, planID, requestID string) (*domain.ParticipantRequest, error)

	// ListRequestsByPlan returns a plan's requests ordered by creation time.
	ListRequestsByPlan(ctx context.Context, planID string) ([]*domain.ParticipantRequest, error)

	// ResolveRequest atomically moves a request from pending to the given
	// terminal status. Returns ErrStaleStatus if the request exists but is
	// no longer pending, ErrNotFound if it does not exist.
	ResolveRequest(ctx context.Context, planID, requestID string, to domain.RequestStatus) (*domain.ParticipantRequest, error)
}
