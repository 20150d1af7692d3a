package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
	"github.com/wayfarerapp/wayfarer-server/internal/errors"
)

func TestRequestToJoin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")
	traveler := env.seedUser(t, "traveler@example.com")
	plan := env.seedPlan(t, host, "Marrakesh, Morocco")

	req, err := env.joins.RequestToJoin(ctx, traveler, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, req.Status)
	assert.Equal(t, traveler.ID, req.UserID)
	assert.Equal(t, plan.ID, req.PlanID)

	// The request shows up on the plan.
	got, err := env.plans.Get(ctx, plan.ID)
	require.NoError(t, err)
	require.Len(t, got.Participants, 1)
	assert.Equal(t, req.ID, got.Participants[0].ID)
}

func TestRequestToJoinGuards(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")
	traveler := env.seedUser(t, "traveler@example.com")
	plan := env.seedPlan(t, host, "Marrakesh, Morocco")

	_, err := env.joins.RequestToJoin(ctx, traveler, "plan-missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))

	// Hosts cannot join their own plan.
	_, err = env.joins.RequestToJoin(ctx, host, plan.ID)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	// A second active request is a conflict.
	_, err = env.joins.RequestToJoin(ctx, traveler, plan.ID)
	require.NoError(t, err)
	_, err = env.joins.RequestToJoin(ctx, traveler, plan.ID)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestRespondAccept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")
	traveler := env.seedUser(t, "traveler@example.com")
	plan := env.seedPlan(t, host, "Cusco, Peru")

	req, err := env.joins.RequestToJoin(ctx, traveler, plan.ID)
	require.NoError(t, err)

	resolved, err := env.joins.Respond(ctx, host, plan.ID, req.ID, domain.RequestAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestAccepted, resolved.Status)
	assert.True(t, resolved.UpdatedAt.After(req.UpdatedAt) || resolved.UpdatedAt.Equal(req.UpdatedAt))

	// An accepted request still blocks re-requesting.
	_, err = env.joins.RequestToJoin(ctx, traveler, plan.ID)
	assert.True(t, errors.Is(err, errors.ErrConflict))
}

func TestRespondDoubleResolution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")
	traveler := env.seedUser(t, "traveler@example.com")
	plan := env.seedPlan(t, host, "Cusco, Peru")

	req, err := env.joins.RequestToJoin(ctx, traveler, plan.ID)
	require.NoError(t, err)

	_, err = env.joins.Respond(ctx, host, plan.ID, req.ID, domain.RequestRejected)
	require.NoError(t, err)

	// Terminal states absorb every further resolution attempt.
	for _, status := range []domain.RequestStatus{domain.RequestAccepted, domain.RequestRejected, domain.RequestCancelled} {
		_, err = env.joins.Respond(ctx, host, plan.ID, req.ID, status)
		assert.True(t, errors.Is(err, errors.ErrInvalidTransition), "resolving a rejected request to %s", status)
	}
}

func TestRespondRejectedAllowsNewRequest(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")
	traveler := env.seedUser(t, "traveler@example.com")
	plan := env.seedPlan(t, host, "Cusco, Peru")

	req, err := env.joins.RequestToJoin(ctx, traveler, plan.ID)
	require.NoError(t, err)
	_, err = env.joins.Respond(ctx, host, plan.ID, req.ID, domain.RequestRejected)
	require.NoError(t, err)

	again, err := env.joins.RequestToJoin(ctx, traveler, plan.ID)
	require.NoError(t, err)
	assert.NotEqual(t, req.ID, again.ID)
	assert.Equal(t, domain.RequestPending, again.Status)
}

func TestRespondAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")
	traveler := env.seedUser(t, "traveler@example.com")
	stranger := env.seedUser(t, "stranger@example.com")
	admin := domain.Actor{ID: "user-admin", Role: domain.RoleAdmin}
	plan := env.seedPlan(t, host, "Queenstown, New Zealand")

	req, err := env.joins.RequestToJoin(ctx, traveler, plan.ID)
	require.NoError(t, err)

	// Only the host or an admin may accept or reject.
	_, err = env.joins.Respond(ctx, stranger, plan.ID, req.ID, domain.RequestAccepted)
	assert.True(t, errors.Is(err, errors.ErrForbidden))
	_, err = env.joins.Respond(ctx, traveler, plan.ID, req.ID, domain.RequestAccepted)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	// The requester may cancel their own request; strangers may not.
	_, err = env.joins.Respond(ctx, stranger, plan.ID, req.ID, domain.RequestCancelled)
	assert.True(t, errors.Is(err, errors.ErrForbidden))
	resolved, err := env.joins.Respond(ctx, traveler, plan.ID, req.ID, domain.RequestCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestCancelled, resolved.Status)

	// Admins can resolve requests on plans they do not host.
	req2, err := env.joins.RequestToJoin(ctx, traveler, plan.ID)
	require.NoError(t, err)
	resolved, err = env.joins.Respond(ctx, admin, plan.ID, req2.ID, domain.RequestAccepted)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestAccepted, resolved.Status)
}

func TestRespondValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")
	traveler := env.seedUser(t, "traveler@example.com")
	plan := env.seedPlan(t, host, "Queenstown, New Zealand")

	req, err := env.joins.RequestToJoin(ctx, traveler, plan.ID)
	require.NoError(t, err)

	// pending is not a resolution.
	_, err = env.joins.Respond(ctx, host, plan.ID, req.ID, domain.RequestPending)
	assert.True(t, errors.Is(err, errors.ErrInvalidTransition))
	_, err = env.joins.Respond(ctx, host, plan.ID, req.ID, domain.RequestStatus("approved"))
	assert.True(t, errors.Is(err, errors.ErrInvalidTransition))

	_, err = env.joins.Respond(ctx, host, "plan-missing", req.ID, domain.RequestAccepted)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
	_, err = env.joins.Respond(ctx, host, plan.ID, "req-missing", domain.RequestAccepted)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestRequestScopedToPlan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")
	traveler := env.seedUser(t, "traveler@example.com")
	planA := env.seedPlan(t, host, "Plan A")
	planB := env.seedPlan(t, host, "Plan B")

	req, err := env.joins.RequestToJoin(ctx, traveler, planA.ID)
	require.NoError(t, err)

	// The request is addressed by (plan, request); the wrong plan is a miss.
	_, err = env.joins.Respond(ctx, host, planB.ID, req.ID, domain.RequestAccepted)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestListForPlan(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")
	traveler := env.seedUser(t, "traveler@example.com")
	stranger := env.seedUser(t, "stranger@example.com")
	plan := env.seedPlan(t, host, "Banff, Canada")

	_, err := env.joins.RequestToJoin(ctx, traveler, plan.ID)
	require.NoError(t, err)

	reqs, err := env.joins.ListForPlan(ctx, host, plan.ID)
	require.NoError(t, err)
	assert.Len(t, reqs, 1)

	_, err = env.joins.ListForPlan(ctx, stranger, plan.ID)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	_, err = env.joins.ListForPlan(ctx, host, "plan-missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
