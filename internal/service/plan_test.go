package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
	"github.com/wayfarerapp/wayfarer-server/internal/errors"
)

func TestPlanCreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")

	plan, err := env.plans.Create(ctx, host, PlanInput{
		Destination: "Kyoto, Japan",
		TravelType:  "leisure",
		StartDate:   "2026-10-01",
		EndDate:     "2026-10-10",
	})
	require.NoError(t, err)
	assert.Equal(t, host.ID, plan.HostID)
	assert.Equal(t, domain.TravelTypeLeisure, plan.TravelType)
	assert.False(t, plan.CreatedAt.IsZero())

	got, err := env.plans.Get(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.Destination, got.Destination)
	assert.Equal(t, "2026-10-01", got.StartDate.Format(domain.DateFormat))
	assert.NotNil(t, got.Participants)
}

func TestPlanCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")

	tests := []struct {
		name  string
		input PlanInput
	}{
		{"missing destination", PlanInput{TravelType: "leisure", StartDate: "2026-10-01", EndDate: "2026-10-10"}},
		{"malformed start date", PlanInput{Destination: "Oslo", TravelType: "leisure", StartDate: "01-10-2026", EndDate: "2026-10-10"}},
		{"start after end", PlanInput{Destination: "Oslo", TravelType: "leisure", StartDate: "2026-10-20", EndDate: "2026-10-10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.plans.Create(ctx, host, tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrValidation), "want validation error, got %v", err)
		})
	}
}

func TestPlanGetNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.plans.Get(context.Background(), "plan-missing")
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestPlanUpdateAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")
	stranger := env.seedUser(t, "stranger@example.com")
	admin := domain.Actor{ID: env.seedUser(t, "admin@example.com").ID, Role: domain.RoleAdmin}

	plan := env.seedPlan(t, host, "Lisbon, Portugal")

	input := PlanInput{
		Destination: "Porto, Portugal",
		TravelType:  "backpacking",
		StartDate:   "2026-08-01",
		EndDate:     "2026-08-15",
	}

	_, err := env.plans.Update(ctx, stranger, plan.ID, input)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	updated, err := env.plans.Update(ctx, host, plan.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Porto, Portugal", updated.Destination)
	assert.Equal(t, domain.TravelTypeBackpacking, updated.TravelType)

	input.Destination = "Faro, Portugal"
	updated, err = env.plans.Update(ctx, admin, plan.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Faro, Portugal", updated.Destination)
}

func TestPlanDeleteAuthorization(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")
	stranger := env.seedUser(t, "stranger@example.com")

	plan := env.seedPlan(t, host, "Reykjavik, Iceland")

	err := env.plans.Delete(ctx, stranger, plan.ID)
	assert.True(t, errors.Is(err, errors.ErrForbidden))

	require.NoError(t, env.plans.Delete(ctx, host, plan.ID))

	_, err = env.plans.Get(ctx, plan.ID)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestPlanListPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")

	for i := range 5 {
		env.seedPlan(t, host, fmt.Sprintf("Stop %d", i))
		time.Sleep(2 * time.Millisecond)
	}

	page, err := env.plans.List(ctx, PlanQuery{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "Stop 4", page.Items[0].Destination) // newest first

	// Out-of-range values are defaulted, never rejected.
	page, err = env.plans.List(ctx, PlanQuery{Page: -3, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Len(t, page.Items, 5)

	// A page past the end is empty, not an error.
	page, err = env.plans.List(ctx, PlanQuery{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 5, page.Total)
}

func TestPlanListInvalidDateFilter(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.plans.List(context.Background(), PlanQuery{StartDate: "not-a-date"})
	assert.True(t, errors.Is(err, errors.ErrInvalidQuery))

	_, err = env.plans.Match(context.Background(), PlanQuery{EndDate: "2026/01/01"})
	assert.True(t, errors.Is(err, errors.ErrInvalidQuery))
}

func TestPlanMatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")

	_, err := env.plans.Create(ctx, host, PlanInput{
		Destination: "Hanoi, Vietnam",
		TravelType:  "backpacking",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-20",
	})
	require.NoError(t, err)
	_, err = env.plans.Create(ctx, host, PlanInput{
		Destination: "Da Nang, Vietnam",
		TravelType:  "leisure",
		StartDate:   "2026-06-01",
		EndDate:     "2026-06-10",
	})
	require.NoError(t, err)

	// Destination match is a case-insensitive substring.
	plans, err := env.plans.Match(ctx, PlanQuery{Destination: "vietnam"})
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	// Filters are conjunctive.
	plans, err = env.plans.Match(ctx, PlanQuery{Destination: "vietnam", TravelType: "leisure"})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Da Nang, Vietnam", plans[0].Destination)

	// Date window overlap, open-ended on one side.
	plans, err = env.plans.Match(ctx, PlanQuery{StartDate: "2026-05-01"})
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Da Nang, Vietnam", plans[0].Destination)

	// No criteria matches everything.
	plans, err = env.plans.Match(ctx, PlanQuery{})
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestMyPlans(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	host := env.seedUser(t, "host@example.com")
	other := env.seedUser(t, "other@example.com")

	env.seedPlan(t, host, "Mine")
	env.seedPlan(t, other, "Theirs")

	plans, err := env.plans.MyPlans(ctx, host)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Mine", plans[0].Destination)
}
