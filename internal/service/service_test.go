package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wayfarerapp/wayfarer-server/internal/auth"
	"github.com/wayfarerapp/wayfarer-server/internal/domain"
	"github.com/wayfarerapp/wayfarer-server/internal/id"
	"github.com/wayfarerapp/wayfarer-server/internal/store"
	"github.com/wayfarerapp/wayfarer-server/internal/store/sqlite"
	"github.com/wayfarerapp/wayfarer-server/internal/validation"
)

// testEnv wires the services against a real SQLite store in a temp dir.
type testEnv struct {
	store store.Store
	plans *PlanService
	joins *JoinService
	auth  *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := auth.NewTokenService(strings.Repeat("ab", 32), 15*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	v := validation.New()

	return &testEnv{
		store: st,
		plans: NewPlanService(st, v, logger),
		joins: NewJoinService(st, logger),
		auth:  NewAuthService(st, tokens, v, logger),
	}
}

// seedUser inserts a user directly and returns its actor identity.
func (e *testEnv) seedUser(t *testing.T, email string) domain.Actor {
	t.Helper()

	user := &domain.User{
		Email:        email,
		PasswordHash: "x",
		DisplayName:  email,
		Role:         domain.RoleUser,
	}
	user.ID = id.MustGenerate(id.PrefixUser)
	user.InitTimestamps()
	require.NoError(t, e.store.CreateUser(context.Background(), user))

	return user.Actor()
}

// seedPlan creates a plan hosted by the actor through the service.
func (e *testEnv) seedPlan(t *testing.T, host domain.Actor, destination string) *domain.TravelPlan {
	t.Helper()

	plan, err := e.plans.Create(context.Background(), host, PlanInput{
		Destination: destination,
		TravelType:  string(domain.TravelTypeAdventure),
		StartDate:   "2026-07-01",
		EndDate:     "2026-07-14",
	})
	require.NoError(t, err)
	return plan
}
