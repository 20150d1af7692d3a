package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePlan(t *testing.T) {
	ts := setupTestServer(t)
	token, userID := ts.registerAndLogin(t, "host@example.com")

	plan := ts.createPlan(t, token, "Kyoto, Japan")
	assert.Equal(t, userID, plan.HostID)
	assert.Equal(t, "Kyoto, Japan", plan.Destination)
	assert.Equal(t, "adventure", plan.TravelType)
	assert.Equal(t, "2026-07-01", plan.StartDate)
	assert.NotEmpty(t, plan.ID)
}

func TestCreatePlan_InvalidDates(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerAndLogin(t, "host@example.com")

	// Start after end is a validation error.
	resp := ts.api.Post("/api/v1/travel-plans",
		map[string]any{
			"destination": "Oslo",
			"travel_type": "leisure",
			"start_date":  "2026-07-20",
			"end_date":    "2026-07-01",
		},
		"Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var env testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION", env.Code)
}

func TestGetPlan_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerAndLogin(t, "host@example.com")

	resp := ts.api.Get("/api/v1/travel-plans/plan-missing", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var env testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestUpdatePlan_StrangerForbidden(t *testing.T) {
	ts := setupTestServer(t)
	hostToken, _ := ts.registerAndLogin(t, "host@example.com")
	strangerToken, _ := ts.registerAndLogin(t, "stranger@example.com")

	plan := ts.createPlan(t, hostToken, "Lisbon, Portugal")

	body := map[string]any{
		"destination": "Porto, Portugal",
		"travel_type": "leisure",
		"start_date":  "2026-08-01",
		"end_date":    "2026-08-10",
	}

	resp := ts.api.Put("/api/v1/travel-plans/"+plan.ID, body, "Authorization: Bearer "+strangerToken)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = ts.api.Put("/api/v1/travel-plans/"+plan.ID, body, "Authorization: Bearer "+hostToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var env testEnvelope[PlanResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, "Porto, Portugal", env.Data.Destination)
}

func TestDeletePlan(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerAndLogin(t, "host@example.com")

	plan := ts.createPlan(t, token, "Reykjavik, Iceland")

	resp := ts.api.Delete("/api/v1/travel-plans/"+plan.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/travel-plans/"+plan.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestListPlans_Pagination(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerAndLogin(t, "host@example.com")

	for i := range 5 {
		ts.createPlan(t, token, fmt.Sprintf("Stop %d", i))
		time.Sleep(2 * time.Millisecond)
	}

	resp := ts.api.Get("/api/v1/travel-plans?page=1&limit=2", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var env testEnvelope[PlanListResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, 5, env.Data.Total)
	assert.Equal(t, 3, env.Data.TotalPages)
	assert.Len(t, env.Data.Plans, 2)
	assert.Equal(t, "Stop 4", env.Data.Plans[0].Destination) // newest first

	// Malformed page and limit are defaulted, not rejected.
	resp = ts.api.Get("/api/v1/travel-plans?page=abc&limit=-1", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, 1, env.Data.Page)
	assert.Equal(t, 10, env.Data.Limit)
	assert.Len(t, env.Data.Plans, 5)
}

func TestListPlans_MalformedDateRejected(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerAndLogin(t, "host@example.com")

	resp := ts.api.Get("/api/v1/travel-plans?startDate=not-a-date", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var env testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Equal(t, "INVALID_QUERY", env.Code)
}

func TestMatchPlans(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.registerAndLogin(t, "host@example.com")

	ts.createPlan(t, token, "Hanoi, Vietnam")
	ts.createPlan(t, token, "Lima, Peru")

	resp := ts.api.Get("/api/v1/travel-plans/match?destination=vietnam", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var env testEnvelope[PlanMatchResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	require.Len(t, env.Data.Plans, 1)
	assert.Equal(t, "Hanoi, Vietnam", env.Data.Plans[0].Destination)

	// No criteria matches everything.
	resp = ts.api.Get("/api/v1/travel-plans/match", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	assert.Len(t, env.Data.Plans, 2)
}

func TestMyPlans(t *testing.T) {
	ts := setupTestServer(t)
	hostToken, _ := ts.registerAndLogin(t, "host@example.com")
	otherToken, _ := ts.registerAndLogin(t, "other@example.com")

	ts.createPlan(t, hostToken, "Mine")
	ts.createPlan(t, otherToken, "Theirs")

	resp := ts.api.Get("/api/v1/travel-plans/my", "Authorization: Bearer "+hostToken)
	require.Equal(t, http.StatusOK, resp.Code)

	var env testEnvelope[PlanMatchResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	require.Len(t, env.Data.Plans, 1)
	assert.Equal(t, "Mine", env.Data.Plans[0].Destination)
}
