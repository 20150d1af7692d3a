package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
	"github.com/wayfarerapp/wayfarer-server/internal/service"
)

func (s *Server) registerPlanRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createTravelPlan",
		Method:      http.MethodPost,
		Path:        "/api/v1/travel-plans",
		Summary:     "Create travel plan",
		Description: "Publishes a new travel plan hosted by the authenticated user",
		Tags:        []string{"Travel Plans"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreatePlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "listTravelPlans",
		Method:      http.MethodGet,
		Path:        "/api/v1/travel-plans",
		Summary:     "List travel plans",
		Description: "Returns a page of travel plans, newest first, optionally filtered",
		Tags:        []string{"Travel Plans"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListPlans)

	huma.Register(s.api, huma.Operation{
		OperationID: "matchTravelPlans",
		Method:      http.MethodGet,
		Path:        "/api/v1/travel-plans/match",
		Summary:     "Match travel plans",
		Description: "Returns all travel plans matching the given criteria",
		Tags:        []string{"Travel Plans"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMatchPlans)

	huma.Register(s.api, huma.Operation{
		OperationID: "myTravelPlans",
		Method:      http.MethodGet,
		Path:        "/api/v1/travel-plans/my",
		Summary:     "My travel plans",
		Description: "Returns the travel plans hosted by the authenticated user",
		Tags:        []string{"Travel Plans"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleMyPlans)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTravelPlan",
		Method:      http.MethodGet,
		Path:        "/api/v1/travel-plans/{id}",
		Summary:     "Get travel plan",
		Description: "Returns a travel plan with its participant requests",
		Tags:        []string{"Travel Plans"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetPlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTravelPlan",
		Method:      http.MethodPut,
		Path:        "/api/v1/travel-plans/{id}",
		Summary:     "Update travel plan",
		Description: "Replaces a travel plan's attributes. Host or admin only.",
		Tags:        []string{"Travel Plans"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdatePlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTravelPlan",
		Method:      http.MethodDelete,
		Path:        "/api/v1/travel-plans/{id}",
		Summary:     "Delete travel plan",
		Description: "Deletes a travel plan and its participant requests. Host or admin only.",
		Tags:        []string{"Travel Plans"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeletePlan)
}

// === DTOs ===

// PlanRequest is the request body for creating or updating a travel plan.
type PlanRequest struct {
	Destination string `json:"destination" validate:"required,max=200" doc:"Destination, free text"`
	TravelType  string `json:"travel_type" validate:"required,max=50" doc:"Travel style (adventure, leisure, business, backpacking, family)"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02" doc:"Trip start date (YYYY-MM-DD)"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02" doc:"Trip end date (YYYY-MM-DD)"`
}

// PlanWriteInput wraps the plan request for Huma.
type PlanWriteInput struct {
	Authorization string `header:"Authorization"`
	Body          PlanRequest
}

// PlanUpdateInput wraps the plan update request for Huma.
type PlanUpdateInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Travel plan ID"`
	Body          PlanRequest
}

// PlanIDInput addresses a single travel plan.
type PlanIDInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Travel plan ID"`
}

// PlanListInput contains listing parameters. Page and limit arrive as raw
// strings so out-of-range or malformed values can be defaulted instead of
// rejected.
type PlanListInput struct {
	Authorization string `header:"Authorization"`
	Page          string `query:"page" doc:"Page number (1-based, defaults to 1)"`
	Limit         string `query:"limit" doc:"Page size (defaults to 10, capped at 100)"`
	Destination   string `query:"destination" doc:"Destination substring, case-insensitive"`
	TravelType    string `query:"travelType" doc:"Exact travel style"`
	StartDate     string `query:"startDate" doc:"Window start (YYYY-MM-DD)"`
	EndDate       string `query:"endDate" doc:"Window end (YYYY-MM-DD)"`
}

// PlanMatchInput contains matching criteria.
type PlanMatchInput struct {
	Authorization string `header:"Authorization"`
	Destination   string `query:"destination" doc:"Destination substring, case-insensitive"`
	TravelType    string `query:"travelType" doc:"Exact travel style"`
	StartDate     string `query:"startDate" doc:"Window start (YYYY-MM-DD)"`
	EndDate       string `query:"endDate" doc:"Window end (YYYY-MM-DD)"`
}

// ParticipantResponse contains a join request in API responses.
type ParticipantResponse struct {
	ID        string    `json:"id" doc:"Request ID"`
	PlanID    string    `json:"plan_id" doc:"Travel plan ID"`
	UserID    string    `json:"user_id" doc:"Requesting user ID"`
	Status    string    `json:"status" doc:"Request status (pending, accepted, rejected, cancelled)"`
	CreatedAt time.Time `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt time.Time `json:"updated_at" doc:"Last update timestamp"`
}

// PlanResponse contains travel plan data in API responses.
type PlanResponse struct {
	ID           string                `json:"id" doc:"Travel plan ID"`
	HostID       string                `json:"host_id" doc:"Hosting user ID"`
	Destination  string                `json:"destination" doc:"Destination"`
	TravelType   string                `json:"travel_type" doc:"Travel style"`
	StartDate    string                `json:"start_date" doc:"Trip start date (YYYY-MM-DD)"`
	EndDate      string                `json:"end_date" doc:"Trip end date (YYYY-MM-DD)"`
	Participants []ParticipantResponse `json:"participants" doc:"Join requests on this plan"`
	CreatedAt    time.Time             `json:"created_at" doc:"Creation timestamp"`
	UpdatedAt    time.Time             `json:"updated_at" doc:"Last update timestamp"`
}

// PlanOutput wraps a single plan response for Huma.
type PlanOutput struct {
	Body PlanResponse
}

// PlanListResponse contains one page of travel plans.
type PlanListResponse struct {
	Plans      []PlanResponse `json:"plans" doc:"Travel plans on this page"`
	Total      int            `json:"total" doc:"Total matching plans"`
	Page       int            `json:"page" doc:"Current page (1-based)"`
	Limit      int            `json:"limit" doc:"Page size"`
	TotalPages int            `json:"total_pages" doc:"Total pages"`
}

// PlanListOutput wraps the plan list response for Huma.
type PlanListOutput struct {
	Body PlanListResponse
}

// PlanMatchResponse contains all matching travel plans.
type PlanMatchResponse struct {
	Plans []PlanResponse `json:"plans" doc:"Matching travel plans"`
}

// PlanMatchOutput wraps the match response for Huma.
type PlanMatchOutput struct {
	Body PlanMatchResponse
}

// === Handlers ===

func (s *Server) handleCreatePlan(ctx context.Context, input *PlanWriteInput) (*PlanOutput, error) {
	actor, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	plan, err := s.services.Plan.Create(ctx, actor, service.PlanInput{
		Destination: input.Body.Destination,
		TravelType:  input.Body.TravelType,
		StartDate:   input.Body.StartDate,
		EndDate:     input.Body.EndDate,
	})
	if err != nil {
		return nil, err
	}

	return &PlanOutput{Body: mapPlanResponse(plan)}, nil
}

func (s *Server) handleGetPlan(ctx context.Context, input *PlanIDInput) (*PlanOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	plan, err := s.services.Plan.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &PlanOutput{Body: mapPlanResponse(plan)}, nil
}

func (s *Server) handleUpdatePlan(ctx context.Context, input *PlanUpdateInput) (*PlanOutput, error) {
	actor, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	plan, err := s.services.Plan.Update(ctx, actor, input.ID, service.PlanInput{
		Destination: input.Body.Destination,
		TravelType:  input.Body.TravelType,
		StartDate:   input.Body.StartDate,
		EndDate:     input.Body.EndDate,
	})
	if err != nil {
		return nil, err
	}

	return &PlanOutput{Body: mapPlanResponse(plan)}, nil
}

func (s *Server) handleDeletePlan(ctx context.Context, input *PlanIDInput) (*MessageOutput, error) {
	actor, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	if err := s.services.Plan.Delete(ctx, actor, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Travel plan deleted"}}, nil
}

func (s *Server) handleListPlans(ctx context.Context, input *PlanListInput) (*PlanListOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	result, err := s.services.Plan.List(ctx, service.PlanQuery{
		Destination: input.Destination,
		TravelType:  input.TravelType,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Page:        parseIntDefault(input.Page),
		Limit:       parseIntDefault(input.Limit),
	})
	if err != nil {
		return nil, err
	}

	plans := make([]PlanResponse, len(result.Items))
	for i, p := range result.Items {
		plans[i] = mapPlanResponse(p)
	}

	return &PlanListOutput{
		Body: PlanListResponse{
			Plans:      plans,
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}, nil
}

func (s *Server) handleMatchPlans(ctx context.Context, input *PlanMatchInput) (*PlanMatchOutput, error) {
	if _, err := s.authenticateRequest(input.Authorization); err != nil {
		return nil, err
	}

	plans, err := s.services.Plan.Match(ctx, service.PlanQuery{
		Destination: input.Destination,
		TravelType:  input.TravelType,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	})
	if err != nil {
		return nil, err
	}

	return &PlanMatchOutput{Body: PlanMatchResponse{Plans: mapPlanResponses(plans)}}, nil
}

func (s *Server) handleMyPlans(ctx context.Context, input *PlanMatchInput) (*PlanMatchOutput, error) {
	actor, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	plans, err := s.services.Plan.MyPlans(ctx, actor)
	if err != nil {
		return nil, err
	}

	return &PlanMatchOutput{Body: PlanMatchResponse{Plans: mapPlanResponses(plans)}}, nil
}

// === Helpers ===

// parseIntDefault parses a query integer leniently. Anything unparseable
// becomes zero, which the pagination layer replaces with its default.
func parseIntDefault(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func mapPlanResponse(p *domain.TravelPlan) PlanResponse {
	participants := make([]ParticipantResponse, len(p.Participants))
	for i, r := range p.Participants {
		participants[i] = mapParticipantResponse(r)
	}

	return PlanResponse{
		ID:           p.ID,
		HostID:       p.HostID,
		Destination:  p.Destination,
		TravelType:   string(p.TravelType),
		StartDate:    p.StartDate.Format(domain.DateFormat),
		EndDate:      p.EndDate.Format(domain.DateFormat),
		Participants: participants,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func mapPlanResponses(plans []*domain.TravelPlan) []PlanResponse {
	out := make([]PlanResponse, len(plans))
	for i, p := range plans {
		out[i] = mapPlanResponse(p)
	}
	return out
}

func mapParticipantResponse(r *domain.ParticipantRequest) ParticipantResponse {
	return ParticipantResponse{
		ID:        r.ID,
		PlanID:    r.PlanID,
		UserID:    r.UserID,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
