package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
)

func (s *Server) registerJoinRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "requestToJoin",
		Method:      http.MethodPost,
		Path:        "/api/v1/travel-plans/{id}/join",
		Summary:     "Request to join",
		Description: "Files a pending request by the authenticated user to join the plan",
		Tags:        []string{"Join Requests"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRequestToJoin)

	huma.Register(s.api, huma.Operation{
		OperationID: "listParticipants",
		Method:      http.MethodGet,
		Path:        "/api/v1/travel-plans/{id}/participants",
		Summary:     "List join requests",
		Description: "Returns a plan's join requests in creation order. Host or admin only.",
		Tags:        []string{"Join Requests"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListParticipants)

	huma.Register(s.api, huma.Operation{
		OperationID: "respondToRequest",
		Method:      http.MethodPatch,
		Path:        "/api/v1/travel-plans/{planId}/participants/{participantId}",
		Summary:     "Respond to join request",
		Description: "Resolves a pending join request to accepted, rejected, or cancelled",
		Tags:        []string{"Join Requests"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRespondToRequest)
}

// === DTOs ===

// ParticipantOutput wraps a single join request for Huma.
type ParticipantOutput struct {
	Body ParticipantResponse
}

// ParticipantListResponse contains a plan's join requests.
type ParticipantListResponse struct {
	Participants []ParticipantResponse `json:"participants" doc:"Join requests in creation order"`
}

// ParticipantListOutput wraps the join request list for Huma.
type ParticipantListOutput struct {
	Body ParticipantListResponse
}

// RespondRequest is the request body for resolving a join request.
type RespondRequest struct {
	Status string `json:"status" validate:"required" doc:"Target status (accepted, rejected, cancelled)"`
}

// RespondInput wraps the respond request for Huma.
type RespondInput struct {
	Authorization string `header:"Authorization"`
	PlanID        string `path:"planId" doc:"Travel plan ID"`
	ParticipantID string `path:"participantId" doc:"Join request ID"`
	Body          RespondRequest
}

// === Handlers ===

func (s *Server) handleRequestToJoin(ctx context.Context, input *PlanIDInput) (*ParticipantOutput, error) {
	actor, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	req, err := s.services.Join.RequestToJoin(ctx, actor, input.ID)
	if err != nil {
		return nil, err
	}

	return &ParticipantOutput{Body: mapParticipantResponse(req)}, nil
}

func (s *Server) handleListParticipants(ctx context.Context, input *PlanIDInput) (*ParticipantListOutput, error) {
	actor, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	reqs, err := s.services.Join.ListForPlan(ctx, actor, input.ID)
	if err != nil {
		return nil, err
	}

	participants := make([]ParticipantResponse, len(reqs))
	for i, r := range reqs {
		participants[i] = mapParticipantResponse(r)
	}

	return &ParticipantListOutput{Body: ParticipantListResponse{Participants: participants}}, nil
}

func (s *Server) handleRespondToRequest(ctx context.Context, input *RespondInput) (*ParticipantOutput, error) {
	actor, err := s.authenticateRequest(input.Authorization)
	if err != nil {
		return nil, err
	}

	resolved, err := s.services.Join.Respond(ctx, actor, input.PlanID, input.ParticipantID, domain.RequestStatus(input.Body.Status))
	if err != nil {
		return nil, err
	}

	return &ParticipantOutput{Body: mapParticipantResponse(resolved)}, nil
}
