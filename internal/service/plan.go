// Package service provides the business logic layer for travel plans,
// join requests, and authentication.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
	"github.com/wayfarerapp/wayfarer-server/internal/errors"
	"github.com/wayfarerapp/wayfarer-server/internal/id"
	"github.com/wayfarerapp/wayfarer-server/internal/store"
	"github.com/wayfarerapp/wayfarer-server/internal/validation"
)

// PlanService orchestrates travel plan operations with policy enforcement.
type PlanService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewPlanService creates a new plan service.
func NewPlanService(store store.Store, validator *validation.Validator, logger *slog.Logger) *PlanService {
	return &PlanService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// PlanInput carries the attributes for creating or updating a travel plan.
// Dates arrive as YYYY-MM-DD strings from the transport layer.
type PlanInput struct {
	Destination string `json:"destination" validate:"required,max=200"`
	TravelType  string `json:"travel_type" validate:"required,max=50"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// dates validates and parses the input's date window.
func (in PlanInput) dates() (start, end time.Time, err error) {
	start, err = domain.ParseDate(in.StartDate)
	if err != nil {
		return start, end, errors.Validationf("invalid start_date %q", in.StartDate)
	}
	end, err = domain.ParseDate(in.EndDate)
	if err != nil {
		return start, end, errors.Validationf("invalid end_date %q", in.EndDate)
	}
	if start.After(end) {
		return start, end, errors.Validation("start_date must not be after end_date")
	}
	return start, end, nil
}

// PlanQuery carries the listing and matching criteria as they arrive from
// the transport layer. Dates are YYYY-MM-DD strings; page and limit are the
// raw (possibly out-of-range) client values.
type PlanQuery struct {
	Destination string
	TravelType  string
	StartDate   string
	EndDate     string
	Page        int
	Limit       int
}

// Filter converts the query's criteria into a store filter. Malformed dates
// are an invalid-query error; nothing here is silently defaulted.
func (q PlanQuery) Filter() (store.PlanFilter, error) {
	f := store.PlanFilter{
		Destination: q.Destination,
		TravelType:  domain.TravelType(q.TravelType),
	}

	if q.StartDate != "" {
		start, err := domain.ParseDate(q.StartDate)
		if err != nil {
			return f, errors.InvalidQueryf("invalid startDate %q, want YYYY-MM-DD", q.StartDate)
		}
		f.StartDate = start
	}
	if q.EndDate != "" {
		end, err := domain.ParseDate(q.EndDate)
		if err != nil {
			return f, errors.InvalidQueryf("invalid endDate %q, want YYYY-MM-DD", q.EndDate)
		}
		f.EndDate = end
	}
	if !f.StartDate.IsZero() && !f.EndDate.IsZero() && f.StartDate.After(f.EndDate) {
		return f, errors.InvalidQuery("startDate must not be after endDate")
	}

	return f, nil
}

// Create publishes a new travel plan hosted by the actor.
func (s *PlanService) Create(ctx context.Context, actor domain.Actor, input PlanInput) (*domain.TravelPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	start, end, err := input.dates()
	if err != nil {
		return nil, err
	}

	planID, err := id.Generate(id.PrefixPlan)
	if err != nil {
		return nil, fmt.Errorf("generate plan ID: %w", err)
	}

	plan := &domain.TravelPlan{
		HostID:      actor.ID,
		Destination: input.Destination,
		TravelType:  domain.TravelType(input.TravelType),
		StartDate:   start,
		EndDate:     end,
	}
	plan.ID = planID
	plan.InitTimestamps()

	if err := s.store.CreatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}

	s.logger.Info("travel plan created",
		"plan_id", plan.ID,
		"host_id", actor.ID,
		"destination", plan.Destination,
	)

	return plan, nil
}

// Get retrieves a plan by ID with its participant requests.
func (s *PlanService) Get(ctx context.Context, planID string) (*domain.TravelPlan, error) {
	plan, err := s.store.GetPlan(ctx, planID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("travel plan %s not found", planID)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return plan, nil
}

// Update replaces a plan's attributes. Only the host or an admin may update.
func (s *PlanService) Update(ctx context.Context, actor domain.Actor, planID string, input PlanInput) (*domain.TravelPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plan, err := s.Get(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !CanMutatePlan(actor, plan) {
		return nil, errors.Forbidden("only the host or an admin can update this plan")
	}

	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	start, end, err := input.dates()
	if err != nil {
		return nil, err
	}

	plan.Destination = input.Destination
	plan.TravelType = domain.TravelType(input.TravelType)
	plan.StartDate = start
	plan.EndDate = end
	plan.Touch()

	if err := s.store.UpdatePlan(ctx, plan); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.NotFoundf("travel plan %s not found", planID)
		}
		return nil, fmt.Errorf("update plan: %w", err)
	}

	s.logger.Info("travel plan updated", "plan_id", plan.ID, "actor_id", actor.ID)

	return plan, nil
}

// Delete removes a plan and its participant requests. Only the host or an
// admin may delete.
func (s *PlanService) Delete(ctx context.Context, actor domain.Actor, planID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	plan, err := s.Get(ctx, planID)
	if err != nil {
		return err
	}
	if !CanMutatePlan(actor, plan) {
		return errors.Forbidden("only the host or an admin can delete this plan")
	}

	if err := s.store.DeletePlan(ctx, planID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return errors.NotFoundf("travel plan %s not found", planID)
		}
		return fmt.Errorf("delete plan: %w", err)
	}

	s.logger.Info("travel plan deleted", "plan_id", planID, "actor_id", actor.ID)

	return nil
}

// List returns one page of plans matching the query's filters, newest
// first. Out-of-range page and limit values are defaulted, never rejected.
func (s *PlanService) List(ctx context.Context, query PlanQuery) (*store.PageResult[*domain.TravelPlan], error) {
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}

	page := store.PageParams{Page: query.Page, Limit: query.Limit}
	page.Normalize()

	result, err := s.store.ListPlans(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	return result, nil
}

// Match returns all plans matching the query's filters, newest first. An
// empty query matches every plan.
func (s *PlanService) Match(ctx context.Context, query PlanQuery) ([]*domain.TravelPlan, error) {
	filter, err := query.Filter()
	if err != nil {
		return nil, err
	}

	plans, err := s.store.MatchPlans(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("match plans: %w", err)
	}
	return plans, nil
}

// MyPlans returns the plans the actor hosts, newest first.
func (s *PlanService) MyPlans(ctx context.Context, actor domain.Actor) ([]*domain.TravelPlan, error) {
	plans, err := s.store.ListPlansByHost(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list plans by host: %w", err)
	}
	return plans, nil
}
