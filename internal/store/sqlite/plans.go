package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
	"github.com/wayfarerapp/wayfarer-server/internal/store"
)

// planColumns is the ordered list of columns selected in plan queries.
// Must match the scan order in scanPlan.
const planColumns = `id, created_at, updated_at, host_id, destination, travel_type,
	start_date, end_date`

// scanPlan scans a sql.Row (or sql.Rows via its Scan method) into a domain.TravelPlan.
func scanPlan(scanner interface{ Scan(dest ...any) error }) (*domain.TravelPlan, error) {
	var p domain.TravelPlan

	var (
		createdAt  string
		updatedAt  string
		travelType string
		startDate  string
		endDate    string
	)

	err := scanner.Scan(
		&p.ID,
		&createdAt,
		&updatedAt,
		&p.HostID,
		&p.Destination,
		&travelType,
		&startDate,
		&endDate,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	p.StartDate, err = parseDate(startDate)
	if err != nil {
		return nil, err
	}
	p.EndDate, err = parseDate(endDate)
	if err != nil {
		return nil, err
	}
	p.TravelType = domain.TravelType(travelType)

	return &p, nil
}

// planFilterClause translates a store.PlanFilter into a WHERE fragment plus
// bind arguments. The conditions mirror store.PlanFilter.Matches exactly.
func planFilterClause(filter store.PlanFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Destination != "" {
		conds = append(conds, `LOWER(destination) LIKE '%' || LOWER(?) || '%'`)
		args = append(args, filter.Destination)
	}
	if filter.TravelType != "" {
		conds = append(conds, `travel_type = ?`)
		args = append(args, string(filter.TravelType))
	}
	// Overlap: plan starts before the window closes and ends after it opens.
	if !filter.EndDate.IsZero() {
		conds = append(conds, `start_date <= ?`)
		args = append(args, formatDate(filter.EndDate))
	}
	if !filter.StartDate.IsZero() {
		conds = append(conds, `end_date >= ?`)
		args = append(args, formatDate(filter.StartDate))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// CreatePlan inserts a new travel plan into the database.
func (s *Store) CreatePlan(ctx context.Context, plan *domain.TravelPlan) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO travel_plans (
			id, created_at, updated_at, host_id, destination, travel_type,
			start_date, end_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		plan.ID,
		formatTime(plan.CreatedAt),
		formatTime(plan.UpdatedAt),
		plan.HostID,
		plan.Destination,
		string(plan.TravelType),
		formatDate(plan.StartDate),
		formatDate(plan.EndDate),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetPlan retrieves a plan by ID with its participant requests attached.
// Returns store.ErrNotFound if the plan does not exist.
func (s *Store) GetPlan(ctx context.Context, id string) (*domain.TravelPlan, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM travel_plans WHERE id = ?`, id)

	p, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Participants, err = s.ListRequestsByPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdatePlan performs a full row update on an existing plan.
// Returns store.ErrNotFound if the plan does not exist.
func (s *Store) UpdatePlan(ctx context.Context, plan *domain.TravelPlan) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE travel_plans SET
			created_at = ?,
			updated_at = ?,
			host_id = ?,
			destination = ?,
			travel_type = ?,
			start_date = ?,
			end_date = ?
		WHERE id = ?`,
		formatTime(plan.CreatedAt),
		formatTime(plan.UpdatedAt),
		plan.HostID,
		plan.Destination,
		string(plan.TravelType),
		formatDate(plan.StartDate),
		formatDate(plan.EndDate),
		plan.ID,
	)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeletePlan performs a hard delete of a plan by ID. Participant requests go
// with it via ON DELETE CASCADE.
// Returns store.ErrNotFound if the plan does not exist.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM travel_plans WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListPlans returns one page of plans matching the filter, newest first,
// plus the total count of matches.
func (s *Store) ListPlans(ctx context.Context, filter store.PlanFilter, page store.PageParams) (*store.PageResult[*domain.TravelPlan], error) {
	page.Normalize()
	where, args := planFilterClause(filter)

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM travel_plans`+where, args...).Scan(&total)
	if err != nil {
		return nil, err
	}

	queryArgs := append(args, page.Limit, page.Offset())
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM travel_plans`+where+
			` ORDER BY created_at DESC, id ASC LIMIT ? OFFSET ?`,
		queryArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans, err := collectPlans(rows)
	if err != nil {
		return nil, err
	}
	return store.NewPageResult(plans, total, page), nil
}

// MatchPlans returns all plans matching the filter, newest first.
func (s *Store) MatchPlans(ctx context.Context, filter store.PlanFilter) ([]*domain.TravelPlan, error) {
	where, args := planFilterClause(filter)

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM travel_plans`+where+
			` ORDER BY created_at DESC, id ASC`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPlans(rows)
}

// ListPlansByHost returns all plans published by the given host, newest first.
func (s *Store) ListPlansByHost(ctx context.Context, hostID string) ([]*domain.TravelPlan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM travel_plans
		WHERE host_id = ?
		ORDER BY created_at DESC, id ASC`,
		hostID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPlans(rows)
}

// collectPlans drains rows into a slice.
func collectPlans(rows *sql.Rows) ([]*domain.TravelPlan, error) {
	var plans []*domain.TravelPlan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}
