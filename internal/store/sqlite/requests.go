package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/wayfarerapp/wayfarer-server/internal/domain"
	"github.com/wayfarerapp/wayfarer-server/internal/store"
)

// requestColumns is the ordered list of columns selected in request queries.
// Must match the scan order in scanRequest.
const requestColumns = `id, created_at, updated_at, plan_id, user_id, status`

// scanRequest scans a sql.Row (or sql.Rows via its Scan method) into a domain.ParticipantRequest.
func scanRequest(scanner interface{ Scan(dest ...any) error }) (*domain.ParticipantRequest, error) {
	var r domain.ParticipantRequest

	var (
		createdAt string
		updatedAt string
		status    string
	)

	err := scanner.Scan(
		&r.ID,
		&createdAt,
		&updatedAt,
		&r.PlanID,
		&r.UserID,
		&status,
	)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	r.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	r.Status = domain.RequestStatus(status)

	return &r, nil
}

// CreateRequest inserts a new participant request.
// Returns store.ErrAlreadyExists if the user already has an active request
// for the plan; the partial unique index enforces this even under concurrent
// inserts.
func (s *Store) CreateRequest(ctx context.Context, req *domain.ParticipantRequest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO participant_requests (
			id, created_at, updated_at, plan_id, user_id, status
		) VALUES (?, ?, ?, ?, ?, ?)`,
		req.ID,
		formatTime(req.CreatedAt),
		formatTime(req.UpdatedAt),
		req.PlanID,
		req.UserID,
		string(req.Status),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetRequest retrieves a request by plan ID and request ID. Scoping by plan
// keeps a request ID from one plan from resolving under another.
// Returns store.ErrNotFound if no such request exists.
func (s *Store) GetRequest(ctx context.Context, planID, requestID string) (*domain.ParticipantRequest, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM participant_requests
		WHERE id = ? AND plan_id = ?`,
		requestID, planID)

	r, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListRequestsByPlan returns a plan's requests ordered by creation time.
func (s *Store) ListRequestsByPlan(ctx context.Context, planID string) ([]*domain.ParticipantRequest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+requestColumns+` FROM participant_requests
		WHERE plan_id = ?
		ORDER BY created_at ASC, id ASC`,
		planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reqs []*domain.ParticipantRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return reqs, nil
}

// ResolveRequest atomically moves a request from pending to the given
// terminal status. The UPDATE only fires while the row is still pending, so
// two concurrent resolutions cannot both succeed.
// Returns store.ErrStaleStatus if the request exists but is no longer
// pending, store.ErrNotFound if it does not exist.
func (s *Store) ResolveRequest(ctx context.Context, planID, requestID string, to domain.RequestStatus) (*domain.ParticipantRequest, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE participant_requests SET
			status = ?,
			updated_at = ?
		WHERE id = ? AND plan_id = ? AND status = 'pending'`,
		string(to),
		formatTime(time.Now()),
		requestID,
		planID,
	)
	if err != nil {
		return nil, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Re-read to tell a missing request from a lost race.
		if _, getErr := s.GetRequest(ctx, planID, requestID); getErr != nil {
			return nil, getErr
		}
		return nil, store.ErrStaleStatus
	}

	return s.GetRequest(ctx, planID, requestID)
}
