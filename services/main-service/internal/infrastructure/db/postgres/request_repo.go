package postgres

import (
	"context"
	"database/sql"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/request"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

type RequestRepo struct {
	db *sql.DB
}

func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{db: db} }

func (r *RequestRepo) WithTx(ctx context.Context, fn func(tx request.Tx) error) error {
	return runTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&requestTx{tx: tx})
	})
}

func (r *RequestRepo) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return scanEvent(r.db.QueryRowContext(ctx, getEventSQL, id))
}

func (r *RequestRepo) ListByRequester(ctx context.Context, requesterID int64) ([]*domain.ParticipationRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+requestColumns+` FROM participation_requests
WHERE requester_id = $1
ORDER BY created DESC
`, requesterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func (r *RequestRepo) ListByEvent(ctx context.Context, eventID int64) ([]*domain.ParticipationRequest, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT `+requestColumns+` FROM participation_requests
WHERE event_id = $1
ORDER BY created
`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRequests(rows)
}

func collectRequests(rows *sql.Rows) ([]*domain.ParticipationRequest, error) {
	var out []*domain.ParticipationRequest
	for rows.Next() {
		var pr domain.ParticipationRequest
		var status string
		if err := rows.Scan(&pr.ID, &pr.EventID, &pr.RequesterID, &status, &pr.Created); err != nil {
			return nil, err
		}
		pr.Status = domain.RequestStatus(status)
		out = append(out, &pr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type requestTx struct {
	tx *sql.Tx
}

func (t *requestTx) UserExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := t.tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (t *requestTx) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return scanEvent(t.tx.QueryRowContext(ctx, getEventForUpdateSQL, id))
}

func (t *requestTx) Insert(ctx context.Context, pr *domain.ParticipationRequest) (*domain.ParticipationRequest, error) {
	err := t.tx.QueryRowContext(ctx, insertRequestSQL,
		pr.EventID, pr.RequesterID, string(pr.Status), pr.Created,
	).Scan(&pr.ID)
	if err != nil {
		return nil, mapConflict(err, "request already exists for this user and event")
	}
	return pr, nil
}

func (t *requestTx) GetByID(ctx context.Context, id int64) (*domain.ParticipationRequest, error) {
	var pr domain.ParticipationRequest
	var status string
	err := t.tx.QueryRowContext(ctx,
		`SELECT `+requestColumns+` FROM participation_requests WHERE id = $1 FOR UPDATE`, id,
	).Scan(&pr.ID, &pr.EventID, &pr.RequesterID, &status, &pr.Created)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("request not found")
	}
	if err != nil {
		return nil, err
	}
	pr.Status = domain.RequestStatus(status)
	return &pr, nil
}

func (t *requestTx) SetStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE participation_requests SET status = $2 WHERE id = $1`, id, string(status))
	return err
}

func (t *requestTx) AdjustConfirmed(ctx context.Context, eventID int64, delta int) (bool, error) {
	q := confirmDecrementSQL
	if delta > 0 {
		q = confirmIncrementSQL
	}
	res, err := t.tx.ExecContext(ctx, q, eventID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
