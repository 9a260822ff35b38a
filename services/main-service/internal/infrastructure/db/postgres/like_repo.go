package postgres

import (
	"context"
	"database/sql"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/like"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

// LikeRepo is the like.Ledger implementation: the likes table plus the
// cached counters on events and the derived rating on users, all mutated
// inside one transaction per operation.
type LikeRepo struct {
	db *sql.DB
}

func NewLikeRepo(db *sql.DB) *LikeRepo { return &LikeRepo{db: db} }

func (r *LikeRepo) WithTx(ctx context.Context, fn func(tx like.LedgerTx) error) error {
	return runTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&ledgerTx{tx: tx})
	})
}

func (r *LikeRepo) ListEventLikers(ctx context.Context, eventID int64, from, size int) ([]*domain.User, error) {
	from, size = clampPage(from, size)
	rows, err := r.db.QueryContext(ctx, `
SELECT u.id, u.name, u.email, u.rating
FROM users u
JOIN likes l ON l.user_id = u.id
WHERE l.event_id = $1
ORDER BY l.clicked_on, u.id
LIMIT $2 OFFSET $3
`, eventID, size, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *LikeRepo) ListUserLikes(ctx context.Context, userID int64, isLike *bool, from, size int) ([]*domain.Like, error) {
	from, size = clampPage(from, size)

	q := `
SELECT id, user_id, event_id, is_like, clicked_on
FROM likes
WHERE user_id = $1
`
	args := []any{userID}
	if isLike != nil {
		q += ` AND is_like = $2 ORDER BY clicked_on DESC LIMIT $3 OFFSET $4`
		args = append(args, *isLike, size, from)
	} else {
		q += ` ORDER BY clicked_on DESC LIMIT $2 OFFSET $3`
		args = append(args, size, from)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Like
	for rows.Next() {
		var l domain.Like
		if err := rows.Scan(&l.ID, &l.UserID, &l.EventID, &l.IsLike, &l.ClickedOn); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type ledgerTx struct {
	tx *sql.Tx
}

func (t *ledgerTx) UserExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := t.tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&ok)
	return ok, err
}

func (t *ledgerTx) GetEvent(ctx context.Context, id int64) (*domain.Event, error) {
	return scanEvent(t.tx.QueryRowContext(ctx, getEventForUpdateSQL, id))
}

func (t *ledgerTx) InsertLike(ctx context.Context, l *domain.Like) (*domain.Like, error) {
	err := t.tx.QueryRowContext(ctx, insertLikeSQL,
		l.UserID, l.EventID, l.IsLike, l.ClickedOn,
	).Scan(&l.ID)
	if err != nil {
		return nil, mapConflict(err, "like already exists for this user and event")
	}
	return l, nil
}

func (t *ledgerTx) GetLike(ctx context.Context, userID, eventID int64) (*domain.Like, error) {
	var l domain.Like
	err := t.tx.QueryRowContext(ctx, getLikeSQL, userID, eventID).
		Scan(&l.ID, &l.UserID, &l.EventID, &l.IsLike, &l.ClickedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("like not found")
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (t *ledgerTx) DeleteLike(ctx context.Context, id int64) error {
	res, err := t.tx.ExecContext(ctx, `DELETE FROM likes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("like not found")
	}
	return nil
}

func (t *ledgerTx) ApplyLikeDelta(ctx context.Context, eventID, ratingDelta, likesDelta int64) error {
	_, err := t.tx.ExecContext(ctx, likeDeltaSQL, eventID, ratingDelta, likesDelta)
	return err
}

func (t *ledgerTx) InitiatorAggregates(ctx context.Context, initiatorID int64) (int64, int64, error) {
	var ratingSum, likeSum int64
	err := t.tx.QueryRowContext(ctx, initiatorAggregatesSQL, initiatorID).Scan(&ratingSum, &likeSum)
	return ratingSum, likeSum, err
}

func (t *ledgerTx) SetUserRating(ctx context.Context, userID int64, rating float64) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE users SET rating = $2 WHERE id = $1`, userID, rating)
	return err
}
