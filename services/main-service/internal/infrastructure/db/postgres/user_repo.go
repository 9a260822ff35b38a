package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	err := r.db.QueryRowContext(ctx, insertUserSQL, u.Name, u.Email).Scan(&u.ID)
	if err != nil {
		return nil, mapConflict(err, "email already registered")
	}
	return u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, rating FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Rating)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) List(ctx context.Context, ids []int64, from, size int) ([]*domain.User, error) {
	from, size = clampPage(from, size)

	var rows *sql.Rows
	var err error
	if len(ids) > 0 {
		rows, err = r.db.QueryContext(ctx, `
SELECT id, name, email, rating FROM users
WHERE id = ANY($1)
ORDER BY id
LIMIT $2 OFFSET $3
`, pq.Array(ids), size, from)
	} else {
		rows, err = r.db.QueryContext(ctx, `
SELECT id, name, email, rating FROM users
ORDER BY id
LIMIT $1 OFFSET $2
`, size, from)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound("user not found")
	}
	return nil
}

// ListByRating orders users by their aggregate rating, id ascending as the
// stable tiebreak.
func (r *UserRepo) ListByRating(ctx context.Context, from, size int, asc bool) ([]*domain.User, error) {
	from, size = clampPage(from, size)

	dir := "DESC"
	if asc {
		dir = "ASC"
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, email, rating FROM users
ORDER BY rating `+dir+`, id
LIMIT $1 OFFSET $2
`, size, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows *sql.Rows) ([]*domain.User, error) {
	var out []*domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Rating); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
