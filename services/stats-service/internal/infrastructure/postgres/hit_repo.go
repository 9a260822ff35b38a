package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/explorewithme/explore-with-me/services/stats-service/internal/domain"
)

type HitRepo struct {
	pool *pgxpool.Pool
}

func NewHitRepo(pool *pgxpool.Pool) *HitRepo {
	return &HitRepo{pool: pool}
}

func (r *HitRepo) Insert(ctx context.Context, h *domain.Hit) (*domain.Hit, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO hits (app, uri, ip, ts)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, h.App, h.URI, h.IP, h.Timestamp).Scan(&h.ID)
	if err != nil {
		return nil, err
	}
	return h, nil
}

func (r *HitRepo) Aggregate(ctx context.Context, start, end time.Time, uris []string, unique bool) ([]domain.ViewStats, error) {
	metric := "COUNT(*)"
	if unique {
		metric = "COUNT(DISTINCT ip)"
	}

	q := `
		SELECT app, uri, ` + metric + ` AS hits
		FROM hits
		WHERE ts BETWEEN $1 AND $2
	`
	args := []any{start, end}
	if len(uris) > 0 {
		q += ` AND uri = ANY($3)`
		args = append(args, uris)
	}
	q += `
		GROUP BY app, uri
		ORDER BY hits DESC
	`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ViewStats
	for rows.Next() {
		var vs domain.ViewStats
		if err := rows.Scan(&vs.App, &vs.URI, &vs.Hits); err != nil {
			return nil, err
		}
		out = append(out, vs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
