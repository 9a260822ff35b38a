package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/explorewithme/explore-with-me/services/main-service/internal/application/event"
	"github.com/explorewithme/explore-with-me/services/main-service/internal/domain"
)

type EventRepo struct {
	db *sql.DB
}

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	var state string
	err := row.Scan(
		&e.ID, &e.InitiatorID, &e.Title, &e.Annotation, &e.Description, &e.Category,
		&e.Location.Lat, &e.Location.Lon,
		&e.EventDate, &e.ParticipantLimit, &e.RequestModeration, &e.ConfirmedRequests,
		&e.Rating, &e.NumberOfLikes, &state, &e.PublishedOn, &e.CreatedOn,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound("event not found")
	}
	if err != nil {
		return nil, err
	}
	e.State = domain.EventState(state)
	if !e.State.Valid() {
		return nil, domain.ErrInvalidState("invalid state in db")
	}
	return &e, nil
}

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	err := r.db.QueryRowContext(ctx, insertEventSQL,
		e.InitiatorID, e.Title, e.Annotation, e.Description, e.Category,
		e.Location.Lat, e.Location.Lon,
		e.EventDate, e.ParticipantLimit, e.RequestModeration, e.ConfirmedRequests,
		e.Rating, e.NumberOfLikes, string(e.State), e.PublishedOn, e.CreatedOn,
	).Scan(&e.ID)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EventRepo) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	return scanEvent(r.db.QueryRowContext(ctx, getEventSQL, id))
}

func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	_, err := r.db.ExecContext(ctx, updateEventSQL,
		e.ID,
		e.Title, e.Annotation, e.Description, e.Category,
		e.Location.Lat, e.Location.Lon,
		e.EventDate, e.ParticipantLimit, e.RequestModeration,
		string(e.State), e.PublishedOn,
	)
	return err
}

func (r *EventRepo) ListByInitiator(ctx context.Context, initiatorID int64, from, size int) ([]*domain.Event, error) {
	from, size = clampPage(from, size)
	rows, err := r.db.QueryContext(ctx, `
SELECT `+eventColumns+`
FROM events
WHERE initiator_id = $1
ORDER BY created_on DESC
LIMIT $2 OFFSET $3
`, initiatorID, size, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func collectEvents(rows *sql.Rows) ([]*domain.Event, error) {
	var out []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func clampPage(from, size int) (int, int) {
	if from < 0 {
		from = 0
	}
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	return from, size
}

func (r *EventRepo) AdminSearch(ctx context.Context, f event.AdminFilter) ([]*domain.Event, error) {
	where := []string{"TRUE"}
	args := []any{}
	argN := 1

	add := func(condFmt string, val any) {
		where = append(where, fmt.Sprintf(condFmt, argN))
		args = append(args, val)
		argN++
	}

	if len(f.Users) > 0 {
		add("initiator_id = ANY($%d)", pq.Array(f.Users))
	}
	if len(f.States) > 0 {
		states := make([]string, 0, len(f.States))
		for _, s := range f.States {
			states = append(states, string(s))
		}
		add("state = ANY($%d)", pq.Array(states))
	}
	if len(f.Categories) > 0 {
		add("category = ANY($%d)", pq.Array(f.Categories))
	}
	if f.RangeStart != nil {
		add("event_date >= $%d", *f.RangeStart)
	}
	if f.RangeEnd != nil {
		add("event_date <= $%d", *f.RangeEnd)
	}

	from, size := clampPage(f.From, f.Size)
	args = append(args, size, from)

	q := `SELECT ` + eventColumns + ` FROM events WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", argN, argN+1)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepo) ListPublished(ctx context.Context, f event.PublicFilter) ([]*domain.Event, error) {
	where := []string{"state = 'PUBLISHED'"}
	args := []any{}
	argN := 1

	add := func(condFmt string, val any) {
		where = append(where, fmt.Sprintf(condFmt, argN))
		args = append(args, val)
		argN++
	}

	if text := strings.TrimSpace(f.Text); text != "" {
		pat := "%" + text + "%"
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR annotation ILIKE $%d)", argN, argN))
		args = append(args, pat)
		argN++
	}
	if len(f.Categories) > 0 {
		add("category = ANY($%d)", pq.Array(f.Categories))
	}
	if f.RangeStart != nil {
		add("event_date >= $%d", *f.RangeStart)
	}
	if f.RangeEnd != nil {
		add("event_date <= $%d", *f.RangeEnd)
	}

	from, size := clampPage(f.From, f.Size)
	args = append(args, size, from)

	q := `SELECT ` + eventColumns + ` FROM events WHERE ` + strings.Join(where, " AND ") +
		fmt.Sprintf(" ORDER BY event_date LIMIT $%d OFFSET $%d", argN, argN+1)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}
