package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/summitworks/eventreg/internal/domain/entity"
	"github.com/summitworks/eventreg/internal/domain/repository"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (name, description, location, start_date, end_date, registration_open)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, e.Name, e.Description, e.Location, e.StartDate, e.EndDate, e.RegistrationOpen)

	return row.Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	e := &entity.Event{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, location, start_date, end_date, registration_open, created_at, updated_at
		FROM events
		WHERE id = $1
	`, id)
	if err := scanEvent(row, e); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *EventRepository) ListOpen(ctx context.Context) ([]*entity.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, location, start_date, end_date, registration_open, created_at, updated_at
		FROM events
		WHERE registration_open = true
		ORDER BY start_date DESC NULLS LAST
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*entity.Event, 0)
	for rows.Next() {
		e := &entity.Event{}
		if err := scanEvent(rows, e); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *EventRepository) Update(ctx context.Context, e *entity.Event) error {
	e.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE events
		SET name = $1, description = $2, location = $3, start_date = $4, end_date = $5,
		    registration_open = $6, updated_at = $7
		WHERE id = $8
	`, e.Name, e.Description, e.Location, e.StartDate, e.EndDate, e.RegistrationOpen, e.UpdatedAt, e.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanEvent(row pgx.Row, e *entity.Event) error {
	return row.Scan(&e.ID, &e.Name, &e.Description, &e.Location,
		&e.StartDate, &e.EndDate, &e.RegistrationOpen, &e.CreatedAt, &e.UpdatedAt)
}

var _ repository.EventRepository = (*EventRepository)(nil)
