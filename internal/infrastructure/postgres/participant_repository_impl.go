package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/summitworks/eventreg/internal/domain/entity"
	"github.com/summitworks/eventreg/internal/domain/repository"
)

type ParticipantRepository struct {
	pool *pgxpool.Pool
}

func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

const participantColumns = `
	id, event_id, user_id, first_name, last_name, email,
	tshirt_size, division, expected_graduation_year, university, resume_url,
	acknowledged_id_requirement, acknowledged_filming, acknowledged_team_merge,
	interested_in_financial_aid, additional_data, created_at, updated_at`

func (r *ParticipantRepository) Create(ctx context.Context, p *entity.Participant) error {
	if len(p.AdditionalData) == 0 {
		p.AdditionalData = []byte(`{}`)
	}
	// user_id is nullable; empty string means a walk-up registration
	var userID any
	if p.UserID != "" {
		userID = p.UserID
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO participants (
			event_id, user_id, first_name, last_name, email,
			tshirt_size, division, expected_graduation_year, university, resume_url,
			acknowledged_id_requirement, acknowledged_filming, acknowledged_team_merge,
			interested_in_financial_aid, additional_data
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`, p.EventID, userID, p.FirstName, p.LastName, p.Email,
		p.TshirtSize, p.Division, p.ExpectedGraduationYear, p.University, p.ResumeURL,
		p.AcknowledgedIDRequirement, p.AcknowledgedFilming, p.AcknowledgedTeamMerge,
		p.InterestedInFinancialAid, p.AdditionalData)

	return row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ParticipantRepository) GetByID(ctx context.Context, id string) (*entity.Participant, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+participantColumns+` FROM participants WHERE id = $1`, id)
	return scanParticipant(row)
}

func (r *ParticipantRepository) ListByEvent(ctx context.Context, eventID string) ([]*entity.Participant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+participantColumns+`
		FROM participants
		WHERE event_id = $1
		ORDER BY created_at DESC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*entity.Participant, 0)
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func (r *ParticipantRepository) GetByUserAndEvent(ctx context.Context, userID, eventID string) (*entity.Participant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+participantColumns+`
		FROM participants
		WHERE user_id = $1 AND event_id = $2
	`, userID, eventID)
	return scanParticipant(row)
}

func (r *ParticipantRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanParticipant(row pgx.Row) (*entity.Participant, error) {
	p := &entity.Participant{}
	var userID *string
	err := row.Scan(&p.ID, &p.EventID, &userID, &p.FirstName, &p.LastName, &p.Email,
		&p.TshirtSize, &p.Division, &p.ExpectedGraduationYear, &p.University, &p.ResumeURL,
		&p.AcknowledgedIDRequirement, &p.AcknowledgedFilming, &p.AcknowledgedTeamMerge,
		&p.InterestedInFinancialAid, &p.AdditionalData, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if userID != nil {
		p.UserID = *userID
	}
	return p, nil
}

var _ repository.ParticipantRepository = (*ParticipantRepository)(nil)
