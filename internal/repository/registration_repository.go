package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devimpact/internal/domain"
	"devimpact/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const registrationColumns = `
	id, full_name, email, year_of_study, has_team, team_name, team_members,
	experience_level, skills, other_skills, additional_notes, status, registered_at`

// Team names are grouped trimmed, so team lookups ignore surrounding
// whitespace left in older rows.
const (
	listByTeamQuery = `SELECT` + registrationColumns + `
		FROM registrations
		WHERE has_team = 'yes' AND btrim(team_name) = $1
		ORDER BY registered_at ASC`

	updateTeamStatusQuery = `UPDATE registrations SET status = $2
		WHERE has_team = 'yes' AND btrim(team_name) = $1`
)

type registrationRepository struct {
	db *database.PostgresDB
}

// NewRegistrationRepository creates a Postgres backed RegistrationRepository
func NewRegistrationRepository(db *database.PostgresDB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) List(ctx context.Context) ([]*domain.Registration, error) {
	query := `SELECT` + registrationColumns + `
		FROM registrations
		ORDER BY registered_at DESC`

	rows, err := r.db.GetReadPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return collectRegistrations(rows)
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	if !isUUID(id) {
		return nil, nil
	}

	query := `SELECT` + registrationColumns + `
		FROM registrations
		WHERE id = $1`

	reg, err := scanRegistration(r.db.Pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}
	return reg, nil
}

func (r *registrationRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM registrations WHERE email = $1)`

	if err := r.db.GetReadPool().QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (
			full_name, email, year_of_study, has_team, team_name, team_members,
			experience_level, skills, other_skills, additional_notes, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, registered_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		reg.FullName,
		reg.Email,
		reg.YearOfStudy,
		reg.HasTeam,
		reg.TeamName,
		reg.TeamMembers,
		reg.ExperienceLevel,
		reg.Skills,
		reg.OtherSkills,
		reg.AdditionalNotes,
		reg.Status,
	).Scan(&reg.ID, &reg.RegisteredAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (int64, error) {
	if !isUUID(id) {
		return 0, nil
	}
	tag, err := r.db.Pool.Exec(ctx, `UPDATE registrations SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return 0, fmt.Errorf("failed to update status: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *registrationRepository) BulkUpdateStatus(ctx context.Context, ids []string, status domain.Status) (int64, error) {
	ids = filterUUIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}

	tag, err := r.db.Pool.Exec(ctx, `UPDATE registrations SET status = $2 WHERE id = ANY($1::uuid[])`, ids, string(status))
	if err != nil {
		return 0, fmt.Errorf("failed to bulk update status: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *registrationRepository) ListByTeam(ctx context.Context, teamName string) ([]*domain.Registration, error) {
	rows, err := r.db.Pool.Query(ctx, listByTeamQuery, strings.TrimSpace(teamName))
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return collectRegistrations(rows)
}

func (r *registrationRepository) UpdateTeamStatus(ctx context.Context, teamName string, status domain.Status) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, updateTeamStatusQuery, strings.TrimSpace(teamName), string(status))
	if err != nil {
		return 0, fmt.Errorf("failed to update team status: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *registrationRepository) AssignTeam(ctx context.Context, id, teamName string) error {
	if !isUUID(id) {
		return ErrNotFound
	}
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE registrations SET has_team = 'yes', team_name = $2, status = 'pending' WHERE id = $1`,
		id, teamName)
	if err != nil {
		return fmt.Errorf("failed to assign team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *registrationRepository) ClearTeam(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrNotFound
	}
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE registrations SET has_team = 'no', team_name = NULL, status = 'pending' WHERE id = $1`,
		id)
	if err != nil {
		return fmt.Errorf("failed to clear team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *registrationRepository) Recent(ctx context.Context, limit int) ([]*domain.Registration, error) {
	query := `SELECT` + registrationColumns + `
		FROM registrations
		ORDER BY registered_at DESC
		LIMIT $1`

	rows, err := r.db.GetReadPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent registrations: %w", err)
	}
	return collectRegistrations(rows)
}

func collectRegistrations(rows pgx.Rows) ([]*domain.Registration, error) {
	defer rows.Close()

	var regs []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registrations: %w", err)
	}
	return regs, nil
}

func scanRegistration(row pgx.Row) (*domain.Registration, error) {
	var reg domain.Registration
	err := row.Scan(
		&reg.ID,
		&reg.FullName,
		&reg.Email,
		&reg.YearOfStudy,
		&reg.HasTeam,
		&reg.TeamName,
		&reg.TeamMembers,
		&reg.ExperienceLevel,
		&reg.Skills,
		&reg.OtherSkills,
		&reg.AdditionalNotes,
		&reg.Status,
		&reg.RegisteredAt,
	)
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// isUUID guards id columns; a malformed id can never match a row and would
// otherwise surface as a Postgres cast error.
func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}

func filterUUIDs(ids []string) []string {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if isUUID(id) {
			valid = append(valid, id)
		}
	}
	return valid
}
