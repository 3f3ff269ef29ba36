package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/brunomarqs/studycash/internal/models"
)

type ProfessorRepository interface {
	Create(ctx context.Context, professor *models.Professor) error
	GetByID(ctx context.Context, id int64) (*models.Professor, error)
	GetByEmail(ctx context.Context, email string) (*models.Professor, error)
}

type professorRepository struct {
	*PostgresRepository
}

func NewProfessorRepository(db *sql.DB, logger zerolog.Logger) ProfessorRepository {
	return &professorRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *professorRepository) Create(ctx context.Context, professor *models.Professor) error {
	query := `
		INSERT INTO professors (name, email, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		professor.Name,
		professor.Email,
		professor.Password,
		professor.CreatedAt,
		professor.UpdatedAt,
	).Scan(&professor.ID)
}

func (r *professorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	query := `
		SELECT id, name, email, password, created_at, updated_at
		FROM professors
		WHERE id = $1
	`

	professor := &models.Professor{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&professor.ID,
		&professor.Name,
		&professor.Email,
		&professor.Password,
		&professor.CreatedAt,
		&professor.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return professor, err
}

func (r *professorRepository) GetByEmail(ctx context.Context, email string) (*models.Professor, error) {
	query := `
		SELECT id, name, email, password, created_at, updated_at
		FROM professors
		WHERE email = $1
	`

	professor := &models.Professor{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&professor.ID,
		&professor.Name,
		&professor.Email,
		&professor.Password,
		&professor.CreatedAt,
		&professor.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return professor, err
}
