package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brunomarqs/studycash/internal/models"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id int64) (*models.Submission, error)
	GetByStudentAndTask(ctx context.Context, studentID, taskID int64) (*models.Submission, error)
	GetByTaskID(ctx context.Context, taskID int64, limit, offset int) ([]models.SubmissionWithDetails, int, error)
	GetByStudentID(ctx context.Context, studentID int64, limit, offset int) ([]models.SubmissionWithDetails, int, error)
	GetAll(ctx context.Context, limit, offset int) ([]models.SubmissionWithDetails, int, error)
	Correct(ctx context.Context, id, studentID int64, feedback string, earnedCash int, correctedAt time.Time) (bool, error)
}

type submissionRepository struct {
	*PostgresRepository
}

func NewSubmissionRepository(db *sql.DB, logger zerolog.Logger) SubmissionRepository {
	return &submissionRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (task_id, student_id, answer, status, earned_cash, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return r.db.QueryRowContext(ctx, query,
		submission.TaskID,
		submission.StudentID,
		submission.Answer,
		submission.Status,
		submission.EarnedCash,
		submission.SubmittedAt,
	).Scan(&submission.ID)
}

func (r *submissionRepository) GetByID(ctx context.Context, id int64) (*models.Submission, error) {
	query := `
		SELECT id, task_id, student_id, answer, status, feedback, earned_cash, submitted_at, corrected_at
		FROM submissions
		WHERE id = $1
	`

	submission := &models.Submission{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&submission.ID,
		&submission.TaskID,
		&submission.StudentID,
		&submission.Answer,
		&submission.Status,
		&submission.Feedback,
		&submission.EarnedCash,
		&submission.SubmittedAt,
		&submission.CorrectedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return submission, err
}

func (r *submissionRepository) GetByStudentAndTask(ctx context.Context, studentID, taskID int64) (*models.Submission, error) {
	query := `
		SELECT id, task_id, student_id, answer, status, feedback, earned_cash, submitted_at, corrected_at
		FROM submissions
		WHERE student_id = $1 AND task_id = $2
	`

	submission := &models.Submission{}
	err := r.db.QueryRowContext(ctx, query, studentID, taskID).Scan(
		&submission.ID,
		&submission.TaskID,
		&submission.StudentID,
		&submission.Answer,
		&submission.Status,
		&submission.Feedback,
		&submission.EarnedCash,
		&submission.SubmittedAt,
		&submission.CorrectedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return submission, err
}

func (r *submissionRepository) GetByTaskID(ctx context.Context, taskID int64, limit, offset int) ([]models.SubmissionWithDetails, int, error) {
	countQuery := `SELECT COUNT(*) FROM submissions WHERE task_id = $1`
	var total int
	err := r.db.QueryRowContext(ctx, countQuery, taskID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := detailsQuery + `
		WHERE s.task_id = $1
		ORDER BY s.submitted_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, taskID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return scanSubmissionDetails(rows, total)
}

func (r *submissionRepository) GetByStudentID(ctx context.Context, studentID int64, limit, offset int) ([]models.SubmissionWithDetails, int, error) {
	countQuery := `SELECT COUNT(*) FROM submissions WHERE student_id = $1`
	var total int
	err := r.db.QueryRowContext(ctx, countQuery, studentID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := detailsQuery + `
		WHERE s.student_id = $1
		ORDER BY s.submitted_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, studentID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return scanSubmissionDetails(rows, total)
}

func (r *submissionRepository) GetAll(ctx context.Context, limit, offset int) ([]models.SubmissionWithDetails, int, error) {
	countQuery := `SELECT COUNT(*) FROM submissions`
	var total int
	err := r.db.QueryRowContext(ctx, countQuery).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := detailsQuery + `
		ORDER BY s.submitted_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	return scanSubmissionDetails(rows, total)
}

// Correct marks a pending submission as corrected and credits the student's
// balance in the same transaction. The status guard in the UPDATE and the
// single-statement balance increment close the check-then-act races around
// grading. Returns false when the submission was not pending anymore.
func (r *submissionRepository) Correct(ctx context.Context, id, studentID int64, feedback string, earnedCash int, correctedAt time.Time) (bool, error) {
	tx, err := r.BeginTx(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE submissions
		SET status = 'corrected', feedback = $1, earned_cash = $2, corrected_at = $3
		WHERE id = $4 AND status = 'pending'
	`

	result, err := tx.ExecContext(ctx, updateQuery, feedback, earnedCash, correctedAt, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, nil
	}

	creditQuery := `
		UPDATE students
		SET study_cash = study_cash + $1, updated_at = $2
		WHERE id = $3
	`

	if _, err := tx.ExecContext(ctx, creditQuery, earnedCash, correctedAt, studentID); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return true, nil
}

const detailsQuery = `
	SELECT
		s.id, s.task_id, s.student_id, s.answer, s.status, s.feedback, s.earned_cash, s.submitted_at, s.corrected_at,
		st.name as student_name, st.email as student_email,
		t.title as task_title, t.reward as task_reward
	FROM submissions s
	JOIN students st ON s.student_id = st.id
	JOIN tasks t ON s.task_id = t.id
`

func scanSubmissionDetails(rows *sql.Rows, total int) ([]models.SubmissionWithDetails, int, error) {
	var submissions []models.SubmissionWithDetails
	for rows.Next() {
		var submission models.SubmissionWithDetails
		err := rows.Scan(
			&submission.ID,
			&submission.TaskID,
			&submission.StudentID,
			&submission.Answer,
			&submission.Status,
			&submission.Feedback,
			&submission.EarnedCash,
			&submission.SubmittedAt,
			&submission.CorrectedAt,
			&submission.StudentName,
			&submission.StudentEmail,
			&submission.TaskTitle,
			&submission.TaskReward,
		)
		if err != nil {
			return nil, 0, err
		}
		submissions = append(submissions, submission)
	}

	return submissions, total, rows.Err()
}
