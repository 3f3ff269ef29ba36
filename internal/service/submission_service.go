package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brunomarqs/studycash/internal/models"
	"github.com/brunomarqs/studycash/internal/repository"
	"github.com/brunomarqs/studycash/internal/service/integration"
)

type SubmissionService interface {
	CreateSubmission(ctx context.Context, req *models.CreateSubmissionRequest) (*models.Submission, error)
	GetSubmissionByID(ctx context.Context, id int64) (*models.Submission, error)
	GetSubmissionsByTask(ctx context.Context, taskID int64, page, limit int) (*models.SubmissionsResponse, error)
	GetSubmissionsByStudent(ctx context.Context, studentID int64, page, limit int) (*models.SubmissionsResponse, error)
	GetAllSubmissions(ctx context.Context, page, limit int) (*models.SubmissionsResponse, error)
	CorrectSubmission(ctx context.Context, id int64, req *models.CorrectSubmissionRequest) (*models.Submission, error)
}

type submissionService struct {
	submissionRepo repository.SubmissionRepository
	studentRepo    repository.StudentRepository
	taskRepo       repository.TaskRepository
	eventsClient   integration.EventsClient
	logger         zerolog.Logger
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	studentRepo repository.StudentRepository,
	taskRepo repository.TaskRepository,
	eventsClient integration.EventsClient,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionService{
		submissionRepo: submissionRepo,
		studentRepo:    studentRepo,
		taskRepo:       taskRepo,
		eventsClient:   eventsClient,
		logger:         logger,
	}
}

// CreateSubmission records a student's answer for a task. A student gets one
// submission per task: the pre-check gives a friendly error, and the unique
// constraint on (student_id, task_id) settles concurrent attempts.
func (s *submissionService) CreateSubmission(ctx context.Context, req *models.CreateSubmissionRequest) (*models.Submission, error) {
	task, err := s.taskRepo.GetByID(ctx, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	if task.Status == models.TaskStatusArchived.String() {
		return nil, ErrTaskArchived
	}

	studentExists, err := s.studentRepo.Exists(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check student existence: %w", err)
	}
	if !studentExists {
		return nil, ErrStudentNotFound
	}

	existing, err := s.submissionRepo.GetByStudentAndTask(ctx, req.StudentID, req.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing submission: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadySubmitted
	}

	submission := &models.Submission{
		TaskID:      req.TaskID,
		StudentID:   req.StudentID,
		Answer:      req.Answer,
		Status:      models.SubmissionStatusPending.String(),
		EarnedCash:  0,
		SubmittedAt: time.Now(),
	}

	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	s.logger.Info().
		Int64("submission_id", submission.ID).
		Int64("task_id", submission.TaskID).
		Int64("student_id", submission.StudentID).
		Msg("Submission created")

	if s.eventsClient != nil {
		event := &models.SubmissionCreatedEvent{
			SubmissionID: submission.ID,
			TaskID:       submission.TaskID,
			StudentID:    submission.StudentID,
			Timestamp:    submission.SubmittedAt.Unix(),
		}
		if err := s.eventsClient.PublishSubmissionCreated(ctx, event); err != nil {
			s.logger.Error().Err(err).Msg("Failed to publish submission created event")
		}
	}

	return submission, nil
}

func (s *submissionService) GetSubmissionByID(ctx context.Context, id int64) (*models.Submission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}

	return submission, nil
}

func (s *submissionService) GetSubmissionsByTask(ctx context.Context, taskID int64, page, limit int) (*models.SubmissionsResponse, error) {
	taskExists, err := s.taskRepo.Exists(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to check task existence: %w", err)
	}
	if !taskExists {
		return nil, ErrTaskNotFound
	}

	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	submissions, total, err := s.submissionRepo.GetByTaskID(ctx, taskID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions by task: %w", err)
	}

	return &models.SubmissionsResponse{
		Submissions: submissions,
		Total:       total,
		Page:        page,
		Limit:       limit,
	}, nil
}

func (s *submissionService) GetSubmissionsByStudent(ctx context.Context, studentID int64, page, limit int) (*models.SubmissionsResponse, error) {
	studentExists, err := s.studentRepo.Exists(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check student existence: %w", err)
	}
	if !studentExists {
		return nil, ErrStudentNotFound
	}

	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	submissions, total, err := s.submissionRepo.GetByStudentID(ctx, studentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get submissions by student: %w", err)
	}

	return &models.SubmissionsResponse{
		Submissions: submissions,
		Total:       total,
		Page:        page,
		Limit:       limit,
	}, nil
}

func (s *submissionService) GetAllSubmissions(ctx context.Context, page, limit int) (*models.SubmissionsResponse, error) {
	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	submissions, total, err := s.submissionRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get all submissions: %w", err)
	}

	return &models.SubmissionsResponse{
		Submissions: submissions,
		Total:       total,
		Page:        page,
		Limit:       limit,
	}, nil
}

// CorrectSubmission grades a pending submission: it becomes corrected with
// the professor's feedback and the earned StudyCash is credited to the
// student in the same transaction. A submission is graded at most once, and
// the payout cannot exceed the task's reward.
func (s *submissionService) CorrectSubmission(ctx context.Context, id int64, req *models.CorrectSubmissionRequest) (*models.Submission, error) {
	submission, err := s.submissionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if submission == nil {
		return nil, ErrSubmissionNotFound
	}
	if submission.Status == models.SubmissionStatusCorrected.String() {
		return nil, ErrAlreadyCorrected
	}

	task, err := s.taskRepo.GetByID(ctx, submission.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task != nil && req.EarnedCash > task.Reward {
		return nil, ErrRewardExceeded
	}

	correctedAt := time.Now()
	corrected, err := s.submissionRepo.Correct(ctx, id, submission.StudentID, req.Feedback, req.EarnedCash, correctedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to correct submission: %w", err)
	}
	if !corrected {
		// Lost the race against another grading request.
		return nil, ErrAlreadyCorrected
	}

	submission.Status = models.SubmissionStatusCorrected.String()
	submission.Feedback = &req.Feedback
	submission.EarnedCash = req.EarnedCash
	submission.CorrectedAt = &correctedAt

	s.logger.Info().
		Int64("submission_id", submission.ID).
		Int64("student_id", submission.StudentID).
		Int("earned_cash", submission.EarnedCash).
		Msg("Submission corrected")

	if s.eventsClient != nil {
		event := &models.SubmissionCorrectedEvent{
			SubmissionID: submission.ID,
			TaskID:       submission.TaskID,
			StudentID:    submission.StudentID,
			EarnedCash:   submission.EarnedCash,
			Timestamp:    correctedAt.Unix(),
		}
		if err := s.eventsClient.PublishSubmissionCorrected(ctx, event); err != nil {
			s.logger.Error().Err(err).Msg("Failed to publish submission corrected event")
		}
	}

	return submission, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
