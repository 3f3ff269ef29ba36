package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brunomarqs/studycash/internal/models"
	"github.com/brunomarqs/studycash/internal/repository"
)

type TaskService interface {
	CreateTask(ctx context.Context, req *models.CreateTaskRequest) (*models.Task, error)
	GetTaskByID(ctx context.Context, id int64) (*models.Task, error)
	GetAllTasks(ctx context.Context, page, limit int) ([]models.TaskWithStats, int, error)
	GetActiveTasks(ctx context.Context, page, limit int) ([]models.Task, int, error)
	UpdateTask(ctx context.Context, id int64, req *models.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
}

type taskService struct {
	taskRepo repository.TaskRepository
	logger   zerolog.Logger
}

func NewTaskService(taskRepo repository.TaskRepository, logger zerolog.Logger) TaskService {
	return &taskService{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

func (s *taskService) CreateTask(ctx context.Context, req *models.CreateTaskRequest) (*models.Task, error) {
	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Reward:      req.Reward,
		Status:      models.TaskStatusActive.String(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("title", task.Title).
		Int("reward", task.Reward).
		Msg("Task created")

	return task, nil
}

func (s *taskService) GetTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	return task, nil
}

func (s *taskService) GetAllTasks(ctx context.Context, page, limit int) ([]models.TaskWithStats, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit

	tasks, total, err := s.taskRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get all tasks: %w", err)
	}

	return tasks, total, nil
}

func (s *taskService) GetActiveTasks(ctx context.Context, page, limit int) ([]models.Task, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit

	tasks, total, err := s.taskRepo.GetActive(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get active tasks: %w", err)
	}

	return tasks, total, nil
}

// UpdateTask applies the non-nil fields of req. Archiving is one-way: an
// archived task can never go back to active.
func (s *taskService) UpdateTask(ctx context.Context, id int64, req *models.UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Reward != nil {
		task.Reward = *req.Reward
	}
	if req.Status != nil {
		if task.Status == models.TaskStatusArchived.String() && *req.Status == models.TaskStatusActive.String() {
			return nil, ErrTaskNotArchivable
		}
		task.Status = *req.Status
	}
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Str("status", task.Status).
		Msg("Task updated")

	return task, nil
}

// DeleteTask removes the task; its submissions go with it through the
// ON DELETE CASCADE constraint.
func (s *taskService) DeleteTask(ctx context.Context, id int64) error {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}
	if task == nil {
		return ErrTaskNotFound
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info().
		Int64("task_id", id).
		Msg("Task deleted")

	return nil
}
