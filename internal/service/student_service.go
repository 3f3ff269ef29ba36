package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/brunomarqs/studycash/internal/models"
	"github.com/brunomarqs/studycash/internal/repository"
)

type StudentService interface {
	GetStudentByID(ctx context.Context, id int64) (*models.StudentWithStats, error)
	GetAllStudents(ctx context.Context, page, limit int) ([]models.StudentWithStats, int, error)
}

type studentService struct {
	studentRepo repository.StudentRepository
	logger      zerolog.Logger
}

func NewStudentService(studentRepo repository.StudentRepository, logger zerolog.Logger) StudentService {
	return &studentService{
		studentRepo: studentRepo,
		logger:      logger,
	}
}

func (s *studentService) GetStudentByID(ctx context.Context, id int64) (*models.StudentWithStats, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	return student, nil
}

func (s *studentService) GetAllStudents(ctx context.Context, page, limit int) ([]models.StudentWithStats, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	offset := (page - 1) * limit

	students, total, err := s.studentRepo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get all students: %w", err)
	}

	return students, total, nil
}
