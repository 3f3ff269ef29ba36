package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/brunomarqs/studycash/internal/auth"
	"github.com/brunomarqs/studycash/internal/models"
	"github.com/brunomarqs/studycash/internal/repository"
)

type AuthService interface {
	RegisterProfessor(ctx context.Context, req *models.RegisterProfessorRequest) (*models.Professor, error)
	RegisterStudent(ctx context.Context, req *models.RegisterStudentRequest) (*models.Student, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, string, error)
}

type authService struct {
	professorRepo repository.ProfessorRepository
	studentRepo   repository.StudentRepository
	tokens        *auth.TokenManager
	// accessCode is the shared professor registration password.
	accessCode string
	logger     zerolog.Logger
}

func NewAuthService(
	professorRepo repository.ProfessorRepository,
	studentRepo repository.StudentRepository,
	tokens *auth.TokenManager,
	accessCode string,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		professorRepo: professorRepo,
		studentRepo:   studentRepo,
		tokens:        tokens,
		accessCode:    accessCode,
		logger:        logger,
	}
}

func (s *authService) RegisterProfessor(ctx context.Context, req *models.RegisterProfessorRequest) (*models.Professor, error) {
	if req.Password != s.accessCode {
		return nil, ErrBadAccessCode
	}

	existing, err := s.professorRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing professor: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	professor := &models.Professor{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.professorRepo.Create(ctx, professor); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create professor: %w", err)
	}

	s.logger.Info().
		Int64("professor_id", professor.ID).
		Str("email", professor.Email).
		Msg("Professor registered")

	return professor, nil
}

func (s *authService) RegisterStudent(ctx context.Context, req *models.RegisterStudentRequest) (*models.Student, error) {
	existing, err := s.studentRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing student: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	student := &models.Student{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		StudyCash: 0,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	s.logger.Info().
		Int64("student_id", student.ID).
		Str("email", student.Email).
		Msg("Student registered")

	return student, nil
}

// Login checks the account's credentials and issues a session token for the
// given role. Passwords are compared exactly as stored, matching the behavior
// the rest of the system depends on.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, string, error) {
	switch req.Role {
	case auth.RoleProfessor:
		professor, err := s.professorRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get professor: %w", err)
		}
		if professor == nil || professor.Password != req.Password {
			return nil, "", ErrInvalidCredentials
		}

		token, err := s.tokens.Issue(auth.RoleProfessor, professor.ID, professor.Email)
		if err != nil {
			return nil, "", fmt.Errorf("failed to issue session token: %w", err)
		}

		s.logger.Info().
			Int64("professor_id", professor.ID).
			Msg("Professor logged in")

		return &models.LoginResponse{Role: auth.RoleProfessor, Professor: professor}, token, nil

	case auth.RoleStudent:
		student, err := s.studentRepo.GetByEmail(ctx, req.Email)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get student: %w", err)
		}
		if student == nil || student.Password != req.Password {
			return nil, "", ErrInvalidCredentials
		}

		token, err := s.tokens.Issue(auth.RoleStudent, student.ID, student.Email)
		if err != nil {
			return nil, "", fmt.Errorf("failed to issue session token: %w", err)
		}

		s.logger.Info().
			Int64("student_id", student.ID).
			Msg("Student logged in")

		return &models.LoginResponse{Role: auth.RoleStudent, Student: student}, token, nil

	default:
		return nil, "", ErrInvalidCredentials
	}
}
