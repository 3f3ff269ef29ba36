package httpd

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/brunomarqs/studycash/internal/auth"
	"github.com/brunomarqs/studycash/internal/service"
	"github.com/brunomarqs/studycash/pkg/utils"
)

type Handler struct {
	authService       service.AuthService
	studentService    service.StudentService
	taskService       service.TaskService
	submissionService service.SubmissionService
	tokens            *auth.TokenManager
	cookieName        string
	cookieSecure      bool
	validate          *validator.Validate
	logger            zerolog.Logger
}

func NewHandler(
	authService service.AuthService,
	studentService service.StudentService,
	taskService service.TaskService,
	submissionService service.SubmissionService,
	tokens *auth.TokenManager,
	cookieName string,
	cookieSecure bool,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		authService:       authService,
		studentService:    studentService,
		taskService:       taskService,
		submissionService: submissionService,
		tokens:            tokens,
		cookieName:        cookieName,
		cookieSecure:      cookieSecure,
		validate:          validator.New(),
		logger:            logger,
	}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/health", h.HealthCheck)

	router.Route("/api/v1", func(api chi.Router) {
		api.Use(h.SessionLoader)

		api.Route("/auth", func(r chi.Router) {
			r.Post("/register/professor", h.RegisterProfessor)
			r.Post("/register/student", h.RegisterStudent)
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.Get("/session", h.GetSession)
		})

		api.Route("/tasks", func(r chi.Router) {
			r.With(h.RequireSession).Get("/", h.GetAllTasks)
			r.With(h.RequireSession).Get("/active", h.GetActiveTasks)
			r.With(h.RequireSession).Get("/{id}", h.GetTaskByID)
			r.With(h.RequireProfessor).Post("/", h.CreateTask)
			r.With(h.RequireProfessor).Put("/{id}", h.UpdateTask)
			r.With(h.RequireProfessor).Delete("/{id}", h.DeleteTask)
			r.With(h.RequireProfessor).Get("/{id}/submissions", h.GetSubmissionsByTask)
		})

		api.Route("/students", func(r chi.Router) {
			r.With(h.RequireProfessor).Get("/", h.GetAllStudents)
			r.With(h.RequireSession).Get("/{id}", h.GetStudentByID)
			r.With(h.RequireSession).Get("/{id}/submissions", h.GetSubmissionsByStudent)
		})

		api.Route("/submissions", func(r chi.Router) {
			r.With(h.RequireStudent).Post("/", h.CreateSubmission)
			r.With(h.RequireProfessor).Get("/", h.GetAllSubmissions)
			r.With(h.RequireSession).Get("/{id}", h.GetSubmissionByID)
			r.With(h.RequireProfessor).Put("/{id}/correct", h.CorrectSubmission)
		})
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "studycash",
		"timestamp": time.Now().UTC(),
	}

	utils.WriteJSON(w, http.StatusOK, response)
}

// validateRequest runs the boundary validation declared on DTO tags.
func (h *Handler) validateRequest(w http.ResponseWriter, req interface{}) bool {
	if err := h.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			writeError(w, http.StatusBadRequest, "invalid field: "+fieldErrs[0].Field())
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// handleServiceError maps the service layer's sentinel errors to HTTP codes.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrBadAccessCode):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyCorrected):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAlreadySubmitted),
		errors.Is(err, service.ErrRewardExceeded),
		errors.Is(err, service.ErrTaskArchived),
		errors.Is(err, service.ErrTaskNotArchivable):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrStudentNotFound),
		errors.Is(err, service.ErrSubmissionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Service error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func getIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func writeError(w http.ResponseWriter, status int, message string) {
	utils.WriteJSON(w, status, map[string]interface{}{
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeSuccess(w http.ResponseWriter, data interface{}) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	utils.WriteJSON(w, http.StatusOK, response)
}
