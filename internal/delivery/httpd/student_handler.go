package httpd

import (
	"net/http"

	"github.com/brunomarqs/studycash/internal/models"
)

func (h *Handler) GetAllStudents(w http.ResponseWriter, r *http.Request) {
	page := getIntQueryParam(r, "page", 1)
	limit := getIntQueryParam(r, "limit", 20)

	ctx := r.Context()
	students, total, err := h.studentService.GetAllStudents(ctx, page, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to get students")
		writeError(w, http.StatusInternalServerError, "Failed to get students")
		return
	}

	response := &models.StudentsResponse{
		Students: students,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}

	writeSuccess(w, response)
}

func (h *Handler) GetStudentByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	ctx := r.Context()
	student, err := h.studentService.GetStudentByID(ctx, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, student)
}

func (h *Handler) GetSubmissionsByStudent(w http.ResponseWriter, r *http.Request) {
	id, err := getIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid student ID")
		return
	}

	page := getIntQueryParam(r, "page", 1)
	limit := getIntQueryParam(r, "limit", 20)

	ctx := r.Context()
	response, err := h.submissionService.GetSubmissionsByStudent(ctx, id, page, limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, response)
}
