package httpd

import (
	"net/http"

	"github.com/brunomarqs/studycash/internal/models"
	"github.com/brunomarqs/studycash/pkg/utils"
)

func (h *Handler) CreateSubmission(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubmissionRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	// Students may only submit on their own behalf.
	session := SessionFromContext(r.Context())
	if session != nil && session.AccountID != req.StudentID {
		writeError(w, http.StatusForbidden, "cannot submit for another student")
		return
	}

	ctx := r.Context()
	submission, err := h.submissionService.CreateSubmission(ctx, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, submission)
}

func (h *Handler) GetAllSubmissions(w http.ResponseWriter, r *http.Request) {
	page := getIntQueryParam(r, "page", 1)
	limit := getIntQueryParam(r, "limit", 20)

	ctx := r.Context()
	response, err := h.submissionService.GetAllSubmissions(ctx, page, limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, response)
}

func (h *Handler) GetSubmissionByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid submission ID")
		return
	}

	ctx := r.Context()
	submission, err := h.submissionService.GetSubmissionByID(ctx, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, submission)
}

func (h *Handler) CorrectSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := getIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid submission ID")
		return
	}

	var req models.CorrectSubmissionRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	ctx := r.Context()
	submission, err := h.submissionService.CorrectSubmission(ctx, id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, submission)
}
