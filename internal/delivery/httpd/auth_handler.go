package httpd

import (
	"net/http"
	"time"

	"github.com/brunomarqs/studycash/internal/auth"
	"github.com/brunomarqs/studycash/internal/models"
	"github.com/brunomarqs/studycash/pkg/utils"
)

func (h *Handler) RegisterProfessor(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterProfessorRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	ctx := r.Context()
	professor, err := h.authService.RegisterProfessor(ctx, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, professor)
}

func (h *Handler) RegisterStudent(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterStudentRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	ctx := r.Context()
	student, err := h.authService.RegisterStudent(ctx, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, student)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	ctx := r.Context()
	result, token, err := h.authService.Login(ctx, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.tokens.TTL()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeSuccess(w, result)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	writeSuccess(w, nil)
}

// GetSession reports the current session, or null when the request carries
// no valid session cookie. Never an error.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := SessionFromContext(r.Context())
	if session == nil {
		writeSuccess(w, nil)
		return
	}

	response := &models.SessionResponse{
		Role:  session.Role,
		Email: session.Email,
	}
	switch session.Role {
	case auth.RoleProfessor:
		response.ProfessorID = session.AccountID
	case auth.RoleStudent:
		response.StudentID = session.AccountID
	}

	writeSuccess(w, response)
}
