package httpd

import (
	"net/http"

	"github.com/brunomarqs/studycash/internal/models"
	"github.com/brunomarqs/studycash/pkg/utils"
)

func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTaskRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	ctx := r.Context()
	task, err := h.taskService.CreateTask(ctx, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, task)
}

func (h *Handler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	page := getIntQueryParam(r, "page", 1)
	limit := getIntQueryParam(r, "limit", 20)

	ctx := r.Context()
	tasks, total, err := h.taskService.GetAllTasks(ctx, page, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to get tasks")
		writeError(w, http.StatusInternalServerError, "Failed to get tasks")
		return
	}

	response := &models.TasksResponse{
		Tasks: tasks,
		Total: total,
		Page:  page,
		Limit: limit,
	}

	writeSuccess(w, response)
}

func (h *Handler) GetActiveTasks(w http.ResponseWriter, r *http.Request) {
	page := getIntQueryParam(r, "page", 1)
	limit := getIntQueryParam(r, "limit", 20)

	ctx := r.Context()
	tasks, total, err := h.taskService.GetActiveTasks(ctx, page, limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to get active tasks")
		writeError(w, http.StatusInternalServerError, "Failed to get active tasks")
		return
	}

	response := map[string]interface{}{
		"tasks": tasks,
		"total": total,
		"page":  page,
		"limit": limit,
	}

	writeSuccess(w, response)
}

func (h *Handler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	ctx := r.Context()
	task, err := h.taskService.GetTaskByID(ctx, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, task)
}

func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := getIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	var req models.UpdateTaskRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !h.validateRequest(w, &req) {
		return
	}

	ctx := r.Context()
	task, err := h.taskService.UpdateTask(ctx, id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, task)
}

func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	ctx := r.Context()
	if err := h.taskService.DeleteTask(ctx, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Task deleted successfully",
	})
}

func (h *Handler) GetSubmissionsByTask(w http.ResponseWriter, r *http.Request) {
	id, err := getIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid task ID")
		return
	}

	page := getIntQueryParam(r, "page", 1)
	limit := getIntQueryParam(r, "limit", 20)

	ctx := r.Context()
	response, err := h.submissionService.GetSubmissionsByTask(ctx, id, page, limit)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeSuccess(w, response)
}
