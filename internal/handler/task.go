package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/learnlynk/followup-tasks/internal/model"
	"github.com/learnlynk/followup-tasks/internal/service"
	"github.com/learnlynk/followup-tasks/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

// CreateTask is the create-task function. It is registered for every method
// and gates on POST itself so the 405 carries the JSON error body.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respond.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req model.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// A body that is not JSON at all is an unexpected failure, not a
		// validation one.
		h.logger.Error("failed to decode request body", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	task, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.handleErrors(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"task_id": task.ID,
	})
}

func (h *TaskHandler) handleErrors(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		respond.Error(w, http.StatusBadRequest, vErr.Error())
	default:
		// Insert failures. The raw error stays in the log.
		h.logger.Error("failed to create task", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "Failed to create task")
	}
}
