package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/learnlynk/followup-tasks/internal/model"
	"github.com/learnlynk/followup-tasks/internal/repo"
)

// EventTaskCreated is broadcast on the system channel after each insert.
const EventTaskCreated = "task.created"

// Publisher is the send side of a broadcast channel.
type Publisher interface {
	Send(ctx context.Context, event string, payload any) error
}

// ValidationError carries the message shown to the caller with a 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

var (
	errMissingFields      = &ValidationError{msg: "Missing required fields: application_id, task_type, due_at"}
	errInvalidTaskType    = &ValidationError{msg: "Invalid task_type. Must be: " + strings.Join(model.TaskTypes, ", ")}
	errInvalidDueAt       = &ValidationError{msg: "Invalid due_at timestamp format"}
	errDueAtNotFuture     = &ValidationError{msg: "due_at must be a future timestamp"}
	errApplicationMissing = &ValidationError{msg: "Application not found"}
)

type TaskService struct {
	tasks  repo.TaskRepository
	apps   repo.ApplicationRepository
	system Publisher
	logger *zap.Logger
	now    func() time.Time
}

func NewTaskService(tasks repo.TaskRepository, apps repo.ApplicationRepository, system Publisher, logger *zap.Logger) *TaskService {
	return &TaskService{
		tasks:  tasks,
		apps:   apps,
		system: system,
		logger: logger,
		now:    time.Now,
	}
}

// Create runs the validation sequence, resolves the owning tenant, inserts
// the task and publishes task.created. The publish is detached: it never
// delays or fails the call.
func (s *TaskService) Create(ctx context.Context, req model.CreateTaskRequest) (model.Task, error) {
	if req.ApplicationID == "" || req.TaskType == "" || req.DueAt == "" {
		return model.Task{}, errMissingFields
	}
	if !model.ValidTaskType(req.TaskType) {
		return model.Task{}, errInvalidTaskType
	}

	dueAt, err := parseDueAt(req.DueAt)
	if err != nil {
		return model.Task{}, errInvalidDueAt
	}
	if !dueAt.After(s.now()) {
		return model.Task{}, errDueAtNotFuture
	}

	// A missing application and a failed lookup get the same answer. The
	// caller cannot tell them apart; operators can, from the log.
	tenantID, err := s.apps.GetTenantID(ctx, req.ApplicationID)
	if err != nil {
		if err != repo.ErrorNotFound {
			s.logger.Debug("application lookup failed", zap.String("application_id", req.ApplicationID), zap.Error(err))
		}
		return model.Task{}, errApplicationMissing
	}

	task, err := s.tasks.Create(ctx, model.Task{
		TenantID:      tenantID,
		ApplicationID: req.ApplicationID,
		Type:          req.TaskType,
		Title:         fmt.Sprintf("New %s task", req.TaskType),
		DueAt:         dueAt,
		Status:        model.StatusOpen,
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("insert task: %w", err)
	}

	go s.publishCreated(task)

	return task, nil
}

// parseDueAt accepts the ISO-8601 shapes callers actually send: a full
// RFC 3339 timestamp, a zoneless timestamp (taken as local time) and a bare
// date (taken as UTC midnight).
func parseDueAt(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// publishCreated runs outside the request path. Errors are discarded: the
// broadcast carries no delivery guarantee.
func (s *TaskService) publishCreated(task model.Task) {
	_ = s.system.Send(context.Background(), EventTaskCreated, model.TaskCreatedEvent{
		TaskID:        task.ID,
		ApplicationID: task.ApplicationID,
		Type:          task.Type,
	})
}
