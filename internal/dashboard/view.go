package dashboard

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/learnlynk/followup-tasks/internal/model"
	"github.com/learnlynk/followup-tasks/internal/repo"
)

// TodayView holds the per-session state of the today page: the task list,
// the in-flight flag and the two failure surfaces (page-level error for
// loads, blocking alert for completes).
type TodayView struct {
	tasks  repo.TaskRepository
	logger *zap.Logger
	now    func() time.Time

	list    []model.Task
	loading bool
	loadErr string
	alert   string
}

func NewTodayView(tasks repo.TaskRepository, logger *zap.Logger) *TodayView {
	return &TodayView{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// Load replaces the list with the tasks due today and not completed,
// soonest first. On failure the list is left empty and Err is set.
func (v *TodayView) Load(ctx context.Context) {
	v.loading = true
	v.loadErr = ""
	defer func() { v.loading = false }()

	from, to := DayBounds(v.now())
	tasks, err := v.tasks.ListDueBetween(ctx, from, to)
	if err != nil {
		v.logger.Error("failed to load today's tasks", zap.Error(err))
		v.list = nil
		v.loadErr = "Failed to load tasks"
		return
	}
	v.list = tasks
}

// Complete marks one task completed. On success the task is removed from
// the local list without another query; on failure the list is untouched
// and Alert is set. The alert is transient: any later attempt resets it.
func (v *TodayView) Complete(ctx context.Context, id string) {
	v.alert = ""
	if err := v.tasks.Complete(ctx, id); err != nil {
		v.logger.Error("failed to complete task", zap.String("task_id", id), zap.Error(err))
		v.alert = "Failed to update task"
		return
	}

	remaining := make([]model.Task, 0, len(v.list))
	for _, t := range v.list {
		if t.ID != id {
			remaining = append(remaining, t)
		}
	}
	v.list = remaining
}

func (v *TodayView) Tasks() []model.Task { return v.list }

func (v *TodayView) Loading() bool { return v.loading }

// Err is the page-level load error, empty when the last load succeeded.
func (v *TodayView) Err() string { return v.loadErr }

// Alert is the pending complete-failure message, empty when there is none.
func (v *TodayView) Alert() string { return v.alert }

func (v *TodayView) ClearAlert() { v.alert = "" }
