package repo

import (
	"context"
	"time"

	"github.com/learnlynk/followup-tasks/internal/model"
)

// TaskRepository covers the three task operations the system performs:
// the endpoint's insert and the dashboard's filtered read and status update.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	ListDueBetween(ctx context.Context, from, to time.Time) ([]model.Task, error)
	Complete(ctx context.Context, id string) error
}

// ApplicationRepository resolves the tenant owning an application.
type ApplicationRepository interface {
	GetTenantID(ctx context.Context, applicationID string) (string, error)
}
