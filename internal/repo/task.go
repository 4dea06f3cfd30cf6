package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/learnlynk/followup-tasks/internal/model"
)

var ErrorNotFound = errors.New("not found")

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	t.ID = uuid.NewString()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, tenant_id, application_id, type, title, due_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, tenant_id, application_id, type, title, due_at, status, created_at
	`, t.ID, t.TenantID, t.ApplicationID, t.Type, t.Title, t.DueAt, t.Status).Scan(
		&t.ID, &t.TenantID, &t.ApplicationID, &t.Type, &t.Title, &t.DueAt, &t.Status, &t.CreatedAt,
	)
	return t, err
}

func (r *TaskRepo) ListDueBetween(ctx context.Context, from, to time.Time) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, tenant_id, application_id, type, title, due_at, status, created_at
		FROM tasks
		WHERE status <> $1 AND due_at >= $2 AND due_at <= $3
		ORDER BY due_at ASC
	`, model.StatusCompleted, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.TenantID, &t.ApplicationID, &t.Type, &t.Title, &t.DueAt, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Complete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `
		UPDATE tasks SET status = $2 WHERE id = $1
	`, id, model.StatusCompleted)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}
