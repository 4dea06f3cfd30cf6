package model

import "time"

// Task types accepted by the create endpoint.
const (
	TypeCall   = "call"
	TypeEmail  = "email"
	TypeReview = "review"
)

const (
	StatusOpen      = "open"
	StatusCompleted = "completed"
)

// TaskTypes lists the valid types in the order they are reported to callers.
var TaskTypes = []string{TypeCall, TypeEmail, TypeReview}

func ValidTaskType(t string) bool {
	for _, v := range TaskTypes {
		if t == v {
			return true
		}
	}
	return false
}

type Task struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	ApplicationID string    `json:"application_id"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	DueAt         time.Time `json:"due_at"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Application is an admissions record that tasks attach to. This service
// only ever reads it.
type Application struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateTaskRequest is the wire shape of the create-task function body.
// due_at stays a string here; parsing is part of the validation sequence.
type CreateTaskRequest struct {
	ApplicationID string `json:"application_id"`
	TaskType      string `json:"task_type"`
	DueAt         string `json:"due_at"`
}

// TaskCreatedEvent is the broadcast payload published after a successful insert.
type TaskCreatedEvent struct {
	TaskID        string `json:"task_id"`
	ApplicationID string `json:"application_id"`
	Type          string `json:"type"`
}
