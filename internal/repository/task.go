package repository

import (
	"context"
	"time"

	"github.com/ErlanBelekov/task-api/internal/domain"
)

// UpdateTaskInput carries a partial update: nil fields leave the stored
// value untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
}

// UseCase depends on interface, not concrete implementation.
// This way we get: 1) can swap DB later without touching usecase 2) We can pass a mock implementation of interface in tests
//
// Every read and write is scoped by (taskID, userID) in a single query, so
// a task owned by someone else is indistinguishable from a missing one.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	GetByID(ctx context.Context, taskID, userID string) (*domain.Task, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Task, error)
	Update(ctx context.Context, taskID, userID string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, taskID, userID string) error
}
