package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")

type Task struct {
	ID          string
	UserID      string // owner, immutable after creation
	Title       string
	Description *string    // nil means no description
	DueDate     *time.Time // nil means no due date
	Completed   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
