package repository

import (
	"context"

	"github.com/ErlanBelekov/task-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, email string, passwordHash []byte) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
