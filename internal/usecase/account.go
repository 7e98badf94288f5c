package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/ErlanBelekov/task-api/internal/repository"
	"github.com/ErlanBelekov/task-api/internal/token"
	"golang.org/x/crypto/bcrypt"
)

// bcrypt.DefaultCost is 10, matching the cost the rest of the stack was
// provisioned for.
const passwordHashCost = bcrypt.DefaultCost

type AccountUsecase struct {
	users repository.UserRepository
	codec *token.Codec
}

func NewAccountUsecase(users repository.UserRepository, codec *token.Codec) *AccountUsecase {
	return &AccountUsecase{users: users, codec: codec}
}

// Register hashes the password and persists a new user. The plaintext is
// never stored or logged.
func (u *AccountUsecase) Register(ctx context.Context, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := u.users.Create(ctx, email, hash); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Login verifies the credentials and returns a signed token. Unknown
// email and wrong password are deliberately indistinguishable.
func (u *AccountUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", domain.ErrInvalidCredentials
	}

	signed, err := u.codec.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Logout is an acknowledgment only: tokens are stateless and there is no
// revocation list, so a logged-out token stays valid until it expires.
// Known limitation, not a bug.
func (u *AccountUsecase) Logout(_ context.Context) {}
