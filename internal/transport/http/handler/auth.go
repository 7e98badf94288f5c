package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/gin-gonic/gin"
)

// accountUsecaser is the subset of AccountUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type accountUsecaser interface {
	Register(ctx context.Context, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	Logout(ctx context.Context)
}

type AuthHandler struct {
	accounts accountUsecaser
	logger   *slog.Logger
}

func NewAuthHandler(accounts accountUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		logger:   logger.With("component", "auth_handler"),
	}
}

type signupRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "errors": bindingErrors(err)})
		return
	}

	if err := h.accounts.Register(c.Request.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"status": false, "message": errDuplicateUser})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "signup", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": true, "message": "User created successfully"})
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": false, "errors": bindingErrors(err)})
		return
	}

	signed, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"status": false, "message": errBadCredentials})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": false, "message": "Error logging in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Login successful", "data": signed})
}

// POST /api/auth/logout
//
// Tokens are stateless, so there is nothing to invalidate server-side;
// the presented token stays valid until natural expiry. If real
// invalidation is ever required this is where a denylist would plug in.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.accounts.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": true, "message": "Logged out successfully"})
}
