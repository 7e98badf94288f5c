package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/task-api/internal/token"
	"github.com/gin-gonic/gin"
)

// Auth verifies the bearer token on every request and sets "userID" in
// the gin context. The client only ever sees the generic category below;
// the precise cause is logged server-side.
func Auth(codec *token.Codec, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "auth_middleware")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"status": false, "message": "No token, authorization denied"})
			return
		}

		_, rawToken, found := strings.Cut(header, " ")
		if !found || rawToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"status": false, "message": "Token format is invalid"})
			return
		}

		userID, err := codec.Verify(rawToken)
		if err != nil {
			ctx := c.Request.Context()
			switch {
			case errors.Is(err, token.ErrExpired):
				logger.WarnContext(ctx, "token expired", "error", err)
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					gin.H{"status": false, "message": "Token expired"})
			case errors.Is(err, token.ErrNotYetValid):
				logger.WarnContext(ctx, "token not active yet", "error", err)
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					gin.H{"status": false, "message": "Token not active yet"})
			case errors.Is(err, token.ErrMalformed), errors.Is(err, token.ErrBadSignature):
				logger.WarnContext(ctx, "invalid token", "error", err)
				c.AbortWithStatusJSON(http.StatusUnauthorized,
					gin.H{"status": false, "message": "Token is not valid"})
			default:
				logger.ErrorContext(ctx, "token verification", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"status": false, "message": "Server error"})
			}
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
