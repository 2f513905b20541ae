package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wellcoach/patterns-api/internal/apierror"
	"github.com/wellcoach/patterns-api/internal/logger"
	"github.com/wellcoach/patterns-api/pkg/supabase"
)

// DevUserHeader names the user in local development when no Supabase project is configured
const DevUserHeader = "X-User-ID"

// TokenVerifier resolves a bearer token to a user. *supabase.Client implements it.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*supabase.User, error)
}

// Auth middleware to verify JWT tokens
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Ctx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Debug("authentication failed: missing authorization header")
			apierror.AbortWithProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			log.Debug("authentication failed: invalid authorization format")
			apierror.AbortWithProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			return
		}

		user, err := verifier.VerifyToken(c.Request.Context(), parts[1])
		if err != nil {
			log.Warn("authentication failed: token verification error", logger.Err(err))
			apierror.AbortWithProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			return
		}

		setUser(c, user.ID)

		log.Debug("authentication successful", logger.String("user_id", user.ID))

		c.Next()
	}
}

// HeaderAuth trusts the X-User-ID header. Only for local development.
func HeaderAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(DevUserHeader))
		if userID == "" {
			apierror.AbortWithProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			return
		}

		setUser(c, userID)
		c.Next()
	}
}

// setUser stores the user in the gin context and the request context for logging
func setUser(c *gin.Context, userID string) {
	c.Set("user_id", userID)
	ctx := logger.WithUserID(c.Request.Context(), userID)
	c.Request = c.Request.WithContext(ctx)
}
