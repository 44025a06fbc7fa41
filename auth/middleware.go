package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mindmate/models"
)

const contextUserKey = "auth_current_user"

// IdentityResolver turns a verified token subject into a user record,
// creating the record on first sight.
type IdentityResolver interface {
	Resolve(ctx context.Context, subject, email string) (*models.User, error)
}

// RequireAuth verifies the Bearer token and loads the current user into
// the request context. Requests without a valid token are rejected.
func RequireAuth(jm *JWTManager, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractBearerToken(c)
		if err != nil {
			AbortWithUnauthorized(c, err)
			return
		}

		subject, email, err := jm.Parse(token)
		if err != nil {
			AbortWithUnauthorized(c, errors.New("invalid_token"))
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), subject, email)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "identity_resolution_failed"})
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// OptionalAuth loads the current user when a valid token is present and
// lets the request through anonymously otherwise.
func OptionalAuth(jm *JWTManager, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractBearerToken(c)
		if err != nil {
			c.Next()
			return
		}

		subject, email, err := jm.Parse(token)
		if err != nil {
			c.Next()
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), subject, email)
		if err != nil {
			c.Next()
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth or
// OptionalAuth, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	value, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
