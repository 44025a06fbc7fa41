// Package handlers contains the gin HTTP handlers. Handlers bind and
// validate request bodies, call a service, and serialize either the
// result or the service error.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"mindmate/auth"
	"mindmate/dto"
	"mindmate/logger"
	"mindmate/models"
	"mindmate/services"
)

// writeServiceError maps a service error onto the HTTP response. Causes
// are logged server-side and never leak into the body.
func writeServiceError(c *gin.Context, serr *services.Error) {
	if serr.Cause != nil {
		logger.ErrorWithFields("request failed", logger.Fields{
			"path":   c.FullPath(),
			"code":   serr.ErrorCode,
			"status": serr.StatusCode,
			"error":  serr.Cause.Error(),
		})
	}

	body := dto.ErrorResponse{Error: serr.ErrorCode}
	if serr.RetryAfter > 0 {
		seconds := int(serr.RetryAfter.Seconds()) + 1
		body.RetryAfterSeconds = seconds
		c.Header("Retry-After", strconv.Itoa(seconds))
	}
	c.JSON(serr.StatusCode, body)
}

// requireUser returns the authenticated user or aborts with 401. The
// auth middleware normally guarantees presence; this guards direct use.
func requireUser(c *gin.Context) (*models.User, bool) {
	user := auth.CurrentUser(c)
	if user == nil {
		auth.AbortWithUnauthorized(c, auth.ErrMissingHeader)
		return nil, false
	}
	return user, true
}
