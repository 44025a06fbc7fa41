package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindmate/dto"
	"mindmate/repositories"
	"mindmate/services"
)

// GetUserProfileHandler godoc
// @Summary      Get the account profile
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/user/profile [get]
func GetUserProfileHandler(userSvc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		profile, serr := userSvc.GetProfile(c.Request.Context(), user)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// UpdateUserProfileHandler godoc
// @Summary      Update the account profile
// @Description  Omitted fields are left untouched.
// @Tags         user
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.UserProfileRequest  true  "profile"
// @Success      200   {object}  models.User
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/user/profile [put]
func UpdateUserProfileHandler(userSvc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req dto.UserProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request"})
			return
		}

		profile, serr := userSvc.UpdateProfile(c.Request.Context(), user, repositories.ProfileUpdate{
			DisplayName:        req.DisplayName,
			PreferredLanguage:  req.PreferredLanguage,
			TherapyPreferences: req.TherapyPreferences,
			NotificationPrefs:  req.NotificationPrefs,
		})
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// AttachSessionHandler godoc
// @Summary      Claim anonymous data for the account
// @Description  Reassigns rows recorded under an anonymous correlation id to the caller.
// @Tags         user
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.AttachSessionRequest  true  "correlation id"
// @Success      200   {object}  services.AttachSessionResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/user/attach-session [post]
func AttachSessionHandler(userSvc *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req dto.AttachSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request"})
			return
		}

		result, serr := userSvc.AttachSession(c.Request.Context(), user, req.SessionID)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// ExportDataHandler godoc
// @Summary      Export every stored record of the caller
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  services.UserExport
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/export [get]
func ExportDataHandler(dataSvc *services.DataService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		export, serr := dataSvc.Export(c.Request.Context(), user)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, export)
	}
}

// DeleteDataHandler godoc
// @Summary      Erase every stored record of the caller
// @Description  Chat messages are cascaded before their sessions; the user document goes last.
// @Tags         user
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  services.DeletedCounts
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/data [delete]
func DeleteDataHandler(dataSvc *services.DataService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		counts, serr := dataSvc.DeleteAll(c.Request.Context(), user)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, counts)
	}
}
