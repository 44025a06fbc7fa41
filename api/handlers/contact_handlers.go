package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindmate/auth"
	"mindmate/dto"
	"mindmate/services"
)

// SubmitContactHandler godoc
// @Summary      Submit the contact form
// @Description  Open to anonymous callers; authenticated submissions are attributed to the account. Accepts "reason" as an alias for "category".
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ContactRequest  true  "submission"
// @Success      201   {object}  models.ContactMessage
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/contact [post]
func SubmitContactHandler(contactSvc *services.ContactService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request"})
			return
		}

		category := req.Category
		if category == "" {
			category = req.Reason
		}

		userID := ""
		if user := auth.CurrentUser(c); user != nil {
			userID = user.ID
		}

		contact, serr := contactSvc.SubmitContact(c.Request.Context(), services.SubmitContactInput{
			UserID:        userID,
			CorrelationID: req.SessionID,
			RemoteAddr:    c.ClientIP(),
			Name:          req.Name,
			Email:         req.Email,
			Category:      category,
			Message:       req.Message,
			Honeypot:      req.Company,
		})
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusCreated, contact)
	}
}
