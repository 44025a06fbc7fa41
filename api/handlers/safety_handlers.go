package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mindmate/content"
	"mindmate/dto"
	"mindmate/safety"
)

// SafetyCheckHandler godoc
// @Summary      Classify a text for risk signals
// @Description  Deterministic keyword classification; no text is stored. Open to unauthenticated callers.
// @Tags         safety
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SafetyCheckRequest  true  "text"
// @Success      200   {object}  safety.Assessment
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/safety/check [post]
func SafetyCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.SafetyCheckRequest
		if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "text_required"})
			return
		}
		c.JSON(http.StatusOK, safety.Classify(req.Text))
	}
}

// CrisisResourcesHandler godoc
// @Summary      List crisis helplines for a country
// @Description  Unknown countries fall back to the international directory.
// @Tags         safety
// @Produce      json
// @Param        country  query     string  false  "country code"  default(US)
// @Success      200      {object}  content.CrisisDirectory
// @Router       /api/crisis-resources [get]
func CrisisResourcesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		country := c.DefaultQuery("country", "US")
		c.JSON(http.StatusOK, content.CrisisResourcesFor(country))
	}
}

// GeoCountryHandler godoc
// @Summary      Resolve the caller's country
// @Description  Placeholder: always returns null, clients fall back to their own locale.
// @Tags         safety
// @Produce      json
// @Success      200  {object}  dto.GeoCountryResponse
// @Router       /api/geo-country [get]
func GeoCountryHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.GeoCountryResponse{Country: nil})
	}
}
