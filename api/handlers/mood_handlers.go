package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mindmate/dto"
	"mindmate/services"
)

// RecordMoodHandler godoc
// @Summary      Record today's mood check-in
// @Description  A second check-in on the same day replaces the first.
// @Tags         mood
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.MoodRequest  true  "check-in"
// @Success      201   {object}  models.MoodEntry
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/mood [post]
func RecordMoodHandler(moodSvc *services.MoodService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req dto.MoodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request"})
			return
		}

		entry, serr := moodSvc.RecordMood(c.Request.Context(), user, services.RecordMoodInput{
			MoodScore:     req.MoodScore,
			Tags:          req.Tags,
			Note:          req.Note,
			CorrelationID: req.SessionID,
		})
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

// ListMoodsHandler godoc
// @Summary      List mood entries
// @Description  range is 7d, 30d, or all; explicit start/end dates (YYYY-MM-DD) override it. tag filters by tag.
// @Tags         mood
// @Security     BearerAuth
// @Produce      json
// @Param        range  query     string  false  "7d, 30d or all"
// @Param        start  query     string  false  "start date"
// @Param        end    query     string  false  "end date"
// @Param        tag    query     string  false  "tag filter"
// @Success      200    {object}  dto.MoodListResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      401    {object}  dto.ErrorResponse
// @Router       /api/mood [get]
func ListMoodsHandler(moodSvc *services.MoodService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		in := services.ListMoodInput{
			Range: c.DefaultQuery("range", "all"),
			Tag:   c.Query("tag"),
		}
		if raw := c.Query("start"); raw != "" {
			start, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
			if err != nil {
				c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "start_date_invalid"})
				return
			}
			in.Start = &start
		}
		if raw := c.Query("end"); raw != "" {
			end, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
			if err != nil {
				c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "end_date_invalid"})
				return
			}
			in.End = &end
		}

		entries, serr := moodSvc.ListMoods(c.Request.Context(), user, in)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, dto.MoodListResponse{Entries: entries})
	}
}

// MoodSummaryHandler godoc
// @Summary      Mood statistics
// @Description  Count, average, min, max, consecutive-day streak, and week-over-week trend.
// @Tags         mood
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  services.MoodStats
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/mood/summary [get]
func MoodSummaryHandler(moodSvc *services.MoodService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		stats, serr := moodSvc.Summary(c.Request.Context(), user)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// DeleteMoodsHandler godoc
// @Summary      Delete every mood entry of the caller
// @Tags         mood
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/mood [delete]
func DeleteMoodsHandler(moodSvc *services.MoodService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		if _, serr := moodSvc.DeleteAll(c.Request.Context(), user); serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, dto.StatusResponse{Status: "deleted"})
	}
}
