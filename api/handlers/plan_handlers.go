package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindmate/dto"
	"mindmate/models"
	"mindmate/services"
)

// SaveProfileHandler godoc
// @Summary      Save the plan intake profile
// @Tags         plan
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.TherapyProfileRequest  true  "profile"
// @Success      200   {object}  models.TherapyProfile
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/profile [post]
func SaveProfileHandler(planSvc *services.PlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req dto.TherapyProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request"})
			return
		}

		profile, serr := planSvc.SaveProfile(c.Request.Context(), user, &models.TherapyProfile{
			MainConcern:         req.MainConcern,
			ConcernExtra:        req.ConcernExtra,
			Approach:            req.Approach,
			Goals:               req.Goals,
			MinutesPerDay:       req.MinutesPerDay,
			PrimaryGoals:        req.PrimaryGoals,
			PreferredApproaches: req.PreferredApproaches,
			FrequencyPreference: req.FrequencyPreference,
			FocusAreas:          req.FocusAreas,
		})
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// GetProfileHandler godoc
// @Summary      Get the plan intake profile
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  models.TherapyProfile
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profile [get]
func GetProfileHandler(planSvc *services.PlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		profile, serr := planSvc.GetProfile(c.Request.Context(), user)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// GeneratePlanHandler godoc
// @Summary      Generate a new weekly plan version
// @Description  Requires a stored intake profile. Rate limited.
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Success      201  {object}  models.TherapyPlan
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      429  {object}  dto.ErrorResponse
// @Router       /api/plan/generate [post]
func GeneratePlanHandler(planSvc *services.PlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req dto.CreateSessionRequest
		_ = c.ShouldBindJSON(&req)

		plan, serr := planSvc.GeneratePlan(c.Request.Context(), user, req.SessionID)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusCreated, plan)
	}
}

// LatestPlanHandler godoc
// @Summary      Get the newest plan version
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  models.TherapyPlan
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/plan [get]
func LatestPlanHandler(planSvc *services.PlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		plan, serr := planSvc.LatestPlan(c.Request.Context(), user)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, plan)
	}
}

// PlanHistoryHandler godoc
// @Summary      List every plan version
// @Tags         plan
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  dto.PlanHistoryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/plan/history [get]
func PlanHistoryHandler(planSvc *services.PlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		plans, serr := planSvc.PlanHistory(c.Request.Context(), user)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, dto.PlanHistoryResponse{Plans: plans})
	}
}

// CompletePlanDayHandler godoc
// @Summary      Mark a plan day complete or incomplete
// @Tags         plan
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.PlanCompleteRequest  true  "day"
// @Success      200   {object}  models.TherapyPlan
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/plan/complete [put]
func CompletePlanDayHandler(planSvc *services.PlanService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req dto.PlanCompleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request"})
			return
		}

		completed := true
		if req.Completed != nil {
			completed = *req.Completed
		}

		plan, serr := planSvc.CompletePlanDay(c.Request.Context(), user, req.PlanID, req.DayIndex, completed)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, plan)
	}
}
