package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mindmate/dto"
	"mindmate/services"
)

// ListExercisesHandler godoc
// @Summary      List the exercise catalog
// @Tags         exercises
// @Produce      json
// @Success      200  {array}  content.ExerciseSummary
// @Router       /api/exercises [get]
func ListExercisesHandler(exerciseSvc *services.ExerciseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, exerciseSvc.List())
	}
}

// GetExerciseHandler godoc
// @Summary      Get one exercise with its steps
// @Tags         exercises
// @Produce      json
// @Param        slug  path      string  true  "exercise slug"
// @Success      200   {object}  content.Exercise
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/exercises/{slug} [get]
func GetExerciseHandler(exerciseSvc *services.ExerciseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		exercise, serr := exerciseSvc.Get(c.Param("slug"))
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, exercise)
	}
}

// CompleteExerciseHandler godoc
// @Summary      Record a finished exercise
// @Tags         exercises
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.ExerciseCompleteRequest  true  "completion"
// @Success      201   {object}  models.ExerciseCompletion
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/exercises/complete [post]
func CompleteExerciseHandler(exerciseSvc *services.ExerciseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req dto.ExerciseCompleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request"})
			return
		}

		completion, serr := exerciseSvc.Complete(c.Request.Context(), user, req.Slug, req.SessionID)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusCreated, completion)
	}
}

// ExerciseProgressHandler godoc
// @Summary      List the caller's exercise completions
// @Tags         exercises
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   models.ExerciseCompletion
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/exercises/progress [get]
func ExerciseProgressHandler(exerciseSvc *services.ExerciseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		completions, serr := exerciseSvc.Progress(c.Request.Context(), user)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, completions)
	}
}

// GuidedStepHandler godoc
// @Summary      Get one guided exercise step
// @Description  Mode "ai" generates the step and falls back to the scripted catalog on any failure.
// @Tags         exercises
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.GuidedStepRequest  true  "step request"
// @Success      200   {object}  assistant.GuidedStep
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/exercises/guided [post]
func GuidedStepHandler(exerciseSvc *services.ExerciseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireUser(c); !ok {
			return
		}

		var req dto.GuidedStepRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid_request"})
			return
		}

		step, serr := exerciseSvc.GuidedStep(c.Request.Context(), req.Slug, req.StepIndex, req.Mode, req.Language)
		if serr != nil {
			writeServiceError(c, serr)
			return
		}
		c.JSON(http.StatusOK, step)
	}
}
