package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"mindmate/api/handlers"
	"mindmate/api/middleware"
	"mindmate/auth"
	"mindmate/db"
	_ "mindmate/docs"
	"mindmate/services"
)

// Deps carries the constructed services and auth plumbing into the
// route table.
type Deps struct {
	JWT      *auth.JWTManager
	Resolver auth.IdentityResolver

	Chat     *services.ChatService
	Exercise *services.ExerciseService
	Plan     *services.PlanService
	Mood     *services.MoodService
	Contact  *services.ContactService
	User     *services.UserService
	Data     *services.DataService

	// BackendAvailable reports whether the generative backend handle
	// was constructed at startup.
	BackendAvailable bool
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogging(), gin.Recovery())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		backend := "unavailable"
		if deps.BackendAvailable {
			backend = "ok"
		}
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "backend": backend})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mongo": "ok", "backend": backend})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authed := auth.RequireAuth(deps.JWT, deps.Resolver)
	api := r.Group("/api")
	{
		chat := api.Group("/chat", authed)
		{
			chat.POST("/message", handlers.SendMessageHandler(deps.Chat))
			chat.POST("/session", handlers.CreateSessionHandler(deps.Chat))
			chat.GET("/sessions", handlers.ListSessionsHandler(deps.Chat))
			chat.DELETE("/sessions", handlers.DeleteAllSessionsHandler(deps.Chat))
			chat.GET("/session/:id", handlers.GetSessionHandler(deps.Chat))
			chat.DELETE("/session/:id", handlers.DeleteSessionHandler(deps.Chat))
			chat.PUT("/session/:id/title", handlers.RenameSessionHandler(deps.Chat))
			chat.GET("/session/:id/export", handlers.ExportSessionHandler(deps.Chat))
		}

		api.POST("/safety/check", handlers.SafetyCheckHandler())
		api.GET("/crisis-resources", handlers.CrisisResourcesHandler())
		api.GET("/geo-country", handlers.GeoCountryHandler())

		exercises := api.Group("/exercises")
		{
			exercises.GET("", handlers.ListExercisesHandler(deps.Exercise))
			exercises.GET("/:slug", handlers.GetExerciseHandler(deps.Exercise))
			exercises.POST("/complete", authed, handlers.CompleteExerciseHandler(deps.Exercise))
			exercises.GET("/progress", authed, handlers.ExerciseProgressHandler(deps.Exercise))
			exercises.POST("/guided", authed, handlers.GuidedStepHandler(deps.Exercise))
		}

		api.GET("/profile", authed, handlers.GetProfileHandler(deps.Plan))
		api.POST("/profile", authed, handlers.SaveProfileHandler(deps.Plan))
		api.POST("/plan/generate", authed, handlers.GeneratePlanHandler(deps.Plan))
		api.GET("/plan", authed, handlers.LatestPlanHandler(deps.Plan))
		api.GET("/plan/history", authed, handlers.PlanHistoryHandler(deps.Plan))
		api.PUT("/plan/complete", authed, handlers.CompletePlanDayHandler(deps.Plan))

		mood := api.Group("/mood", authed)
		{
			mood.POST("", handlers.RecordMoodHandler(deps.Mood))
			mood.POST("/today", handlers.RecordMoodHandler(deps.Mood))
			mood.PUT("/today", handlers.RecordMoodHandler(deps.Mood))
			mood.GET("", handlers.ListMoodsHandler(deps.Mood))
			mood.GET("/summary", handlers.MoodSummaryHandler(deps.Mood))
			mood.DELETE("", handlers.DeleteMoodsHandler(deps.Mood))
		}

		api.POST("/contact", auth.OptionalAuth(deps.JWT, deps.Resolver), handlers.SubmitContactHandler(deps.Contact))

		user := api.Group("/user", authed)
		{
			user.GET("/profile", handlers.GetUserProfileHandler(deps.User))
			user.PUT("/profile", handlers.UpdateUserProfileHandler(deps.User))
			user.POST("/attach-session", handlers.AttachSessionHandler(deps.User))
		}

		api.GET("/export", authed, handlers.ExportDataHandler(deps.Data))
		api.DELETE("/data", authed, handlers.DeleteDataHandler(deps.Data))
	}

	return r
}
