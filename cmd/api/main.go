package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"

	"mindmate/api/router"
	"mindmate/assistant"
	"mindmate/auth"
	"mindmate/config"
	"mindmate/db"
	"mindmate/logger"
	"mindmate/ratelimit"
	"mindmate/repositories"
	"mindmate/services"
)

// @title           MindMate API
// @version         1.0
// @description     Conversational support service with risk-aware response selection, mood tracking, and wellness planning.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx := context.Background()
	if err := db.Init(ctx); err != nil {
		logger.Log.Errorf("mongo init failed: %v", err)
		os.Exit(1)
	}

	backend := buildBackend(ctx, cfg)

	jwtManager, err := auth.NewJWTManagerFromEnv()
	if err != nil {
		logger.Log.Errorf("jwt init failed: %v", err)
		os.Exit(1)
	}

	database := db.Database()
	users := repositories.NewUserRepository(database)
	sessions := repositories.NewSessionRepository(database)
	messages := repositories.NewMessageRepository(database)
	turns := repositories.NewTurnRepository(db.Client(), database)
	moods := repositories.NewMoodRepository(database)
	profiles := repositories.NewProfileRepository(database)
	plans := repositories.NewPlanRepository(database)
	contacts := repositories.NewContactRepository(database)
	completions := repositories.NewCompletionRepository(database)

	limiter := buildLimiter(cfg.RateLimits)

	var generator services.Generator
	if backend != nil {
		generator = backend
	}

	userSvc := services.NewUserService(users, sessions, moods)

	deps := router.Deps{
		JWT:              jwtManager,
		Resolver:         userSvc,
		Chat:             services.NewChatService(sessions, messages, turns, generator, limiter),
		Exercise:         services.NewExerciseService(completions, generator),
		Plan:             services.NewPlanService(profiles, plans, limiter),
		Mood:             services.NewMoodService(moods),
		Contact:          services.NewContactService(contacts, limiter),
		User:             userSvc,
		Data:             services.NewDataService(users, sessions, messages, turns, moods, profiles, plans, contacts, completions),
		BackendAvailable: backend != nil,
	}

	handler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router.New(deps))

	addr := cfg.Server.Addr
	if addr == "" {
		addr = ":9090"
	}
	logger.InfoWithFields("server starting", logger.Fields{"addr": addr, "backend": backend != nil})

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}

// buildBackend constructs the generative backend when GEMINI_API_KEY is
// set. A missing key is not an error; the chat pipeline serves scripted
// fallbacks instead.
func buildBackend(ctx context.Context, cfg config.AppConfig) *assistant.Backend {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		logger.Log.Warn("GEMINI_API_KEY not set, generative replies disabled")
		return nil
	}

	backend, err := assistant.New(ctx, assistant.Config{
		APIKey:  apiKey,
		Model:   cfg.Gemini.Model,
		Timeout: time.Duration(cfg.Gemini.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		logger.Log.Warnf("backend init failed, generative replies disabled: %v", err)
		return nil
	}
	return backend
}

func buildLimiter(cfg config.RateLimitsConfig) *ratelimit.Limiter {
	chatPerMinute := cfg.ChatPerMinute
	if chatPerMinute <= 0 {
		chatPerMinute = 20
	}
	contactPerHour := cfg.ContactPerHour
	if contactPerHour <= 0 {
		contactPerHour = 5
	}
	planPerHour := cfg.PlanPerHour
	if planPerHour <= 0 {
		planPerHour = 3
	}
	keyTTL := time.Duration(cfg.WindowTTLSeconds) * time.Second

	return ratelimit.New(ratelimit.NewMemoryStore(), map[string]ratelimit.Config{
		ratelimit.ActionChatMessage:  {Window: time.Minute, MaxEvents: chatPerMinute},
		ratelimit.ActionContact:      {Window: time.Hour, MaxEvents: contactPerHour},
		ratelimit.ActionPlanGenerate: {Window: time.Hour, MaxEvents: planPerHour},
	}, keyTTL)
}
