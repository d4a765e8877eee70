// File: tablebooker/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablebooker/config"
	"tablebooker/cron"
	"tablebooker/database"
	catalogRepo "tablebooker/database/repository/catalog"
	"tablebooker/handlers"
	"tablebooker/middleware"
	"tablebooker/routes"
	"tablebooker/services/agent"
	"tablebooker/services/ai"
	"tablebooker/services/resdiary"
	"tablebooker/services/session"
	"tablebooker/services/tasks"
	"tablebooker/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Repositories.
	catalog := catalogRepo.NewMongoCatalogRepo()

	// Completion backend: Gemini when a key is configured, otherwise the
	// local Ollama instance. The agent degrades to deterministic replies
	// when neither is reachable.
	var backend ai.CompletionBackend
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Sugar().Warnf("main: gemini unavailable, falling back to ollama: %v", err)
		} else {
			backend = gemini
		}
	}
	if backend == nil {
		backend = ai.NewOllamaClient(config.AppConfig.OllamaBaseURL, config.AppConfig.OllamaModel, logger)
	}

	// Services.
	bookingAPI := resdiary.NewHTTPClient(logger)
	sessionStore := session.NewRedisStore(utils.GetSessionCacheClient(), config.SessionTTL())

	// Pre-visit booking reminders run on the Redis-backed task queue.
	reminderQueue := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}
	reminders := tasks.NewAsynqScheduler(reminderQueue, logger)
	defer reminders.Close()
	cron.InitReminderWorker(bookingAPI, logger)

	dispatcher := &agent.Dispatcher{
		API:       bookingAPI,
		Catalog:   catalog,
		Reminders: reminders,
		Logger:    logger,
	}
	extractor := &agent.ChainExtractor{
		Primary:  &agent.LLMExtractor{Backend: backend, Logger: logger},
		Fallback: &agent.RuleExtractor{Catalog: catalog},
	}
	agentSvc := &agent.Service{
		Store:      sessionStore,
		Extractor:  extractor,
		Dispatcher: dispatcher,
		Catalog:    catalog,
		Backend:    backend,
		Policy:     agent.KeywordClarifyPolicy{},
		Logger:     logger,
	}

	// Handlers.
	handlerBundle := &routes.HandlerBundle{
		Chat:       handlers.NewChatHandler(agentSvc, logger),
		Restaurant: handlers.NewRestaurantHandler(catalog),
		Health:     handlers.NewHealthHandler(database.MongoClient, utils.GetCacheClient(), backend),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
