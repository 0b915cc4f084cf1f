package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/app/chat"
	appNotification "github.com/safenest/trustpipe/pkg/app/notification"
	"github.com/safenest/trustpipe/pkg/app/pipeline"
	appTrust "github.com/safenest/trustpipe/pkg/app/trust"
	"github.com/safenest/trustpipe/pkg/config"
	handlers "github.com/safenest/trustpipe/pkg/handlers/http"
	"github.com/safenest/trustpipe/pkg/infra/audit"
	"github.com/safenest/trustpipe/pkg/infra/auth/jwt"
	infraCache "github.com/safenest/trustpipe/pkg/infra/cache"
	"github.com/safenest/trustpipe/pkg/infra/database"
	infraLogger "github.com/safenest/trustpipe/pkg/infra/logger"
	"github.com/safenest/trustpipe/pkg/infra/mailer"
	"github.com/safenest/trustpipe/pkg/infra/metrics"
	_ "github.com/safenest/trustpipe/pkg/infra/migrations"
	"github.com/safenest/trustpipe/pkg/infra/providers/factory"
	"github.com/safenest/trustpipe/pkg/infra/repository"
	"github.com/safenest/trustpipe/pkg/middleware"
	"github.com/safenest/trustpipe/pkg/moderation/classifier"
	"github.com/safenest/trustpipe/pkg/moderation/detector"
	"github.com/safenest/trustpipe/pkg/moderation/patternfilter"
	"github.com/safenest/trustpipe/pkg/server"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger("moderation")

	if err := config.Load("./config"); err != nil {
		logger.Warnf("config file not loaded: %v", err)
	}
	cfg := config.GetConfig()

	metrics.Initialize()

	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	cacheInstance, err := infraCache.NewCache(cfg.Redis)
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}

	// repository
	eventRepository := repository.NewModerationEventRepository(db.DB)
	trustRepository := repository.NewTrustProfileRepository(db.DB)
	notificationRepository := repository.NewNotificationRepository(db.DB)
	messageRepository := repository.NewMessageRepository(db.DB)

	// classifier provider
	providerLocator := factory.NewProviderLocator()
	providerClient, err := providerLocator.Get(cfg.Classifier.Provider)
	if err != nil {
		logger.Fatalf("Failed to resolve classifier provider: %v", err)
	}
	semanticClassifier := classifier.NewClassifier(logger, cfg.Classifier.Provider, providerClient, cfg.Classifier)

	// moderation pipeline
	filter := patternfilter.NewFilter()
	behaviorDetector := detector.NewDetector(logger, eventRepository, cfg.Moderation)
	gate := appTrust.NewGate(logger, trustRepository, cacheInstance)
	ledger := appTrust.NewLedger(logger, trustRepository, eventRepository, notificationRepository, cacheInstance, cfg.Moderation)

	exporter := buildAuditExporter(cfg, logger)
	defer exporter.Close()

	evaluator := pipeline.NewEvaluator(
		logger, gate, filter, semanticClassifier, behaviorDetector, ledger, cacheInstance, exporter, cfg.Moderation,
	)

	coordinator := chat.NewCoordinator(logger, messageRepository, evaluator, gate, cacheInstance, cfg.Moderation)

	// notification delivery
	relayMailer := mailer.NewHTTPMailer(&http.Client{Timeout: 15 * time.Second}, cfg.Notifications)
	dispatcher := appNotification.NewDispatcher(logger, notificationRepository, relayMailer, cfg.Notifications.DispatchInterval)
	notificationQueue := appNotification.NewQueue(notificationRepository)

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	go dispatcher.Start(dispatcherCtx)

	// middleware
	jwtManager := jwt.NewJwtManager(&cfg.Auth)
	middlewareTransport := middleware.Transport{
		AdminAuthMiddleware:    middleware.NewAdminAuthMiddleware(logger, jwtManager, jwt.RoleAdmin, jwt.RoleTutor),
		PanicRecoverMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		MetricsMiddleware:      middleware.NewMetricsMiddleware(),
	}

	handlerTransport := handlers.HandlerTransport{
		EvaluateHandler:            handlers.NewEvaluateHandler(handlers.EvaluateHandlerDeps{Logger: logger, Evaluator: evaluator}),
		EvaluateImageHandler:       handlers.NewEvaluateImageHandler(handlers.EvaluateImageHandlerDeps{Logger: logger, Evaluator: evaluator}),
		SendMessageHandler:         handlers.NewSendMessageHandler(handlers.SendMessageHandlerDeps{Logger: logger, Coordinator: coordinator}),
		ListEventsHandler:          handlers.NewListEventsHandler(handlers.ListEventsHandlerDeps{Logger: logger, Repo: eventRepository}),
		SuspendUserHandler:         handlers.NewSuspendUserHandler(handlers.SuspendUserHandlerDeps{Logger: logger, Ledger: ledger}),
		LiftSuspensionHandler:      handlers.NewLiftSuspensionHandler(handlers.LiftSuspensionHandlerDeps{Logger: logger, Ledger: ledger}),
		ListNotificationsHandler:   handlers.NewListNotificationsHandler(handlers.ListNotificationsHandlerDeps{Logger: logger, Queue: notificationQueue}),
		DismissNotificationHandler: handlers.NewDismissNotificationHandler(handlers.DismissNotificationHandlerDeps{Logger: logger, Queue: notificationQueue}),
	}

	srv := server.NewApiServer(server.ApiServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")
	stopDispatcher()

	drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := coordinator.Drain(drainCtx); err != nil {
		logger.WithError(err).Warn("timed out waiting for in-flight verifications")
	}

	if err := srv.Shutdown(); err != nil {
		logger.WithError(err).Error("error shutting down server")
		os.Exit(1)
	}
	logger.Info("server gracefully stopped")
}

func buildAuditExporter(cfg *config.Config, logger *logrus.Logger) audit.Exporter {
	if !cfg.Audit.Enabled {
		return audit.NewNoopExporter()
	}
	settings := map[string]interface{}{
		"host":  cfg.Audit.Host,
		"port":  cfg.Audit.Port,
		"topic": cfg.Audit.Topic,
	}
	if err := audit.ValidateConfig(settings); err != nil {
		logger.Fatalf("Invalid audit exporter config: %v", err)
	}
	exporter, err := audit.NewKafkaExporter(audit.Config{
		Host:  cfg.Audit.Host,
		Port:  cfg.Audit.Port,
		Topic: cfg.Audit.Topic,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize audit exporter: %v", err)
	}
	return exporter
}
