package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coursework_tracker/internal/api"
	"coursework_tracker/internal/app/outbox"
	"coursework_tracker/internal/app/service"
	"coursework_tracker/internal/app/worker"
	"coursework_tracker/internal/common/security"
	"coursework_tracker/internal/domain/repository"
	"coursework_tracker/internal/logger"
	"coursework_tracker/internal/platform/config"
	"coursework_tracker/internal/platform/database"
	"coursework_tracker/internal/platform/queue"
	"coursework_tracker/internal/platform/storage"

	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration and logging
	cfg := config.Load()
	logger.Configure(cfg.LogDir, cfg.LogLevel)
	defer logger.Sync()
	log := logger.NewNamedLogger("server")
	log.Info("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT(cfg.JWTKey, cfg.JWTExp)

	// 3. Open the document backend and load the record document
	backend, err := openBackend(cfg)
	if err != nil {
		log.Fatalf("Could not open %s store: %v", cfg.StoreBackend, err)
	}
	store := repository.NewDurableStore(backend)
	defer store.Close()
	defer database.Close()

	doc, outcome, err := store.Load(context.Background())
	if err != nil {
		log.Fatalf("Could not load stored document: %v", err)
	}
	log.Infof("Document %s (backend=%s, users=%d, assignments=%d, submissions=%d)",
		outcome, cfg.StoreBackend, len(doc.Users), len(doc.Assignments), len(doc.Submissions))
	records := repository.NewRecords(doc, store)

	// 4. Initialize file storage
	fixtures, err := storage.NewFixtureStore(cfg.TasksDir)
	if err != nil {
		log.Fatalf("Could not prepare tasks directory: %v", err)
	}
	artifacts, err := storage.NewArtifactStore(cfg.SubmissionsDir)
	if err != nil {
		log.Fatalf("Could not prepare submissions directory: %v", err)
	}

	// 5. Runner notification outbox
	box := outbox.New(cfg.OutboxSize)
	dispatcher, err := newDispatcher(cfg, log)
	if err != nil {
		log.Fatalf("Could not set up %s runner transport: %v", cfg.RunnerTransport, err)
	}
	defer queue.CloseRedis()
	defer queue.CloseAMQP()

	// 6. Initialize Services
	languageService := service.NewLanguageService()
	assignmentService := service.NewAssignmentService(records, fixtures, languageService)
	submissionService := service.NewSubmissionService(records, artifacts, box)
	services := api.Services{
		Auth:        service.NewAuthService(records),
		Assignments: assignmentService,
		Submissions: submissionService,
		Webhook:     service.NewWebhookService(records),
		Query:       service.NewQueryService(assignmentService, submissionService),
		Languages:   languageService,
	}

	// 7. Start the notification worker
	notificationWorker := worker.NewNotificationWorker(box, dispatcher, cfg.RunnerTimeout)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	workerDone := make(chan struct{})
	go func() {
		notificationWorker.Start(workerCtx)
		close(workerDone)
	}()
	log.Infof("Notification worker started (transport=%s).", cfg.RunnerTransport)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(services, api.RouterOptions{
		MaxUploadBytes: cfg.MaxUploadBytes,
		RunnerSecret:   cfg.RunnerSecret,
	})
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infof("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Could not listen on %s: %v", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}
	workerCancel()
	select {
	case <-workerDone:
	case <-shutdownCtx.Done():
		log.Warn("Notification worker did not stop in time")
	}
	if n := box.Len(); n > 0 {
		log.Warnf("%d runner notifications were still queued at shutdown", n)
	}
	if err := records.Flush(shutdownCtx); err != nil {
		log.Errorf("Final flush failed: %v", err)
	}

	log.Info("Server and worker stopped gracefully.")
}

func openBackend(cfg *config.Config) (repository.Backend, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendFile:
		return repository.NewFileBackend(cfg.StoreFile)
	case config.StoreBackendBolt:
		return repository.NewBoltBackend(cfg.BoltFile, cfg.DocumentName)
	case config.StoreBackendPostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := database.Connect(ctx, cfg.DBConnStr); err != nil {
			return nil, err
		}
		return repository.NewPgBackend(ctx, database.DB, cfg.DocumentName)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func newDispatcher(cfg *config.Config, log *zap.SugaredLogger) (outbox.Dispatcher, error) {
	switch cfg.RunnerTransport {
	case config.RunnerTransportHTTP:
		return outbox.NewHTTPDispatcher(cfg.RunnerURL, cfg.RunnerTimeout), nil
	case config.RunnerTransportRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := queue.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
			return nil, err
		}
		return outbox.NewRedisDispatcher(queue.RDB, cfg.RunnerQueueName), nil
	case config.RunnerTransportAMQP:
		if err := queue.ConnectAMQP(cfg.AMQPURL, cfg.RunnerQueueName); err != nil {
			return nil, err
		}
		return outbox.NewAMQPDispatcher(queue.AMQPChannel, cfg.RunnerQueueName), nil
	case config.RunnerTransportNone:
		return outbox.NewLogDispatcher(log.Named("runner")), nil
	default:
		return nil, fmt.Errorf("unknown runner transport %q", cfg.RunnerTransport)
	}
}
