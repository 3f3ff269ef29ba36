package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/brunomarqs/studycash/internal/auth"
	"github.com/brunomarqs/studycash/internal/config"
	"github.com/brunomarqs/studycash/internal/delivery/httpd"
	"github.com/brunomarqs/studycash/internal/repository"
	"github.com/brunomarqs/studycash/internal/service"
	"github.com/brunomarqs/studycash/internal/service/integration"
)

type App struct {
	server       *http.Server
	logger       zerolog.Logger
	config       *config.Config
	db           *sql.DB
	eventsClient integration.EventsClient
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	eventsClient, err := integration.NewEventsClient(
		cfg.RabbitMQ.URL,
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.CreatedRoutingKey,
		cfg.RabbitMQ.CorrectedRoutingKey,
		log,
	)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create RabbitMQ client")
		// The service runs without the broker; submission events are skipped.
		eventsClient = nil
	}

	tokens := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.TokenTTL, nil)

	professorRepo := repository.NewProfessorRepository(db, log)
	studentRepo := repository.NewStudentRepository(db, log)
	taskRepo := repository.NewTaskRepository(db, log)
	submissionRepo := repository.NewSubmissionRepository(db, log)

	authService := service.NewAuthService(professorRepo, studentRepo, tokens, cfg.Auth.ProfessorAccessCode, log)
	studentService := service.NewStudentService(studentRepo, log)
	taskService := service.NewTaskService(taskRepo, log)
	submissionService := service.NewSubmissionService(
		submissionRepo,
		studentRepo,
		taskRepo,
		eventsClient,
		log,
	)

	handler := httpd.NewHandler(
		authService,
		studentService,
		taskService,
		submissionService,
		tokens,
		cfg.Auth.CookieName,
		cfg.Auth.CookieSecure,
		log,
	)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:       server,
		logger:       log,
		config:       cfg,
		db:           db,
		eventsClient: eventsClient,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info().Msgf("Starting StudyCash service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down StudyCash service...")

	if a.eventsClient != nil {
		if err := a.eventsClient.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	return a.server.Shutdown(ctx)
}
