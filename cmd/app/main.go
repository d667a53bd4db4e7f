package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/config"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/notify"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/repository/postgres"
	httpTransport "github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/transport/http/handler"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/usecase"
	"github.com/mahd-mohamed/Football-Places-Booking-System/internal/ws"
)

func main() {
	// .env опционален, в контейнере конфигурация приходит из окружения
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	// Подключаемся к базе данных
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.GetDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().Msg("connected to database")

	// Применяем миграции
	if err := runMigrations(cfg.GetDSN()); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	log.Info().Msg("migrations applied")

	// Инициализируем репозитории
	userRepo := postgres.NewUserRepository(pool)
	placeRepo := postgres.NewPlaceRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	memberRepo := postgres.NewTeamMemberRepository(pool)
	bookingRepo := postgres.NewBookingMatchRepository(pool)
	participantRepo := postgres.NewMatchParticipantRepository(pool)
	requestRepo := postgres.NewRequestRepository(pool)
	txManager := postgres.NewTransactionManager(pool)

	// Инициализируем уведомления
	mailer := notify.NewMailer(cfg, log.With().Str("component", "mailer").Logger())
	defer mailer.Close()

	hub := ws.NewHub(log.With().Str("component", "ws").Logger())

	// Инициализируем use cases
	authz := usecase.NewAuthorizer(teamRepo, memberRepo)
	authUseCase := usecase.NewAuthUseCase(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	userUseCase := usecase.NewUserUseCase(userRepo, authz)
	placeUseCase := usecase.NewPlaceUseCase(placeRepo, authz)
	teamUseCase := usecase.NewTeamUseCase(teamRepo, memberRepo, requestRepo, txManager, authz)
	memberUseCase := usecase.NewTeamMemberUseCase(teamRepo, memberRepo, userRepo, requestRepo, txManager, authz, mailer, hub)
	bookingUseCase := usecase.NewBookingUseCase(bookingRepo, placeRepo, teamRepo, memberRepo, txManager, authz, hub)
	participantUseCase := usecase.NewParticipantUseCase(participantRepo, bookingRepo, placeRepo, userRepo, requestRepo, txManager, authz, mailer, hub)
	requestUseCase := usecase.NewRequestUseCase(requestRepo, authz)

	// Создаем роутер
	router := httpTransport.NewRouter(httpTransport.RouterConfig{
		AuthHandler:        handler.NewAuthHandler(authUseCase),
		UserHandler:        handler.NewUserHandler(userUseCase),
		PlaceHandler:       handler.NewPlaceHandler(placeUseCase),
		TeamHandler:        handler.NewTeamHandler(teamUseCase),
		TeamMemberHandler:  handler.NewTeamMemberHandler(memberUseCase, cfg.FrontendURL),
		BookingHandler:     handler.NewBookingHandler(bookingUseCase),
		ParticipantHandler: handler.NewParticipantHandler(participantUseCase, cfg.FrontendURL),
		RequestHandler:     handler.NewRequestHandler(requestUseCase),
		WSHandler:          handler.NewWSHandler(hub),
		HealthHandler:      handler.NewHealthHandler(),
		TokenParser:        authUseCase,
	})

	// Создаем HTTP сервер
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}

// Применяем миграции базы данных
func runMigrations(dsn string) error {
	m, err := migrate.New(
		"file://migrations",
		dsn,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
