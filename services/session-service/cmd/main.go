package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/config"
	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/handler"
	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/repository"
	"github.com/vasapolrittideah/drowsiness-api/services/session-service/internal/usecase"
	"github.com/vasapolrittideah/drowsiness-api/shared/auth"
	"github.com/vasapolrittideah/drowsiness-api/shared/database"
	"github.com/vasapolrittideah/drowsiness-api/shared/discovery"
	"github.com/vasapolrittideah/drowsiness-api/shared/logger"
	"github.com/vasapolrittideah/drowsiness-api/shared/utilities"
	"github.com/vasapolrittideah/drowsiness-api/shared/validator"
)

const (
	indexTimeout      = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
	readHeaderTimeout = 10 * time.Second
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.NewSessionServiceConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.NewLogger(logger.Options{
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty,
		Service: cfg.Service,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("session service stopped with error")
	}
}

func run(ctx context.Context, cfg *config.SessionServiceConfig, log *zerolog.Logger) error {
	apiKeyAuth := auth.NewAPIKeyAuthenticator(cfg.APIKey)
	if !apiKeyAuth.Configured() {
		log.Warn().Msg("API_KEY is not set; every /sessions request will be rejected")
	}
	if cfg.Mongo.URI == "" {
		log.Warn().Str("uri", config.DefaultMongoURI).Msg("MONGODB_URI is not set; using default")
	}

	mongoDB, err := database.NewMongoDB(log, cfg.MongoURI(), cfg.Mongo.Database)
	if err != nil {
		return fmt.Errorf("failed to create MongoDB client: %w", err)
	}
	defer mongoDB.Close(context.Background())

	v, err := validator.New()
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}

	sessionRepo := repository.NewSessionMongoRepository(mongoDB.Database())
	sessionUsecase := usecase.NewSessionUsecase(sessionRepo)

	router := handler.NewRouter(handler.RouterParams{
		SessionUsecase: sessionUsecase,
		APIKeyAuth:     apiKeyAuth,
		Validator:      v,
		Logger:         log,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 2)

	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("db", cfg.Mongo.Database).Msg("starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	go func() {
		indexCtx, cancel := context.WithTimeout(ctx, indexTimeout)
		defer cancel()
		repository.EnsureSessionIndexes(indexCtx, log, mongoDB.Database())
	}()

	var healthServer *utilities.HealthServer
	if cfg.GRPC.HealthPort != 0 {
		lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.GRPC.HealthPort))
		if err != nil {
			return fmt.Errorf("failed to listen for gRPC health: %w", err)
		}

		healthServer = utilities.NewHealthServer(cfg.Service)
		go func() {
			log.Info().Str("addr", lis.Addr().String()).Msg("starting gRPC health server")
			if err := healthServer.Serve(lis); err != nil {
				errCh <- fmt.Errorf("gRPC health server failed: %w", err)
			}
		}()
	}

	var registrar *discovery.ConsulRegistrar
	if cfg.Consul.Addr != "" {
		registrar, err = registerWithConsul(log, cfg)
		if err != nil {
			log.Error().Err(err).Msg("failed to register with consul")
		}
	}

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error, shutting down")
	}

	if registrar != nil {
		registrar.Deregister()
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shut down HTTP server gracefully")
	}

	if healthServer != nil {
		healthServer.Stop()
	}

	return nil
}

func registerWithConsul(log *zerolog.Logger, cfg *config.SessionServiceConfig) (*discovery.ConsulRegistrar, error) {
	registrar, err := discovery.NewConsulRegistrar(log, cfg.Consul.Addr)
	if err != nil {
		return nil, err
	}

	host := cfg.Consul.AdvertiseHost
	if host == "" {
		host, err = os.Hostname()
		if err != nil {
			return nil, err
		}
	}

	if err := registrar.Register(discovery.Registration{
		Name:       cfg.Service,
		Host:       host,
		Port:       cfg.HTTP.Port,
		HealthPath: "/health",
	}); err != nil {
		return nil, err
	}

	return registrar, nil
}
