package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"healthtrack/backend/internal/config"
	"healthtrack/backend/internal/db"
	"healthtrack/backend/internal/db/migrate"
	healthhandler "healthtrack/backend/internal/health/handler"
	"healthtrack/backend/internal/insights/engine"
	"healthtrack/backend/internal/ratelimit"
	"healthtrack/backend/internal/security"
	"healthtrack/backend/internal/server"
	"healthtrack/backend/internal/server/metrics"
	"healthtrack/backend/internal/telemetry"
	telemetryotel "healthtrack/backend/internal/telemetry/otel"
	"healthtrack/backend/internal/telemetry/producer"
)

const (
	healthWatchInterval = 10 * time.Second
	limiterSweepEvery   = time.Minute
	shutdownTimeout     = 15 * time.Second
)

func main() {
	migrateOnStart := flag.Bool("migrate", false, "Apply pending migrations before serving")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := telemetryotel.NewProviders(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("otel: %v", err)
	}
	providers.SetGlobal()

	events := telemetry.Fanout{telemetryotel.NewEventEmitter(providers.LoggerProvider), metrics.EventCounter{}}
	var eventsProducer producer.Producer
	if brokers := cfg.KafkaBrokersList(); len(brokers) > 0 {
		eventsProducer = producer.NewKafkaProducer(brokers, cfg.EventsKafkaTopic)
		events = append(events, eventsProducer)
		log.Printf("events: publishing to kafka topic %s", cfg.EventsKafkaTopic)
	}

	opa, err := engine.NewOPAEngine(ctx)
	if err != nil {
		log.Fatalf("insights policy: %v", err)
	}

	deps := server.Deps{Events: events, TracerProvider: providers.TracerProvider}
	var pinger healthhandler.Pinger
	if cfg.DatabaseURL != "" {
		if *migrateOnStart {
			if err := migrate.Run(cfg.DatabaseURL, migrate.DirectionUp); err != nil {
				log.Fatalf("migrate: %v", err)
			}
		}
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer conn.Close()
		pinger = conn

		opts := server.PostgresOptions{Events: events, Recommender: opa}
		if cfg.AuthEnabled() {
			priv, pub, err := security.LoadKeyPair(cfg.JWTPrivateKey, cfg.JWTPublicKey)
			if err != nil {
				log.Fatalf("jwt keys: %v", err)
			}
			tokens, err := security.NewTokenProvider(priv, pub, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
			if err != nil {
				log.Fatalf("jwt: %v", err)
			}
			limiter := ratelimit.NewMemoryLimiter(cfg.SigninMaxAttempts, cfg.SigninWindowDuration())
			go limiter.RunSweeper(ctx, limiterSweepEvery)
			opts.Tokens, opts.Hasher, opts.Limiter = tokens, security.NewHasher(cfg.BcryptCost), limiter
		} else {
			log.Println("auth: JWT keys not set; only public routes are served")
		}
		deps = server.NewPostgresDeps(conn, opts)
		deps.TracerProvider = providers.TracerProvider
	} else {
		log.Println("database: DATABASE_URL not set; serving calculator and probes only")
	}
	checker := healthhandler.NewChecker(pinger, opa)
	deps.Health = checker

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http serve: %v", err)
		}
	}()

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	grpcSrv := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	hs := healthhandler.NewGRPCHealth()
	healthpb.RegisterHealthServer(grpcSrv, hs)
	go checker.Watch(ctx, hs, healthWatchInterval)
	go func() {
		log.Printf("gRPC health server listening on %s", cfg.GRPCAddr)
		if err := grpcSrv.Serve(lis); err != nil {
			log.Fatalf("grpc serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	hs.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	grpcSrv.GracefulStop()

	// Let in-flight async events finish before the exporters close.
	time.Sleep(telemetry.ShutdownDrainDuration)
	if eventsProducer != nil {
		if err := eventsProducer.Close(); err != nil {
			log.Printf("kafka producer close: %v", err)
		}
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Printf("otel shutdown: %v", err)
	}
	log.Println("servers stopped")
}
