package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	redisclient "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoadapter "github.com/mkraev/booking-wizard/internal/adapters/mongo"
	"github.com/mkraev/booking-wizard/internal/adapters/postgres"
	"github.com/mkraev/booking-wizard/internal/adapters/rabbit"
	redisadapter "github.com/mkraev/booking-wizard/internal/adapters/redis"
	"github.com/mkraev/booking-wizard/internal/catalog"
	"github.com/mkraev/booking-wizard/internal/config"
	"github.com/mkraev/booking-wizard/internal/export"
	httphandler "github.com/mkraev/booking-wizard/internal/http"
	"github.com/mkraev/booking-wizard/internal/idempotency"
	"github.com/mkraev/booking-wizard/internal/observability"
	"github.com/mkraev/booking-wizard/internal/pricing"
	"github.com/mkraev/booking-wizard/internal/ratelimit"
	"github.com/mkraev/booking-wizard/internal/session"
	"github.com/mkraev/booking-wizard/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	shutdownOtel, err := observability.SetupOTel(ctx, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdownOtel()

	logger := observability.NewLogger()

	cat, err := catalog.Load(ctx, cfg.CatalogDir)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	pricer := pricing.New(cat)

	var (
		kv    store.KV
		rl    *ratelimit.RateLimiter
		idemp *idempotency.Idempotency
	)
	if cfg.RedisAddr != "" {
		redisClient := redisclient.NewClient(&redisclient.Options{Addr: cfg.RedisAddr})
		redisStore := redisadapter.NewStore(redisClient)
		kv = redisStore
		rl = ratelimit.NewRateLimiter(redisStore)
		idemp = idempotency.NewIdempotency(redisadapter.NewIdempotency(redisClient), time.Hour)
	} else {
		logger.Warn("REDIS_ADDR not set, using in-memory store")
		kv = store.NewMemoryKV()
	}
	reservations := store.NewReservationStore(kv, logger)
	sess := session.NewManager(reservations, logger, cfg.DraftDebounce)
	defer sess.Close()

	var archive *postgres.Archive
	if cfg.PGDSN != "" {
		pool, err := pgxpool.New(ctx, cfg.PGDSN)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		archive = postgres.NewArchive(pool)
		if err := archive.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to ensure schema: %v", err)
		}
	}

	var audit *mongoadapter.AuditLogger
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatalf("failed to connect to mongo: %v", err)
		}
		defer mongoClient.Disconnect(ctx)
		audit = mongoadapter.NewAuditLogger(mongoClient.Database("bookingwizard"), logger)
	}

	var exporter export.Exporter = export.Noop{}
	if cfg.RabbitURL != "" {
		rabbitConn, err := amqp.Dial(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer rabbitConn.Close()
		rabbitPub, err := rabbit.NewPublisher(rabbitConn)
		if err != nil {
			log.Fatalf("failed to create publisher: %v", err)
		}
		exporter = export.NewRabbitExporter(rabbitPub)
	}

	handlers := httphandler.NewHandlers(logger, cat, pricer, sess, reservations, archive, audit, exporter, idemp)
	router := httphandler.SetupRouter(handlers, logger, rl)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	logger.WithField("addr", cfg.HTTPAddr).Info("booking wizard listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sess.Flush(shutdownCtx); err != nil {
		logger.WithError(err).Warn("final draft flush failed")
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	logger.Info("Server exiting")
}
