package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/BruksfildServices01/barbershop-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/auth"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/barbershop-scheduler/internal/db"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/calendar"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/domain/rating"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/infra/memory"
	infrapay "github.com/BruksfildServices01/barbershop-scheduler/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/barbershop-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/lock"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/logger"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/metrics"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/routes"
	accountuc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/account"
	cataloguc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/catalog"
	paymentuc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/payment"
	ratinguc "github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/rating"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/usecase/scheduling"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/validators"
	"github.com/BruksfildServices01/barbershop-scheduler/internal/worker"
)

type repositories struct {
	appointments appointment.Repository
	ratings      rating.Repository
	accounts     account.Repository
	catalog      catalog.Repository
	payments     payment.Repository
	audit        audit.Store
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogPath, !cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}

	if err := run(cfg, zlog); err != nil {
		zlog.Error("server stopped", zap.Error(err))
		_ = zlog.Sync()
		os.Exit(1)
	}
	_ = zlog.Sync()
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ======================================================
	// INFRA
	// ======================================================
	repos, err := openRepositories(cfg, zlog)
	if err != nil {
		return err
	}

	m := metrics.NewCollector()
	loc := cfg.Location()
	clock := calendar.RealClock{}

	var locker lock.Locker = lock.NewLocal()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		locker = lock.NewRedis(rdb, cfg.LockTTL, zlog)
		zlog.Info("using redis barber lock", zap.String("addr", cfg.RedisAddr))
	}

	var provider infrapay.Provider = infrapay.Manual{}
	if cfg.MPAccessToken != "" {
		mp, err := infrapay.NewMercadoPago(cfg.MPAccessToken, cfg.MPNotificationURL, zlog)
		if err != nil {
			return err
		}
		provider = mp
	}

	auditLogger := audit.New(repos.audit)
	auditDispatcher := audit.NewDispatcher(auditLogger, zlog, m)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.JWTExpiry())

	// ======================================================
	// USE CASES
	// ======================================================
	schedulingSvc := scheduling.New(scheduling.Deps{
		Repo:     repos.appointments,
		Locker:   locker,
		Clock:    clock,
		Audit:    auditDispatcher,
		Metrics:  m,
		Log:      zlog,
		Location: loc,
	})

	accountOpts := []accountuc.Option{accountuc.WithAudit(auditDispatcher)}
	if cfg.S3Enabled() {
		accountOpts = append(accountOpts, accountuc.WithAvatarStore(storage.NewS3(storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})))
	}
	if cfg.IsProduction() {
		accountOpts = append(accountOpts, accountuc.WithEmailCheck(validators.IsEmailDomainValid))
	}

	router := routes.NewRouter(routes.Deps{
		Scheduling:      schedulingSvc,
		Ratings:         ratinguc.New(repos.ratings, auditDispatcher, m, zlog),
		Accounts:        accountuc.New(repos.accounts, tokens, zlog, accountOpts...),
		Catalog:         cataloguc.New(repos.catalog, auditDispatcher),
		Payments:        paymentuc.New(repos.payments, provider, cfg.PaymentCurrency, clock, auditDispatcher, m, zlog),
		Audit:           auditLogger,
		Tokens:          tokens,
		Metrics:         m,
		Log:             zlog,
		Location:        loc,
		RateLimitPerMin: cfg.RateLimitPerMin,
		CORSOrigins:     cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	sweeper := worker.NewAutoComplete(schedulingSvc, clock, cfg.WorkerCompleteInterval, cfg.WorkerCompleteGrace, zlog)

	// ======================================================
	// RUN
	// ======================================================
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zlog.Info("server running", zap.String("addr", srv.Addr), zap.String("store", cfg.Store))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sweeper.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		if cerr := auditDispatcher.Close(shutdownCtx); cerr != nil {
			zlog.Warn("audit dispatcher did not drain", zap.Error(cerr))
		}
		zlog.Info("server stopped")
		return err
	})

	return g.Wait()
}

func openRepositories(cfg *config.Config, zlog *zap.Logger) (repositories, error) {
	if cfg.Store == config.StoreMemory {
		zlog.Warn("using in-memory store, data is lost on restart")
		st := memory.New()
		return repositories{
			appointments: st,
			ratings:      st,
			accounts:     st,
			catalog:      st,
			payments:     st,
			audit:        st,
		}, nil
	}

	db, err := dbpkg.NewDB(cfg, zlog)
	if err != nil {
		return repositories{}, err
	}
	return repositories{
		appointments: infraRepo.NewAppointmentGormRepository(db),
		ratings:      infraRepo.NewRatingGormRepository(db),
		accounts:     infraRepo.NewAccountGormRepository(db),
		catalog:      infraRepo.NewCatalogGormRepository(db),
		payments:     infraRepo.NewPaymentGormRepository(db),
		audit:        infraRepo.NewAuditGormRepository(db),
	}, nil
}
