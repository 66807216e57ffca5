package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/bank-booking-portal/internal/audit"
	"github.com/BruksfildServices01/bank-booking-portal/internal/config"
	"github.com/BruksfildServices01/bank-booking-portal/internal/customercache"
	dbpkg "github.com/BruksfildServices01/bank-booking-portal/internal/db"
	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/domain/wizard"
	"github.com/BruksfildServices01/bank-booking-portal/internal/handlers"
	"github.com/BruksfildServices01/bank-booking-portal/internal/infra/memory"
	"github.com/BruksfildServices01/bank-booking-portal/internal/infra/remote"
	"github.com/BruksfildServices01/bank-booking-portal/internal/logging"
	"github.com/BruksfildServices01/bank-booking-portal/internal/middleware"
	"github.com/BruksfildServices01/bank-booking-portal/internal/routes"
	"github.com/BruksfildServices01/bank-booking-portal/internal/session"
	"github.com/BruksfildServices01/bank-booking-portal/internal/telemetry"
	"github.com/BruksfildServices01/bank-booking-portal/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/bank-booking-portal/internal/usecase/appointment"
)

const serviceName = "bank-booking-portal"

func main() {

	cfg := config.Load()

	log, err := logging.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, serviceName, cfg.OTLPEndpoint, cfg.OTLPInsecure, log)

	// ======================================================
	// BACKENDS
	// ======================================================
	var (
		customers domain.CustomerRepository
		bookings  domain.BookingRepository
	)
	if cfg.DemoMode() {
		store := memory.Seeded()
		customers, bookings = store.Customers(), store.Bookings()
		log.Info("demo backend enabled")
	} else {
		customers = remote.NewCustomerClient(remote.NewClient(cfg.CustomerAPIURL, cfg.HTTPTimeout, log))
		bookings = remote.NewBookingClient(remote.NewClient(cfg.BookingAPIURL, cfg.HTTPTimeout, log))
		log.Info("remote backend enabled",
			zap.String("customers", cfg.CustomerAPIURL),
			zap.String("bookings", cfg.BookingAPIURL),
		)
	}

	// ======================================================
	// REDIS (sessions + login throttling)
	// ======================================================
	var (
		sessionStore session.Store      = session.NewMemoryStore()
		loginLimiter middleware.Limiter = middleware.NewMemoryLimiter(cfg.LoginRateLimit)
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal("invalid REDIS_URL", zap.Error(err))
		}
		rdb := redis.NewClient(opts)
		defer func() { _ = rdb.Close() }()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn("redis unreachable, sessions stay in memory", zap.Error(err))
		} else {
			sessionStore = session.NewRedisStore(rdb)
			loginLimiter = middleware.NewRedisLimiter(rdb, cfg.LoginRateLimit)
			log.Info("redis session store enabled")
		}
		cancel()
	}

	// ======================================================
	// AUDIT
	// ======================================================
	sinks := []audit.Sink{audit.NewZapSink(log)}
	var auditLogs handlers.AuditLogReader
	if cfg.DBUrl != "" {
		db, err := dbpkg.NewDB(cfg, log)
		if err != nil {
			log.Fatal("audit database", zap.Error(err))
		}
		gormSink := audit.NewGormSink(db)
		sinks = append(sinks, gormSink)
		auditLogs = gormSink
	}
	dispatcher := audit.NewDispatcher(log, sinks...)
	defer dispatcher.Close()

	// ======================================================
	// ENGINE
	// ======================================================
	clock := timezone.SystemClock(cfg.Timezone)
	slots := domain.DefaultSlots()

	engine := ucAppointment.NewEngine(bookings, customercache.New(customers, log), ucAppointment.Options{
		Audit:   dispatcher,
		Clock:   clock,
		Catalog: slots,
		Logger:  log,
	})

	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.HTTPTimeout)
	if err := engine.FetchAll(loadCtx); err != nil {
		log.Warn("initial appointment load failed, retrying on first request", zap.Error(err))
	}
	cancelLoad()

	if cfg.RefreshSchedule != "" {
		reconciler, err := engine.StartReconciler(cfg.RefreshSchedule, cfg.HTTPTimeout)
		if err != nil {
			log.Fatal("invalid REFRESH_SCHEDULE", zap.Error(err))
		}
		defer reconciler.Stop()
	}

	// ======================================================
	// SESSIONS
	// ======================================================
	directory := session.NewDirectoryAuthenticator(customers, cfg.AdminEmails)
	auth := session.ChainAuthenticator{directory}
	if cfg.DemoMode() {
		accounts, err := session.DefaultDemoAccounts()
		if err != nil {
			log.Fatal("demo accounts", zap.Error(err))
		}
		auth = session.ChainAuthenticator{session.NewDemoAuthenticator(accounts...), directory}
	}

	sessions := session.NewManager(sessionStore, auth, customers, session.ManagerOptions{
		TTL:                 cfg.SessionTTL,
		ValidateEmailDomain: cfg.ValidateEmailDomain,
		Logger:              log,
	})

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.AccessLog(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"backend":      cfg.BackendMode,
			"appointments": engine.Loaded(),
		})
	})

	routes.RegisterRoutes(r, routes.Deps{
		Config:       cfg,
		Logger:       log,
		Sessions:     sessions,
		Wizards:      wizard.NewRegistry(slots),
		Engine:       engine,
		Customers:    customers,
		Audit:        dispatcher,
		AuditLogs:    auditLogs,
		LoginLimiter: loginLimiter,
		Clock:        clock,
		Slots:        slots,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn("tracing shutdown", zap.Error(err))
	}
}
