package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
	"github.com/instituto-brotar/painel-brotar/internal/config"
	"github.com/instituto-brotar/painel-brotar/internal/handlers"
	"github.com/instituto-brotar/painel-brotar/internal/logging"
	"github.com/instituto-brotar/painel-brotar/internal/middleware"
	"github.com/instituto-brotar/painel-brotar/internal/observability"
	"github.com/instituto-brotar/painel-brotar/internal/services"
	"github.com/instituto-brotar/painel-brotar/internal/session"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"github.com/instituto-brotar/painel-brotar/web"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/instituto-brotar/painel-brotar/docs"
)

// @title           Painel Instituto Brotar
// @version         1.0
// @description     Painel administrativo do Instituto Brotar. As páginas HTML são servidas pelo próprio painel; esta documentação cobre apenas os endpoints JSON auxiliares.

// @host      localhost:8080
// @BasePath  /

// @tag.name Health
// @tag.description Verificação das dependências

// @tag.name Session
// @tag.description Estado da sessão do navegador

// @tag.name Dashboard
// @tag.description Indicadores do painel

func main() {
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() { _ = logging.Logger.Sync() }()

	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}
	cfg := config.AppConfig

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Environment,
		}); err != nil {
			logging.Logger.Error("failed to initialize sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	observability.InitTracer()
	defer observability.ShutdownTracer()

	checks := map[string]handlers.HealthCheck{}

	var store uistate.Store = uistate.NewMemoryStore()
	if cfg.UIStateBackend == config.UIStateRedis {
		if err := config.InitRedis(); err != nil {
			logging.Logger.Warn("redis unavailable, keeping UI state in memory", zap.Error(err))
		} else {
			store = uistate.NewRedisStore(config.Redis)
			checks["redis"] = func(ctx context.Context) error {
				return config.Redis.Ping(ctx).Err()
			}
			defer config.Redis.Close()
		}
	}

	var auditWorker *utils.AuditWorker
	if err := config.InitMongoDB(); err != nil {
		logging.Logger.Warn("mongodb unavailable, audit trail disabled", zap.Error(err))
	} else if config.MongoDB != nil {
		auditWorker = utils.NewAuditWorker(
			utils.NewMongoAuditStore(config.MongoDB.Collection(cfg.MongoAuditCollection)), 2, 1000)
		defer auditWorker.Stop()
		checks["mongodb"] = func(ctx context.Context) error {
			return config.MongoDB.Client().Ping(ctx, nil)
		}
	}

	panel := &handlers.Panel{
		Logger:  logging.Logger.Named("panel"),
		Gateway: apiclient.NewGateway(cfg.BackendURL, cfg.BackendTimeout, logging.Logger.Named("backend")),
		UIState: store,
		Cookies: session.NewCookies(cfg.CookieSecure, cfg.SessionTTL),
		Paths: services.Paths{
			FamilyMembers: cfg.FamilyMembersPath,
			PropertyItems: cfg.PropertyItemsPath,
		},
		Countdown: cfg.SessionExpiredCountdown,
		ListTTL:   cfg.ListCacheTTL,
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		logging.Logger.Fatal("failed to parse templates", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HTMLRender = renderer
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		middleware.RequestTiming(),
		session.SessionContext(panel.Cookies),
		middleware.RouteGuard(),
		middleware.CORS(cfg.CORSAllowedOrigins),
		middleware.AuditTrail(auditWorker),
	)

	router.StaticFS("/static", web.Static())
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	loginLimiter := middleware.NewIPRateLimiter(cfg.LoginRateLimit)
	loginLimiter.StartCleanup(ctx, 5*time.Minute)

	handlers.Register(router, panel, loginLimiter, checks)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.BackendTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("backend_url", cfg.BackendURL),
			zap.String("ui_state", cfg.UIStateBackend),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Logger.Info("shutting down server...")
	stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Error("server forced to shutdown", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}
