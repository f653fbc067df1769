package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/codingstreams/userhub/internal/auth"
	"github.com/codingstreams/userhub/internal/cache"
	"github.com/codingstreams/userhub/internal/config"
	"github.com/codingstreams/userhub/internal/http/handlers"
	"github.com/codingstreams/userhub/internal/http/middlewares"
	"github.com/codingstreams/userhub/internal/observability"
	"github.com/codingstreams/userhub/internal/repo/postgres"
	"github.com/codingstreams/userhub/internal/security"
	"github.com/codingstreams/userhub/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB is plenty for auth payloads

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, profiles *cache.ProfileCache, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())
	r.Use(otelgin.Middleware("userhub"))
	r.Use(prom.GinHandleMiddleware())

	// wire up repositories and services

	usersRepo := postgres.NewUsersRepo(pool, prom)
	tokens := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())
	hasher := security.NewBcryptHasher(security.DefaultCost)

	// avoid handing the services a typed-nil interface
	var profileCache service.ProfileCache
	if profiles != nil {
		profileCache = profiles
	}

	authSvc := service.NewAuthService(usersRepo, tokens, hasher)
	userSvc := service.NewUserService(usersRepo, hasher, profileCache)

	authHandler := handlers.NewAuthHandler(authSvc)
	usersHandler := handlers.NewUsersHandler(userSvc)
	authRequired := middlewares.NewAuthMiddleware(tokens)

	// health + metrics

	dbPing := func(ctx context.Context) error {
		if pool == nil {
			return nil
		}

		pctx, cancel := context.WithTimeout(ctx, 1*time.Second)
		defer cancel()

		return pool.Ping(pctx)
	}

	var cachePing handlers.Ping
	if profiles != nil {
		cachePing = profiles.Ping
	}

	health := handlers.NewHealthHandler(dbPing, cachePing)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// routes

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", authHandler.SignUp)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/verify", authHandler.Verify)
	}

	usersGroup := r.Group("/api/users")
	usersGroup.Use(authRequired.RequireAuth())
	{
		usersGroup.GET("/:id", usersHandler.GetUser)
		usersGroup.POST("/:id/change-password", usersHandler.ChangePassword)
		usersGroup.PUT("/:id/update", usersHandler.UpdateUser)
	}

	return r
}
