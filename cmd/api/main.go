package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"gachastore/internal/audit"
	"gachastore/internal/config"
	"gachastore/internal/database"
	"gachastore/internal/identity"
	"gachastore/internal/middleware"
	"gachastore/internal/modules/admin"
	"gachastore/internal/modules/auth"
	"gachastore/internal/modules/menu"
	"gachastore/internal/modules/shop"
	"gachastore/internal/modules/submission"
	"gachastore/internal/modules/tag"
	jwtsvc "gachastore/internal/pkg/jwt"
	"gachastore/internal/pkg/mailer"
	"gachastore/internal/pkg/response"
	"gachastore/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	adminRepo := repository.NewAdminUserRepository(db)
	generalRepo := repository.NewGeneralUserRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	shopRepo := repository.NewShopRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	tagRepo := repository.NewTagRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	manager := jwtsvc.NewManager(cfg.JWTSecret, cfg.JWTAccessTTL)
	provider := identity.NewLocalProvider(db, manager)
	if err := provider.Migrate(); err != nil {
		log.Fatal(err)
	}
	resolver := identity.NewResolver(provider, adminRepo, generalRepo)

	var mail mailer.Mailer = mailer.NoopMailer{}
	if cfg.SMTPHost != "" {
		mail = mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
	}

	auditRec := audit.NewRecorder(auditRepo)

	authHandler := auth.NewHandler(auth.NewService(provider, resolver, adminRepo, generalRepo, shopRepo))
	menuHandler := menu.NewHandler(menu.NewService(menuRepo, adminRepo, auditRec))
	shopHandler := shop.NewHandler(shop.NewService(shopRepo, auditRec))
	submissionHandler := submission.NewHandler(submission.NewService(submissionRepo, shopRepo, auditRepo, auditRec))
	adminHandler := admin.NewHandler(admin.NewService(adminRepo, mail, auditRec))
	tagHandler := tag.NewHandler(tag.NewService(tagRepo, auditRec))

	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:            rate.Limit(cfg.RateLimitRPS),
		Burst:           cfg.RateLimitBurst,
		CleanupInterval: 5 * time.Minute,
	})
	defer limiter.Stop()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.ErrorLogger(),
		middleware.CORS(),
		middleware.Metrics(),
		limiter.Middleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		tagHandler.RegisterPublicRoutes(v1)

		// shop reads resolve identity when present so administrative
		// callers get their widened view
		browse := v1.Group("", middleware.OptionalAuth(resolver))
		shopHandler.RegisterPublicRoutes(browse)

		protected := v1.Group("", middleware.RequireAuth(resolver))
		{
			authHandler.RegisterProtectedRoutes(protected)
			menuHandler.RegisterRoutes(protected)
			shopHandler.RegisterProtectedRoutes(protected)
			submissionHandler.RegisterRoutes(protected)
			adminHandler.RegisterRoutes(protected)
			tagHandler.RegisterProtectedRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
