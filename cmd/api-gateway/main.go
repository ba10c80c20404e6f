package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tit-academy/crm-api/api/swagger"
	"github.com/tit-academy/crm-api/internal/handler"
	"github.com/tit-academy/crm-api/internal/ledger"
	"github.com/tit-academy/crm-api/internal/middleware"
	"github.com/tit-academy/crm-api/internal/repository"
	"github.com/tit-academy/crm-api/internal/router"
	"github.com/tit-academy/crm-api/internal/seed"
	"github.com/tit-academy/crm-api/internal/service"
	"github.com/tit-academy/crm-api/pkg/cache"
	"github.com/tit-academy/crm-api/pkg/config"
	"github.com/tit-academy/crm-api/pkg/database"
	"github.com/tit-academy/crm-api/pkg/logger"
	corsmiddleware "github.com/tit-academy/crm-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tit-academy/crm-api/pkg/middleware/requestid"
)

// @title TIT Academy CRM API
// @version 1.0.0
// @description School management CRM: groups, students, attendance, medals and marketplace
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()

	authCfg := service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}

	var cacheRepo *repository.CacheRepository
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, dashboard cache disabled", "error", err)
			cacheRepo = repository.NewCacheRepository(nil)
		} else {
			cacheRepo = repository.NewCacheRepository(client)
		}
	} else {
		cacheRepo = repository.NewCacheRepository(nil)
	}
	cacheSvc := service.NewCacheService(cacheRepo, cfg.Dashboard.CacheTTL)

	metricsSvc := service.NewMetricsService()

	var (
		authSvc       *service.AuthService
		groupSvc      *service.GroupService
		studentSvc    *service.StudentService
		attendanceSvc *service.AttendanceService
		medalSvc      *service.MedalService
		productSvc    *service.ProductService
		purchaseSvc   *service.PurchaseService
		dashboardSvc  *service.DashboardService
		reportSvc     *service.ReportService
	)

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
		}
		defer db.Close()

		users := repository.NewUserRepository(db)
		groups := repository.NewGroupRepository(db)
		students := repository.NewStudentRepository(db)
		attendance := repository.NewAttendanceRepository(db)
		medals := repository.NewMedalRepository(db)
		products := repository.NewProductRepository(db)
		purchases := repository.NewPurchaseRepository(db)
		stats := repository.NewStatsRepository(db)

		if cfg.Seed.Enabled {
			seedStore := struct {
				*repository.UserRepository
				*repository.GroupRepository
				*repository.StudentRepository
				*repository.ProductRepository
			}{users, groups, students, products}
			if err := seed.Run(context.Background(), seedStore, logr); err != nil {
				logr.Sugar().Fatalw("failed to seed demo data", "error", err)
			}
		}

		authSvc = service.NewAuthService(users, validate, logr, authCfg)
		groupSvc = service.NewGroupService(groups, cacheSvc, validate, logr)
		studentSvc = service.NewStudentService(students, users, groups, cacheSvc, validate, logr)
		attendanceSvc = service.NewAttendanceService(attendance, cacheSvc, validate, logr)
		medalSvc = service.NewMedalService(medals, students, users, cacheSvc, validate, logr)
		productSvc = service.NewProductService(products, validate, logr)
		purchaseSvc = service.NewPurchaseService(purchases, products, cacheSvc, validate, logr)
		dashboardSvc = service.NewDashboardService(stats, cacheSvc, logr)
		reportSvc = service.NewReportService(students, users, logr)

	default:
		store := ledger.NewStore()

		if cfg.Seed.Enabled {
			if err := seed.Run(context.Background(), store, logr); err != nil {
				logr.Sugar().Fatalw("failed to seed demo data", "error", err)
			}
		}

		authSvc = service.NewAuthService(store, validate, logr, authCfg)
		groupSvc = service.NewGroupService(store, cacheSvc, validate, logr)
		studentSvc = service.NewStudentService(store, store, store, cacheSvc, validate, logr)
		attendanceSvc = service.NewAttendanceService(store, cacheSvc, validate, logr)
		medalSvc = service.NewMedalService(store, store, store, cacheSvc, validate, logr)
		productSvc = service.NewProductService(store, validate, logr)
		purchaseSvc = service.NewPurchaseService(store, store, cacheSvc, validate, logr)
		dashboardSvc = service.NewDashboardService(store, cacheSvc, logr)
		reportSvc = service.NewReportService(store, store, logr)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.Mount(r, cfg.APIPrefix, router.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Group:      handler.NewGroupHandler(groupSvc),
		Student:    handler.NewStudentHandler(studentSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc),
		Medal:      handler.NewMedalHandler(medalSvc),
		Product:    handler.NewProductHandler(productSvc),
		Purchase:   handler.NewPurchaseHandler(purchaseSvc),
		Dashboard:  handler.NewDashboardHandler(dashboardSvc, metricsSvc),
		Report:     handler.NewReportHandler(reportSvc),
	}, authSvc)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "driver", cfg.Storage.Driver)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
