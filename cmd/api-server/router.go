// Package main 是应用程序入口
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BoringLink/yisu-hotel-backend/internal/common/config"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/jwt"
	"github.com/BoringLink/yisu-hotel-backend/internal/common/metrics"
	commonMiddleware "github.com/BoringLink/yisu-hotel-backend/internal/common/middleware"
	adminHandler "github.com/BoringLink/yisu-hotel-backend/internal/handler/admin"
	authHandler "github.com/BoringLink/yisu-hotel-backend/internal/handler/auth"
	guestHandler "github.com/BoringLink/yisu-hotel-backend/internal/handler/guest"
	hotelHandler "github.com/BoringLink/yisu-hotel-backend/internal/handler/hotel"
	reservationHandler "github.com/BoringLink/yisu-hotel-backend/internal/handler/reservation"
	searchHandler "github.com/BoringLink/yisu-hotel-backend/internal/handler/search"
	"github.com/BoringLink/yisu-hotel-backend/internal/middleware"
	"github.com/BoringLink/yisu-hotel-backend/internal/repository"
	authService "github.com/BoringLink/yisu-hotel-backend/internal/service/auth"
	guestService "github.com/BoringLink/yisu-hotel-backend/internal/service/guest"
	hotelService "github.com/BoringLink/yisu-hotel-backend/internal/service/hotel"
	reservationService "github.com/BoringLink/yisu-hotel-backend/internal/service/reservation"
	tagService "github.com/BoringLink/yisu-hotel-backend/internal/service/tag"
)

// setupRouter 设置路由
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) {
	// 创建 JWT 管理器
	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:            cfg.JWT.Secret,
		AccessExpireTime:  cfg.JWT.AccessTokenDuration(),
		RefreshExpireTime: cfg.JWT.RefreshTokenDuration(),
		Issuer:            cfg.JWT.Issuer,
	})

	// 初始化仓储
	merchantRepo := repository.NewMerchantRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	tagRepo := repository.NewTagRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	guestRepo := repository.NewGuestRepository(db)
	logRepo := repository.NewOperationLogRepository(db)

	// 初始化服务
	authSvc := authService.NewAuthService(db, merchantRepo, adminRepo, jwtManager)
	hotelSvc := hotelService.NewHotelService(db, hotelRepo, roomRepo, tagRepo)
	reviewSvc := hotelService.NewReviewService(db, hotelRepo, logRepo, redisClient)
	searchSvc := hotelService.NewSearchService(hotelRepo, redisClient)
	tagSvc := tagService.NewTagService(tagRepo, hotelRepo)
	reservationSvc := reservationService.NewReservationService(db, reservationRepo, roomRepo, hotelRepo, guestRepo)
	guestSvc := guestService.NewGuestService(db, guestRepo, reservationRepo, hotelRepo, roomRepo)

	// 初始化处理器
	authH := authHandler.NewHandler(authSvc)
	hotelH := hotelHandler.NewHandler(hotelSvc)
	searchH := searchHandler.NewHandler(searchSvc, tagSvc)
	reservationH := reservationHandler.NewHandler(reservationSvc)
	guestH := guestHandler.NewHandler(guestSvc)
	reviewH := adminHandler.NewReviewHandler(reviewSvc)
	adminTagH := adminHandler.NewTagHandler(tagSvc)
	logH := adminHandler.NewLogHandler(logRepo)

	// 全局中间件
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.CORS(nil))
	r.Use(middleware.AccessLog(logger))
	if cfg.Metrics.Enabled {
		r.Use(metrics.GetMetrics().Middleware())
	}
	if cfg.Tracing.Enabled {
		r.Use(commonMiddleware.Tracing(&commonMiddleware.TracingConfig{
			ServiceName: cfg.Tracing.ServiceName,
			SkipPaths:   []string{"/health", "/ping", "/ready", cfg.Metrics.Path},
		}))
	}

	// 健康检查（不需要认证）
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	// Prometheus 指标
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		v1.Use(middleware.IPRateLimit(redisClient, cfg.RateLimit.RequestsPerSecond, time.Second))
	}
	{
		// 公开接口（无需认证）
		public := v1.Group("")
		{
			// 认证路由
			authH.RegisterRoutes(public)

			// 酒店搜索与详情
			searchH.RegisterRoutes(public)

			// 客人下单与查询
			reservationH.RegisterRoutes(public)
		}

		// 商户端接口（需要商户认证）
		merchant := v1.Group("")
		merchant.Use(middleware.MerchantAuth(jwtManager))
		if cfg.RateLimit.Enabled {
			merchant.Use(middleware.MerchantRateLimit(redisClient, cfg.RateLimit.Burst, time.Second))
		}
		{
			// 商户资料
			authH.RegisterProtectedRoutes(merchant)

			// 酒店管理
			hotelH.RegisterRoutes(merchant)

			// 预订管理
			reservationH.RegisterProtectedRoutes(merchant)

			// 入住人登记
			guestH.RegisterRoutes(merchant)
		}
	}

	// 管理后台 API
	admin := r.Group("/api/admin")
	{
		// 管理员登录（公开）
		authH.RegisterAdminRoutes(admin)

		// 需要管理员认证
		adminAuth := admin.Group("")
		adminAuth.Use(middleware.AdminAuth(jwtManager))
		{
			// 酒店审核
			reviewH.RegisterRoutes(adminAuth)

			// 标签管理（需要标签管理权限，写操作记录操作日志）
			opLogger := commonMiddleware.NewOperationLogger(logRepo)
			tagGroup := adminAuth.Group("",
				middleware.RequirePermission(middleware.DefaultChecker(), middleware.PermissionTagManage),
				opLogger.Log(),
			)
			adminTagH.RegisterRoutes(tagGroup)

			// 操作日志（仅超级管理员可查）
			logGroup := adminAuth.Group("", middleware.RequireSuperAdmin())
			logH.RegisterRoutes(logGroup)
		}
	}

	// 404 处理
	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"code":    404,
			"message": "接口不存在",
		})
	})
}
