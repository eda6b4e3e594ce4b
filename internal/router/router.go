package router

import (
	"fmt"
	"strings"

	"github.com/creatorlink/internal/cache"
	"github.com/creatorlink/internal/config"
	"github.com/creatorlink/internal/constants"
	adminhandlers "github.com/creatorlink/internal/http/handlers/admin"
	portalhandlers "github.com/creatorlink/internal/http/handlers/portal"
	"github.com/creatorlink/internal/http/response"
	"github.com/creatorlink/internal/logger"
	"github.com/creatorlink/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按门户/管理端分组）
	portalHandler := portalhandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "cl"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", portalHandler.Register)
			auth.POST("/login",
				RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")),
				portalHandler.Login,
			)
		}

		// 登录态接口
		authed := apiV1.Group("")
		authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			authed.GET("/me", portalHandler.Me)

			// 达人侧
			influencer := authed.Group("/influencer")
			influencer.Use(RequireRoles(constants.RoleInfluencer))
			{
				influencer.POST("/profile", portalHandler.RegisterInfluencer)
				influencer.GET("/profile", portalHandler.MyInfluencerProfile)
				influencer.GET("/campaign-applications", portalHandler.MyCampaignApplications)
				influencer.GET("/task-applications", portalHandler.MyTaskApplications)
				influencer.POST("/submissions", portalHandler.SubmitVideo)
				influencer.GET("/submissions", portalHandler.MySubmissions)
				influencer.GET("/payments", portalHandler.MyPayments)
				influencer.GET("/revenue-shares", portalHandler.MyRevenueShares)
			}

			// 品牌侧
			brand := authed.Group("/brand")
			brand.Use(RequireRoles(constants.RoleBrand))
			{
				brand.POST("/profile", portalHandler.UpsertBrand)
				brand.GET("/profile", portalHandler.MyBrandProfile)
				brand.POST("/campaigns", portalHandler.CreateCampaign)
				brand.PUT("/campaigns/:id/status", portalHandler.UpdateCampaignStatus)
				brand.GET("/campaigns/:id/applications", portalHandler.ListCampaignApplications)
				brand.PUT("/campaign-applications/:id/decision", portalHandler.DecideCampaignApplication)
				brand.PUT("/submissions/:id/review", portalHandler.ReviewSubmission)
			}

			// 双方共用的浏览接口
			authed.GET("/campaigns", portalHandler.ListCampaigns)
			authed.GET("/campaigns/:id", portalHandler.GetCampaign)
			authed.POST("/campaigns/:id/apply", RequireRoles(constants.RoleInfluencer), portalHandler.ApplyCampaign)
			authed.GET("/tasks", portalHandler.ListTasks)
			authed.GET("/tasks/:id", portalHandler.GetTask)
			authed.POST("/tasks/:id/apply", RequireRoles(constants.RoleInfluencer), portalHandler.ApplyTask)
		}

		// 管理端接口
		admin := apiV1.Group("/admin")
		admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		admin.Use(RequireRoles(constants.RoleAdmin))
		{
			admin.GET("/influencers", adminHandler.ListInfluencers)
			admin.GET("/influencers/:id", adminHandler.GetInfluencer)
			admin.PUT("/influencers/:id/decision", adminHandler.DecideInfluencer)
			admin.PUT("/influencers/:id/rate", adminHandler.SetInfluencerRate)

			admin.GET("/campaigns", adminHandler.ListCampaigns)
			admin.GET("/campaign-applications", adminHandler.ListCampaignApplications)
			admin.PUT("/campaign-applications/:id/decision", adminHandler.DecideCampaignApplication)

			admin.POST("/tasks", adminHandler.CreateTask)
			admin.GET("/tasks", adminHandler.ListTasks)
			admin.GET("/tasks/:id/applications", adminHandler.ListTaskApplications)
			admin.PUT("/task-applications/:id/decision", adminHandler.DecideTaskApplication)

			admin.GET("/submissions", adminHandler.ListSubmissions)
			admin.GET("/submissions/:id", adminHandler.GetSubmission)
			admin.PUT("/submissions/:id/approve", adminHandler.ApproveSubmission)
			admin.PUT("/submissions/:id/reject", adminHandler.RejectSubmission)

			admin.POST("/payments", adminHandler.CreateManualPayment)
			admin.GET("/payments", adminHandler.ListPayments)
			admin.GET("/payments/:id", adminHandler.GetPayment)
			admin.PUT("/payments/:id/mark-paid", adminHandler.MarkPaymentPaid)
			admin.POST("/revenue-shares/settle", adminHandler.SettleRevenue)
			admin.GET("/revenue-shares", adminHandler.ListRevenueShares)
		}
	}

	// 健康检查
	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	return r
}
