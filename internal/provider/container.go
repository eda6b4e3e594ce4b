package provider

import (
	"github.com/creatorlink/internal/cache"
	"github.com/creatorlink/internal/config"
	"github.com/creatorlink/internal/logger"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/queue"
	"github.com/creatorlink/internal/repository"
	"github.com/creatorlink/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo       repository.UserRepository
	InfluencerRepo repository.InfluencerRepository
	BrandRepo      repository.BrandRepository
	CampaignRepo   repository.CampaignRepository
	TaskRepo       repository.TaskRepository
	SubmissionRepo repository.SubmissionRepository
	PaymentRepo    repository.PaymentRepository

	// Services
	AuthService         *service.AuthService
	NotificationService *service.NotificationService
	InfluencerService   *service.InfluencerService
	BrandService        *service.BrandService
	CampaignService     *service.CampaignService
	TaskService         *service.TaskService
	SubmissionService   *service.SubmissionService
	SettlementService   *service.SettlementService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.InfluencerRepo = repository.NewInfluencerRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.CampaignRepo = repository.NewCampaignRepository(db)
	c.TaskRepo = repository.NewTaskRepository(db)
	c.SubmissionRepo = repository.NewSubmissionRepository(db)
	c.PaymentRepo = repository.NewPaymentRepository(db)
}

func (c *Container) initServices() {
	c.NotificationService = service.NewNotificationService(c.QueueClient)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.InfluencerService = service.NewInfluencerService(c.InfluencerRepo, c.NotificationService)
	c.BrandService = service.NewBrandService(c.BrandRepo)
	c.CampaignService = service.NewCampaignService(c.CampaignRepo, c.BrandRepo, c.InfluencerRepo, c.NotificationService)
	c.TaskService = service.NewTaskService(c.TaskRepo, c.InfluencerRepo, c.NotificationService)
	c.SubmissionService = service.NewSubmissionService(c.SubmissionRepo, c.InfluencerRepo, c.TaskRepo, c.CampaignRepo, c.BrandRepo, c.PaymentRepo, c.NotificationService)
	c.SettlementService = service.NewSettlementService(c.Config, c.PaymentRepo, c.InfluencerRepo, c.NotificationService)
}

// Close 释放容器资源
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
}
