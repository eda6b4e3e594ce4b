package main

import (
	"time"

	"github.com/creatorlink/internal/config"
	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/logger"
	"github.com/creatorlink/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 演示账号
	seedUsers := []struct {
		Email    string
		Password string
		Role     string
	}{
		{Email: "brand@creatorlink.local", Password: "brand123", Role: constants.RoleBrand},
		{Email: "creator@creatorlink.local", Password: "creator123", Role: constants.RoleInfluencer},
		{Email: "creator2@creatorlink.local", Password: "creator123", Role: constants.RoleInfluencer},
	}

	userIDs := map[string]uint{}
	for _, su := range seedUsers {
		var existing models.User
		if err := models.DB.Where("email = ?", su.Email).First(&existing).Error; err == nil {
			stdLog.Printf("User already exists: %s", su.Email)
			userIDs[su.Email] = existing.ID
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(su.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Fatalf("Failed to hash password: %v", err)
		}
		user := models.User{
			Email:        su.Email,
			PasswordHash: string(hash),
			Role:         su.Role,
			Status:       constants.UserStatusActive,
		}
		if err := models.DB.Create(&user).Error; err != nil {
			stdLog.Printf("Failed to create user %s: %v", su.Email, err)
			continue
		}
		stdLog.Printf("Created user: %s (%s)", su.Email, su.Role)
		userIDs[su.Email] = user.ID
	}

	// 品牌方档案
	if brandUserID := userIDs["brand@creatorlink.local"]; brandUserID > 0 {
		var existing models.BrandProfile
		if err := models.DB.Where("user_id = ?", brandUserID).First(&existing).Error; err != nil {
			brand := models.BrandProfile{
				UserID:      brandUserID,
				CompanyName: "Northwind Media",
				Website:     "https://northwind.example.com",
				ContactName: "Priya",
			}
			if err := models.DB.Create(&brand).Error; err != nil {
				stdLog.Printf("Failed to create brand profile: %v", err)
			} else {
				stdLog.Printf("Created brand profile: %s", brand.CompanyName)

				// 示例推广活动
				deadline := time.Now().AddDate(0, 1, 0)
				campaign := models.Campaign{
					BrandProfileID: brand.ID,
					Title:          "夏季新品短视频推广",
					Requirements:   "60 秒以内竖屏视频，突出产品使用场景，发布到 Instagram Reels",
					Budget:         models.NewMoneyFromDecimal(decimal.NewFromInt(50000)),
					Deadline:       &deadline,
					Status:         constants.CampaignStatusActive,
				}
				if err := models.DB.Create(&campaign).Error; err != nil {
					stdLog.Printf("Failed to create campaign: %v", err)
				} else {
					stdLog.Printf("Created campaign: %s", campaign.Title)
				}
			}
		} else {
			stdLog.Printf("Brand profile already exists: %s", existing.CompanyName)
		}
	}

	// 达人档案（一个已通过核价，一个待审核）
	seedInfluencers := []struct {
		Email         string
		DisplayName   string
		FollowerCount int64
		Approved      bool
		VideoRate     float64
	}{
		{Email: "creator@creatorlink.local", DisplayName: "Aarav Vlogs", FollowerCount: 120000, Approved: true, VideoRate: 1500},
		{Email: "creator2@creatorlink.local", DisplayName: "Meera Makes", FollowerCount: 45000, Approved: false},
	}

	for _, si := range seedInfluencers {
		userID := userIDs[si.Email]
		if userID == 0 {
			continue
		}
		var existing models.InfluencerProfile
		if err := models.DB.Where("user_id = ?", userID).First(&existing).Error; err == nil {
			stdLog.Printf("Influencer profile already exists: %s", existing.DisplayName)
			continue
		}
		profile := models.InfluencerProfile{
			UserID:          userID,
			DisplayName:     si.DisplayName,
			Bio:             "演示达人账号",
			FollowerCount:   si.FollowerCount,
			InstagramHandle: "@" + si.DisplayName,
			IDProofURL:      "https://files.creatorlink.local/demo/id-proof.pdf",
			UPIID:           si.DisplayName + "@upi",
			ApprovalStatus:  constants.InfluencerStatusPending,
			VideoRate:       models.NewMoneyFromFloat(0),
		}
		if si.Approved {
			now := time.Now()
			profile.ApprovalStatus = constants.InfluencerStatusApproved
			profile.ApprovedAt = &now
			profile.VideoRate = models.NewMoneyFromFloat(si.VideoRate)
		}
		if err := models.DB.Create(&profile).Error; err != nil {
			stdLog.Printf("Failed to create influencer profile %s: %v", si.DisplayName, err)
			continue
		}
		stdLog.Printf("Created influencer profile: %s (%s)", profile.DisplayName, profile.ApprovalStatus)
	}

	// 当月运营任务
	month := time.Now().Format("2006-01")
	tasks := []models.Task{
		{
			Title:       "本月产品测评视频",
			Description: "围绕平台推荐产品制作一条测评视频",
			Guidelines:  "视频时长 1-3 分钟，需包含开箱与使用体验",
			Reward:      models.NewMoneyFromDecimal(decimal.NewFromInt(2000)),
			Month:       month,
			IsActive:    true,
		},
		{
			Title:       "平台宣传短片",
			Description: "制作一条介绍平台玩法的短片",
			Guidelines:  "竖屏 9:16，字幕清晰",
			Reward:      models.NewMoneyFromDecimal(decimal.NewFromInt(1200)),
			Month:       month,
			IsActive:    true,
		},
	}
	for _, task := range tasks {
		var existing models.Task
		if err := models.DB.Where("title = ? AND month = ?", task.Title, task.Month).First(&existing).Error; err == nil {
			stdLog.Printf("Task already exists: %s", task.Title)
			continue
		}
		if err := models.DB.Create(&task).Error; err != nil {
			stdLog.Printf("Failed to create task %s: %v", task.Title, err)
			continue
		}
		stdLog.Printf("Created task: %s (%s)", task.Title, task.Month)
	}

	stdLog.Println("Seed data initialized")
}
