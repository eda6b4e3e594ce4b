package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCampaignServiceTest(t *testing.T) (*CampaignService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:campaign_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.BrandProfile{},
		&models.InfluencerProfile{},
		&models.Campaign{},
		&models.CampaignApplication{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	campaignRepo := repository.NewCampaignRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	influencerRepo := repository.NewInfluencerRepository(db)
	return NewCampaignService(campaignRepo, brandRepo, influencerRepo, NewNotificationService(nil)), db
}

func createCampaignTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        fmt.Sprintf("campaign_%s_%d@example.com", role, time.Now().UnixNano()),
		PasswordHash: "hash",
		Role:         role,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createCampaignTestBrand(t *testing.T, db *gorm.DB) (Actor, *models.BrandProfile) {
	t.Helper()
	user := createCampaignTestUser(t, db, constants.RoleBrand)
	brand := &models.BrandProfile{UserID: user.ID, CompanyName: "Northwind Media"}
	if err := db.Create(brand).Error; err != nil {
		t.Fatalf("create brand profile failed: %v", err)
	}
	return Actor{UserID: user.ID, Role: user.Role}, brand
}

func createCampaignTestInfluencer(t *testing.T, db *gorm.DB, status string) (Actor, *models.InfluencerProfile) {
	t.Helper()
	user := createCampaignTestUser(t, db, constants.RoleInfluencer)
	profile := &models.InfluencerProfile{
		UserID:         user.ID,
		DisplayName:    fmt.Sprintf("creator_%d", user.ID),
		IDProofURL:     "https://files.example.com/id.pdf",
		UPIID:          "creator@upi",
		ApprovalStatus: status,
		VideoRate:      models.NewMoneyFromFloat(0),
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create influencer profile failed: %v", err)
	}
	return Actor{UserID: user.ID, Role: user.Role}, profile
}

func TestCampaignCreateAndApply(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)
	brandActor, _ := createCampaignTestBrand(t, db)
	influencerActor, _ := createCampaignTestInfluencer(t, db, constants.InfluencerStatusApproved)

	campaign, err := svc.Create(brandActor, CreateCampaignInput{
		Title:  "夏季新品推广",
		Budget: models.NewMoneyFromFloat(50000),
	})
	if err != nil {
		t.Fatalf("create campaign error: %v", err)
	}
	if campaign.Status != constants.CampaignStatusActive {
		t.Fatalf("expected active campaign, got %s", campaign.Status)
	}

	application, err := svc.Apply(influencerActor, ApplyInput{
		CampaignID: campaign.ID,
		BidAmount:  models.NewMoneyFromFloat(2000),
		Message:    "擅长开箱视频",
	})
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if application.Status != constants.CampaignApplicationStatusPending {
		t.Fatalf("expected pending application, got %s", application.Status)
	}

	// 同一活动不允许重复报名
	if _, err := svc.Apply(influencerActor, ApplyInput{CampaignID: campaign.ID, BidAmount: models.NewMoneyFromFloat(1800)}); !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}
	var count int64
	db.Model(&models.CampaignApplication{}).Where("campaign_id = ?", campaign.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 application row, got %d", count)
	}
}

func TestCampaignApplyRequiresApprovedInfluencer(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)
	brandActor, _ := createCampaignTestBrand(t, db)
	pendingActor, _ := createCampaignTestInfluencer(t, db, constants.InfluencerStatusPending)

	campaign, err := svc.Create(brandActor, CreateCampaignInput{Title: "推广活动", Budget: models.NewMoneyFromFloat(1000)})
	if err != nil {
		t.Fatalf("create campaign error: %v", err)
	}

	if _, err := svc.Apply(pendingActor, ApplyInput{CampaignID: campaign.ID}); !errors.Is(err, ErrInfluencerNotApproved) {
		t.Fatalf("expected ErrInfluencerNotApproved, got %v", err)
	}
}

func TestCampaignApplyClosedOrExpired(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)
	brandActor, _ := createCampaignTestBrand(t, db)
	influencerActor, _ := createCampaignTestInfluencer(t, db, constants.InfluencerStatusApproved)

	past := time.Now().Add(-time.Hour)
	expired, err := svc.Create(brandActor, CreateCampaignInput{Title: "已截止活动", Deadline: &past})
	if err != nil {
		t.Fatalf("create campaign error: %v", err)
	}
	if _, err := svc.Apply(influencerActor, ApplyInput{CampaignID: expired.ID}); !errors.Is(err, ErrCampaignNotOpen) {
		t.Fatalf("expected ErrCampaignNotOpen for expired deadline, got %v", err)
	}

	closed, err := svc.Create(brandActor, CreateCampaignInput{Title: "将关闭活动"})
	if err != nil {
		t.Fatalf("create campaign error: %v", err)
	}
	if _, err := svc.UpdateStatus(closed.ID, constants.CampaignStatusClosed, brandActor); err != nil {
		t.Fatalf("close campaign error: %v", err)
	}
	if _, err := svc.Apply(influencerActor, ApplyInput{CampaignID: closed.ID}); !errors.Is(err, ErrCampaignNotOpen) {
		t.Fatalf("expected ErrCampaignNotOpen for closed campaign, got %v", err)
	}
}

func TestCampaignUpdateStatusTransitions(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)
	brandActor, _ := createCampaignTestBrand(t, db)
	otherBrandActor, _ := createCampaignTestBrand(t, db)

	campaign, err := svc.Create(brandActor, CreateCampaignInput{Title: "状态流转"})
	if err != nil {
		t.Fatalf("create campaign error: %v", err)
	}

	// 仅活动归属品牌可以流转
	if _, err := svc.UpdateStatus(campaign.ID, constants.CampaignStatusClosed, otherBrandActor); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for other brand, got %v", err)
	}
	// 只允许流转到 completed / closed
	if _, err := svc.UpdateStatus(campaign.ID, "archived", brandActor); !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}

	updated, err := svc.UpdateStatus(campaign.ID, constants.CampaignStatusCompleted, brandActor)
	if err != nil {
		t.Fatalf("update status error: %v", err)
	}
	if updated.Status != constants.CampaignStatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}

	// 终态后不可再流转
	if _, err := svc.UpdateStatus(campaign.ID, constants.CampaignStatusClosed, brandActor); !errors.Is(err, ErrCampaignNotOpen) {
		t.Fatalf("expected ErrCampaignNotOpen, got %v", err)
	}
}

func TestCampaignDecideApplication(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)
	brandActor, _ := createCampaignTestBrand(t, db)
	otherBrandActor, _ := createCampaignTestBrand(t, db)
	influencerActor, _ := createCampaignTestInfluencer(t, db, constants.InfluencerStatusApproved)

	campaign, err := svc.Create(brandActor, CreateCampaignInput{Title: "审批活动"})
	if err != nil {
		t.Fatalf("create campaign error: %v", err)
	}
	application, err := svc.Apply(influencerActor, ApplyInput{CampaignID: campaign.ID, BidAmount: models.NewMoneyFromFloat(1500)})
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}

	if _, err := svc.DecideApplication(application.ID, true, otherBrandActor); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for other brand, got %v", err)
	}

	approved, err := svc.DecideApplication(application.ID, true, brandActor)
	if err != nil {
		t.Fatalf("decide application error: %v", err)
	}
	if approved.Status != constants.CampaignApplicationStatusApproved {
		t.Fatalf("expected approved, got %s", approved.Status)
	}
	if approved.DecidedBy == nil || *approved.DecidedBy != brandActor.UserID {
		t.Fatalf("expected decider %d, got %+v", brandActor.UserID, approved.DecidedBy)
	}

	// 审批后为终态
	if _, err := svc.DecideApplication(application.ID, false, brandActor); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided, got %v", err)
	}
}

func TestCampaignListScopes(t *testing.T) {
	svc, db := setupCampaignServiceTest(t)
	brandActor, _ := createCampaignTestBrand(t, db)
	otherBrandActor, _ := createCampaignTestBrand(t, db)
	influencerActor, _ := createCampaignTestInfluencer(t, db, constants.InfluencerStatusApproved)

	open, err := svc.Create(brandActor, CreateCampaignInput{Title: "开放活动"})
	if err != nil {
		t.Fatalf("create campaign error: %v", err)
	}
	closed, err := svc.Create(otherBrandActor, CreateCampaignInput{Title: "关闭活动"})
	if err != nil {
		t.Fatalf("create campaign error: %v", err)
	}
	if _, err := svc.UpdateStatus(closed.ID, constants.CampaignStatusClosed, otherBrandActor); err != nil {
		t.Fatalf("close campaign error: %v", err)
	}

	// 达人只看开放中的活动
	list, total, err := svc.List(repository.CampaignListFilter{Page: 1, PageSize: 20}, influencerActor)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != open.ID {
		t.Fatalf("expected only open campaign, got total=%d list=%+v", total, list)
	}

	// 品牌只看自家活动
	list, total, err = svc.List(repository.CampaignListFilter{Page: 1, PageSize: 20}, otherBrandActor)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != closed.ID {
		t.Fatalf("expected only own campaign, got total=%d list=%+v", total, list)
	}
}
