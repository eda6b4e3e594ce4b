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

func setupSubmissionServiceTest(t *testing.T) (*SubmissionService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:submission_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		&models.Task{},
		&models.TaskApplication{},
		&models.VideoSubmission{},
		&models.Payment{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	svc := NewSubmissionService(
		repository.NewSubmissionRepository(db),
		repository.NewInfluencerRepository(db),
		repository.NewTaskRepository(db),
		repository.NewCampaignRepository(db),
		repository.NewBrandRepository(db),
		repository.NewPaymentRepository(db),
		NewNotificationService(nil),
	)
	return svc, db
}

func createSubmissionTestActor(t *testing.T, db *gorm.DB, role string) Actor {
	t.Helper()
	user := &models.User{
		Email:        fmt.Sprintf("submission_%s_%d@example.com", role, time.Now().UnixNano()),
		PasswordHash: "hash",
		Role:         role,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return Actor{UserID: user.ID, Role: role}
}

func createSubmissionTestInfluencer(t *testing.T, db *gorm.DB, rate float64) (Actor, *models.InfluencerProfile) {
	t.Helper()
	actor := createSubmissionTestActor(t, db, constants.RoleInfluencer)
	profile := &models.InfluencerProfile{
		UserID:         actor.UserID,
		DisplayName:    fmt.Sprintf("creator_%d", actor.UserID),
		IDProofURL:     "https://files.example.com/id.pdf",
		UPIID:          "creator@upi",
		ApprovalStatus: constants.InfluencerStatusApproved,
		VideoRate:      models.NewMoneyFromFloat(rate),
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create influencer profile failed: %v", err)
	}
	return actor, profile
}

func submitTestVideo(t *testing.T, svc *SubmissionService, actor Actor, linkType string, linkID uint) *models.VideoSubmission {
	t.Helper()
	submission, err := svc.Submit(actor, SubmitInput{
		Title:    "测评视频",
		VideoURL: "https://videos.example.com/v1.mp4",
		LinkType: linkType,
		LinkID:   linkID,
	})
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}
	return submission
}

func TestSubmissionSubmitStandalone(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	actor, profile := createSubmissionTestInfluencer(t, db, 0)

	submission := submitTestVideo(t, svc, actor, "", 99)
	if submission.LinkType != constants.SubmissionLinkNone {
		t.Fatalf("expected none link type, got %s", submission.LinkType)
	}
	if submission.LinkID != 0 {
		t.Fatalf("expected link id reset to 0, got %d", submission.LinkID)
	}
	if submission.InfluencerProfileID != profile.ID {
		t.Fatalf("unexpected profile binding: %d", submission.InfluencerProfileID)
	}
}

func TestSubmissionSubmitTaskAssignmentValidation(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	actor, profile := createSubmissionTestInfluencer(t, db, 0)
	otherActor, otherProfile := createSubmissionTestInfluencer(t, db, 0)

	task := &models.Task{Title: "任务", IsActive: true, Reward: models.NewMoneyFromFloat(0)}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("create task failed: %v", err)
	}
	assignment := &models.TaskApplication{
		InfluencerProfileID: profile.ID,
		TaskID:              task.ID,
		Status:              constants.TaskApplicationStatusAssigned,
		RequestedRate:       models.NewMoneyFromFloat(0),
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("create assignment failed: %v", err)
	}
	pending := &models.TaskApplication{
		InfluencerProfileID: otherProfile.ID,
		TaskID:              task.ID,
		Status:              constants.TaskApplicationStatusPendingApproval,
		RequestedRate:       models.NewMoneyFromFloat(0),
	}
	if err := db.Create(pending).Error; err != nil {
		t.Fatalf("create pending application failed: %v", err)
	}

	// 指派记录必须属于投稿人
	if _, err := svc.Submit(otherActor, SubmitInput{
		Title:    "t",
		VideoURL: "https://videos.example.com/v.mp4",
		LinkType: constants.SubmissionLinkTaskAssignment,
		LinkID:   assignment.ID,
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign assignment, got %v", err)
	}

	// 未指派状态不可投稿
	if _, err := svc.Submit(otherActor, SubmitInput{
		Title:    "t",
		VideoURL: "https://videos.example.com/v.mp4",
		LinkType: constants.SubmissionLinkTaskAssignment,
		LinkID:   pending.ID,
	}); !errors.Is(err, ErrAssignmentNotActive) {
		t.Fatalf("expected ErrAssignmentNotActive, got %v", err)
	}

	submission := submitTestVideo(t, svc, actor, constants.SubmissionLinkTaskAssignment, assignment.ID)
	if submission.LinkID != assignment.ID {
		t.Fatalf("unexpected link id: %d", submission.LinkID)
	}
}

func TestSubmissionSubmitCampaignRequiresApprovedApplication(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	actor, profile := createSubmissionTestInfluencer(t, db, 0)

	brandActor := createSubmissionTestActor(t, db, constants.RoleBrand)
	brand := &models.BrandProfile{UserID: brandActor.UserID, CompanyName: "Brand"}
	if err := db.Create(brand).Error; err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	campaign := &models.Campaign{BrandProfileID: brand.ID, Title: "活动", Status: constants.CampaignStatusActive, Budget: models.NewMoneyFromFloat(0)}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	application := &models.CampaignApplication{
		InfluencerProfileID: profile.ID,
		CampaignID:          campaign.ID,
		Status:              constants.CampaignApplicationStatusPending,
		BidAmount:           models.NewMoneyFromFloat(0),
	}
	if err := db.Create(application).Error; err != nil {
		t.Fatalf("create application failed: %v", err)
	}

	if _, err := svc.Submit(actor, SubmitInput{
		Title:    "t",
		VideoURL: "https://videos.example.com/v.mp4",
		LinkType: constants.SubmissionLinkCampaign,
		LinkID:   campaign.ID,
	}); !errors.Is(err, ErrApplicationNotActive) {
		t.Fatalf("expected ErrApplicationNotActive, got %v", err)
	}

	if err := db.Model(application).Update("status", constants.CampaignApplicationStatusApproved).Error; err != nil {
		t.Fatalf("approve application failed: %v", err)
	}
	submission := submitTestVideo(t, svc, actor, constants.SubmissionLinkCampaign, campaign.ID)
	if submission.LinkType != constants.SubmissionLinkCampaign {
		t.Fatalf("unexpected link type: %s", submission.LinkType)
	}
}

func TestSubmissionApproveFirstRateAssignment(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	actor, profile := createSubmissionTestInfluencer(t, db, 0)
	admin := createSubmissionTestActor(t, db, constants.RoleAdmin)
	submission := submitTestVideo(t, svc, actor, "", 0)

	// 报价未核定时必须提供核价
	if _, err := svc.Approve(submission.ID, admin, nil); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate without rate, got %v", err)
	}

	rate := models.NewMoneyFromFloat(1500)
	result, err := svc.Approve(submission.ID, admin, &rate)
	if err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if result.RateUsed.String() != "1500.00" {
		t.Fatalf("expected rate 1500.00, got %s", result.RateUsed.String())
	}
	if result.Payment == nil {
		t.Fatalf("expected payment to be created")
	}
	if result.Payment.PaymentType != constants.PaymentTypeFixed {
		t.Fatalf("expected fixed payment, got %s", result.Payment.PaymentType)
	}
	if result.Payment.Amount.String() != "1500.00" {
		t.Fatalf("expected payment amount 1500.00, got %s", result.Payment.Amount.String())
	}
	if result.Payment.SubmissionID == nil || *result.Payment.SubmissionID != submission.ID {
		t.Fatalf("expected payment linked to submission %d", submission.ID)
	}

	// 首次核价写回档案
	var stored models.InfluencerProfile
	if err := db.First(&stored, profile.ID).Error; err != nil {
		t.Fatalf("load profile failed: %v", err)
	}
	if stored.VideoRate.String() != "1500.00" {
		t.Fatalf("expected profile rate 1500.00, got %s", stored.VideoRate.String())
	}

	// 单条投稿只产生一笔结算单
	var count int64
	db.Model(&models.Payment{}).Where("submission_id = ?", submission.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 payment, got %d", count)
	}
}

func TestSubmissionApproveInheritsStoredRate(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	actor, _ := createSubmissionTestInfluencer(t, db, 1200)
	admin := createSubmissionTestActor(t, db, constants.RoleAdmin)
	submission := submitTestVideo(t, svc, actor, "", 0)

	result, err := svc.Approve(submission.ID, admin, nil)
	if err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if result.RateUsed.String() != "1200.00" {
		t.Fatalf("expected inherited rate 1200.00, got %s", result.RateUsed.String())
	}
	if result.Payment == nil || result.Payment.Amount.String() != "1200.00" {
		t.Fatalf("expected payment at stored rate, got %+v", result.Payment)
	}
}

func TestSubmissionApproveOverrideReplacesStoredRate(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	actor, profile := createSubmissionTestInfluencer(t, db, 1200)
	admin := createSubmissionTestActor(t, db, constants.RoleAdmin)
	submission := submitTestVideo(t, svc, actor, "", 0)

	override := models.NewMoneyFromFloat(1800)
	result, err := svc.Approve(submission.ID, admin, &override)
	if err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if result.RateUsed.String() != "1800.00" {
		t.Fatalf("expected override rate 1800.00, got %s", result.RateUsed.String())
	}

	var stored models.InfluencerProfile
	if err := db.First(&stored, profile.ID).Error; err != nil {
		t.Fatalf("load profile failed: %v", err)
	}
	if stored.VideoRate.String() != "1800.00" {
		t.Fatalf("expected profile rate updated to 1800.00, got %s", stored.VideoRate.String())
	}

	// 覆盖后的报价作用于后续投稿
	next := submitTestVideo(t, svc, actor, "", 0)
	nextResult, err := svc.Approve(next.ID, admin, nil)
	if err != nil {
		t.Fatalf("approve next error: %v", err)
	}
	if nextResult.RateUsed.String() != "1800.00" {
		t.Fatalf("expected next rate 1800.00, got %s", nextResult.RateUsed.String())
	}
}

func TestSubmissionReviewIsTerminal(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	actor, _ := createSubmissionTestInfluencer(t, db, 1000)
	admin := createSubmissionTestActor(t, db, constants.RoleAdmin)
	submission := submitTestVideo(t, svc, actor, "", 0)

	if _, err := svc.Approve(submission.ID, admin, nil); err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if _, err := svc.Approve(submission.ID, admin, nil); !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed on second approve, got %v", err)
	}
	if _, err := svc.Reject(submission.ID, "too late", admin); !errors.Is(err, ErrAlreadyReviewed) {
		t.Fatalf("expected ErrAlreadyReviewed on reject after approve, got %v", err)
	}

	var count int64
	db.Model(&models.Payment{}).Where("submission_id = ?", submission.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly 1 payment, got %d", count)
	}
}

func TestSubmissionRejectRequiresReason(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	actor, _ := createSubmissionTestInfluencer(t, db, 1000)
	admin := createSubmissionTestActor(t, db, constants.RoleAdmin)
	submission := submitTestVideo(t, svc, actor, "", 0)

	if _, err := svc.Reject(submission.ID, "  ", admin); !errors.Is(err, ErrRejectionReasonRequired) {
		t.Fatalf("expected ErrRejectionReasonRequired, got %v", err)
	}

	rejected, err := svc.Reject(submission.ID, "画质不达标", admin)
	if err != nil {
		t.Fatalf("reject error: %v", err)
	}
	if rejected.ApprovalStatus != constants.SubmissionStatusRejected {
		t.Fatalf("expected rejected, got %s", rejected.ApprovalStatus)
	}
	if rejected.RejectionReason != "画质不达标" {
		t.Fatalf("unexpected reason: %s", rejected.RejectionReason)
	}

	// 驳回不产生结算单
	var count int64
	db.Model(&models.Payment{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no payment after reject, got %d", count)
	}
}

func TestSubmissionApproveCompletesTaskAssignment(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	actor, profile := createSubmissionTestInfluencer(t, db, 900)
	admin := createSubmissionTestActor(t, db, constants.RoleAdmin)

	task := &models.Task{Title: "任务", IsActive: true, Reward: models.NewMoneyFromFloat(0)}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("create task failed: %v", err)
	}
	assignment := &models.TaskApplication{
		InfluencerProfileID: profile.ID,
		TaskID:              task.ID,
		Status:              constants.TaskApplicationStatusAssigned,
		RequestedRate:       models.NewMoneyFromFloat(0),
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("create assignment failed: %v", err)
	}

	submission := submitTestVideo(t, svc, actor, constants.SubmissionLinkTaskAssignment, assignment.ID)
	result, err := svc.Approve(submission.ID, admin, nil)
	if err != nil {
		t.Fatalf("approve error: %v", err)
	}
	if result.Payment == nil || result.Payment.TaskApplicationID == nil || *result.Payment.TaskApplicationID != assignment.ID {
		t.Fatalf("expected payment linked to assignment, got %+v", result.Payment)
	}

	var stored models.TaskApplication
	if err := db.First(&stored, assignment.ID).Error; err != nil {
		t.Fatalf("load assignment failed: %v", err)
	}
	if stored.Status != constants.TaskApplicationStatusCompleted {
		t.Fatalf("expected completed assignment, got %s", stored.Status)
	}
}

func TestSubmissionRejectReleasesTaskAssignment(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	actor, profile := createSubmissionTestInfluencer(t, db, 900)
	admin := createSubmissionTestActor(t, db, constants.RoleAdmin)

	task := &models.Task{Title: "任务", IsActive: true, Reward: models.NewMoneyFromFloat(0)}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("create task failed: %v", err)
	}
	assignment := &models.TaskApplication{
		InfluencerProfileID: profile.ID,
		TaskID:              task.ID,
		Status:              constants.TaskApplicationStatusAssigned,
		RequestedRate:       models.NewMoneyFromFloat(0),
	}
	if err := db.Create(assignment).Error; err != nil {
		t.Fatalf("create assignment failed: %v", err)
	}

	submission := submitTestVideo(t, svc, actor, constants.SubmissionLinkTaskAssignment, assignment.ID)
	rejected, err := svc.Reject(submission.ID, "画质不达标", admin)
	if err != nil {
		t.Fatalf("reject error: %v", err)
	}
	if rejected.ApprovalStatus != constants.SubmissionStatusRejected {
		t.Fatalf("expected rejected submission, got %s", rejected.ApprovalStatus)
	}

	var stored models.TaskApplication
	if err := db.First(&stored, assignment.ID).Error; err != nil {
		t.Fatalf("load assignment failed: %v", err)
	}
	if stored.Status != constants.TaskApplicationStatusRejected {
		t.Fatalf("expected rejected assignment, got %s", stored.Status)
	}

	var paymentCount int64
	if err := db.Model(&models.Payment{}).Count(&paymentCount).Error; err != nil {
		t.Fatalf("count payments failed: %v", err)
	}
	if paymentCount != 0 {
		t.Fatalf("expected no payment after reject, got %d", paymentCount)
	}
}

func TestSubmissionBrandReviewScope(t *testing.T) {
	svc, db := setupSubmissionServiceTest(t)
	actor, profile := createSubmissionTestInfluencer(t, db, 1000)
	brandActor := createSubmissionTestActor(t, db, constants.RoleBrand)
	otherBrandActor := createSubmissionTestActor(t, db, constants.RoleBrand)

	brand := &models.BrandProfile{UserID: brandActor.UserID, CompanyName: "Brand"}
	if err := db.Create(brand).Error; err != nil {
		t.Fatalf("create brand failed: %v", err)
	}
	otherBrand := &models.BrandProfile{UserID: otherBrandActor.UserID, CompanyName: "Other"}
	if err := db.Create(otherBrand).Error; err != nil {
		t.Fatalf("create other brand failed: %v", err)
	}
	campaign := &models.Campaign{BrandProfileID: brand.ID, Title: "活动", Status: constants.CampaignStatusActive, Budget: models.NewMoneyFromFloat(0)}
	if err := db.Create(campaign).Error; err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	application := &models.CampaignApplication{
		InfluencerProfileID: profile.ID,
		CampaignID:          campaign.ID,
		Status:              constants.CampaignApplicationStatusApproved,
		BidAmount:           models.NewMoneyFromFloat(0),
	}
	if err := db.Create(application).Error; err != nil {
		t.Fatalf("create application failed: %v", err)
	}

	standalone := submitTestVideo(t, svc, actor, "", 0)
	linked := submitTestVideo(t, svc, actor, constants.SubmissionLinkCampaign, campaign.ID)

	// 品牌不能审核非自家活动的投稿
	if _, err := svc.Approve(standalone.ID, brandActor, nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for standalone submission, got %v", err)
	}
	if _, err := svc.Approve(linked.ID, otherBrandActor, nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for other brand, got %v", err)
	}

	result, err := svc.Approve(linked.ID, brandActor, nil)
	if err != nil {
		t.Fatalf("brand approve error: %v", err)
	}
	if result.Submission.ApprovalStatus != constants.SubmissionStatusApproved {
		t.Fatalf("expected approved, got %s", result.Submission.ApprovalStatus)
	}
}
