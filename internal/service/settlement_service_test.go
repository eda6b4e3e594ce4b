package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/creatorlink/internal/config"
	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupSettlementServiceTest(t *testing.T, cfg *config.Config) (*SettlementService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:settlement_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.InfluencerProfile{},
		&models.Payment{},
		&models.RevenueShare{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	paymentRepo := repository.NewPaymentRepository(db)
	influencerRepo := repository.NewInfluencerRepository(db)
	return NewSettlementService(cfg, paymentRepo, influencerRepo, NewNotificationService(nil)), db
}

func createSettlementTestProfile(t *testing.T, db *gorm.DB) *models.InfluencerProfile {
	t.Helper()
	user := &models.User{
		Email:        fmt.Sprintf("settlement_%d@example.com", time.Now().UnixNano()),
		PasswordHash: "hash",
		Role:         constants.RoleInfluencer,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	profile := &models.InfluencerProfile{
		UserID:         user.ID,
		DisplayName:    fmt.Sprintf("creator_%d", user.ID),
		IDProofURL:     "https://files.example.com/id.pdf",
		UPIID:          "creator@upi",
		ApprovalStatus: constants.InfluencerStatusApproved,
		VideoRate:      models.NewMoneyFromFloat(1000),
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("create profile failed: %v", err)
	}
	return profile
}

func TestSettleRevenueFivePercent(t *testing.T) {
	svc, db := setupSettlementServiceTest(t, &config.Config{})
	profile := createSettlementTestProfile(t, db)
	admin := Actor{UserID: 1, Role: constants.RoleAdmin}

	result, err := svc.SettleRevenue(profile.ID, 8, 2026, models.NewMoneyFromFloat(100000), admin)
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if result.RevenueShare.PerformanceShareAmount.String() != "5000.00" {
		t.Fatalf("expected share 5000.00, got %s", result.RevenueShare.PerformanceShareAmount.String())
	}
	if result.Payment.Amount.String() != "5000.00" {
		t.Fatalf("expected payment 5000.00, got %s", result.Payment.Amount.String())
	}
	if result.Payment.PaymentType != constants.PaymentTypeRevenueShare {
		t.Fatalf("expected revenue_share payment, got %s", result.Payment.PaymentType)
	}

	// 分成记录与结算单成对且互相关联
	if result.Payment.RevenueShareID == nil || *result.Payment.RevenueShareID != result.RevenueShare.ID {
		t.Fatalf("expected payment linked to share, got %+v", result.Payment.RevenueShareID)
	}
	var storedShare models.RevenueShare
	if err := db.First(&storedShare, result.RevenueShare.ID).Error; err != nil {
		t.Fatalf("load share failed: %v", err)
	}
	if storedShare.PaymentID == nil || *storedShare.PaymentID != result.Payment.ID {
		t.Fatalf("expected share linked back to payment, got %+v", storedShare.PaymentID)
	}
}

func TestSettleRevenueConfiguredPercent(t *testing.T) {
	cfg := &config.Config{}
	cfg.Settlement.RevenueSharePercent = 10
	svc, db := setupSettlementServiceTest(t, cfg)
	profile := createSettlementTestProfile(t, db)
	admin := Actor{UserID: 1, Role: constants.RoleAdmin}

	result, err := svc.SettleRevenue(profile.ID, 7, 2026, models.NewMoneyFromFloat(2000), admin)
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if result.RevenueShare.PerformanceShareAmount.String() != "200.00" {
		t.Fatalf("expected share 200.00, got %s", result.RevenueShare.PerformanceShareAmount.String())
	}
}

func TestSettleRevenueDuplicatePeriod(t *testing.T) {
	svc, db := setupSettlementServiceTest(t, &config.Config{})
	profile := createSettlementTestProfile(t, db)
	admin := Actor{UserID: 1, Role: constants.RoleAdmin}

	if _, err := svc.SettleRevenue(profile.ID, 8, 2026, models.NewMoneyFromFloat(1000), admin); err != nil {
		t.Fatalf("settle error: %v", err)
	}
	if _, err := svc.SettleRevenue(profile.ID, 8, 2026, models.NewMoneyFromFloat(2000), admin); !errors.Is(err, ErrDuplicateSettlement) {
		t.Fatalf("expected ErrDuplicateSettlement, got %v", err)
	}

	// 其他结算期不受影响
	if _, err := svc.SettleRevenue(profile.ID, 9, 2026, models.NewMoneyFromFloat(2000), admin); err != nil {
		t.Fatalf("next period settle error: %v", err)
	}

	var count int64
	db.Model(&models.RevenueShare{}).Where("influencer_profile_id = ?", profile.ID).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 share rows, got %d", count)
	}
}

func TestSettleRevenueValidation(t *testing.T) {
	svc, db := setupSettlementServiceTest(t, &config.Config{})
	profile := createSettlementTestProfile(t, db)
	admin := Actor{UserID: 1, Role: constants.RoleAdmin}

	if _, err := svc.SettleRevenue(profile.ID, 13, 2026, models.NewMoneyFromFloat(1000), admin); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := svc.SettleRevenue(profile.ID, 8, 2026, models.NewMoneyFromFloat(0), admin); !errors.Is(err, ErrInvalidRevenue) {
		t.Fatalf("expected ErrInvalidRevenue, got %v", err)
	}
	if _, err := svc.SettleRevenue(profile.ID, 8, 2026, models.NewMoneyFromFloat(1000), Actor{UserID: profile.UserID, Role: constants.RoleInfluencer}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestMarkPaidOnce(t *testing.T) {
	svc, db := setupSettlementServiceTest(t, &config.Config{})
	profile := createSettlementTestProfile(t, db)
	admin := Actor{UserID: 1, Role: constants.RoleAdmin}

	payment, err := svc.CreateManualPayment(profile.ID, models.NewMoneyFromFloat(800), "补发上月稿费", admin)
	if err != nil {
		t.Fatalf("create payment error: %v", err)
	}

	if _, err := svc.MarkPaid(payment.ID, "  ", admin); !errors.Is(err, ErrTransactionRefRequired) {
		t.Fatalf("expected ErrTransactionRefRequired, got %v", err)
	}

	paid, err := svc.MarkPaid(payment.ID, "UPI-20260829-0001", admin)
	if err != nil {
		t.Fatalf("mark paid error: %v", err)
	}
	if paid.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected paid, got %s", paid.PaymentStatus)
	}
	if paid.UPITransactionID != "UPI-20260829-0001" {
		t.Fatalf("unexpected transaction ref: %s", paid.UPITransactionID)
	}

	var stored models.Payment
	if err := db.First(&stored, payment.ID).Error; err != nil {
		t.Fatalf("load payment failed: %v", err)
	}
	firstPaidAt := stored.PaidAt

	// 二次打款被拒，打款时间不变
	if _, err := svc.MarkPaid(payment.ID, "UPI-20260829-0002", admin); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
	if err := db.First(&stored, payment.ID).Error; err != nil {
		t.Fatalf("reload payment failed: %v", err)
	}
	if stored.UPITransactionID != "UPI-20260829-0001" {
		t.Fatalf("expected unchanged transaction ref, got %s", stored.UPITransactionID)
	}
	if firstPaidAt == nil || stored.PaidAt == nil || !stored.PaidAt.Equal(*firstPaidAt) {
		t.Fatalf("expected unchanged paid_at, got %v vs %v", stored.PaidAt, firstPaidAt)
	}
}

func TestMarkPaidSyncsRevenueShare(t *testing.T) {
	svc, db := setupSettlementServiceTest(t, &config.Config{})
	profile := createSettlementTestProfile(t, db)
	admin := Actor{UserID: 1, Role: constants.RoleAdmin}

	result, err := svc.SettleRevenue(profile.ID, 8, 2026, models.NewMoneyFromFloat(40000), admin)
	if err != nil {
		t.Fatalf("settle error: %v", err)
	}

	if _, err := svc.MarkPaid(result.Payment.ID, "UPI-REF-1", admin); err != nil {
		t.Fatalf("mark paid error: %v", err)
	}

	var storedShare models.RevenueShare
	if err := db.First(&storedShare, result.RevenueShare.ID).Error; err != nil {
		t.Fatalf("load share failed: %v", err)
	}
	if storedShare.PaymentStatus != constants.PaymentStatusPaid {
		t.Fatalf("expected share marked paid, got %s", storedShare.PaymentStatus)
	}
}

func TestCreateManualPaymentValidation(t *testing.T) {
	svc, db := setupSettlementServiceTest(t, &config.Config{})
	profile := createSettlementTestProfile(t, db)
	admin := Actor{UserID: 1, Role: constants.RoleAdmin}

	if _, err := svc.CreateManualPayment(profile.ID, models.NewMoneyFromFloat(0), "", admin); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate for zero amount, got %v", err)
	}
	if _, err := svc.CreateManualPayment(profile.ID+999, models.NewMoneyFromFloat(100), "", admin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.CreateManualPayment(profile.ID, models.NewMoneyFromFloat(100), "", Actor{UserID: 2, Role: constants.RoleBrand}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
