package service

import (
	"errors"
	"strings"
	"time"

	"github.com/creatorlink/internal/config"
	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"

	"gorm.io/gorm"
)

// SettlementService 结算服务：人工补付、打款确认与月度收益分成
type SettlementService struct {
	cfg                 *config.Config
	paymentRepo         repository.PaymentRepository
	influencerRepo      repository.InfluencerRepository
	notificationService *NotificationService
}

// NewSettlementService 创建结算服务
func NewSettlementService(cfg *config.Config, paymentRepo repository.PaymentRepository, influencerRepo repository.InfluencerRepository, notificationService *NotificationService) *SettlementService {
	return &SettlementService{
		cfg:                 cfg,
		paymentRepo:         paymentRepo,
		influencerRepo:      influencerRepo,
		notificationService: notificationService,
	}
}

// revenueSharePercent 收益分成比例；默认 5%
func (s *SettlementService) revenueSharePercent() int {
	if s.cfg != nil && s.cfg.Settlement.RevenueSharePercent > 0 {
		return s.cfg.Settlement.RevenueSharePercent
	}
	return 5
}

// CreateManualPayment 管理员为达人补录一笔带外固定结算单
func (s *SettlementService) CreateManualPayment(influencerProfileID uint, amount models.Money, notes string, actor Actor) (*models.Payment, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidRate
	}

	profile, err := s.influencerRepo.GetByID(influencerProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	payment := &models.Payment{
		InfluencerProfileID: profile.ID,
		PaymentType:         constants.PaymentTypeFixed,
		PaymentStatus:       constants.PaymentStatusPending,
		Amount:              amount,
		Notes:               strings.TrimSpace(notes),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// MarkPaid 打款确认；流水号必填，状态条件更新保证不会重复打款
func (s *SettlementService) MarkPaid(paymentID uint, transactionRef string, actor Actor) (*models.Payment, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	transactionRef = strings.TrimSpace(transactionRef)
	if transactionRef == "" {
		return nil, ErrTransactionRefRequired
	}

	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		paymentTx := s.paymentRepo.WithTx(tx)

		updated, err := paymentTx.MarkPaid(paymentID, transactionRef, now, actor.UserID)
		if err != nil {
			return err
		}
		if !updated {
			return ErrAlreadyPaid
		}
		if payment.RevenueShareID != nil {
			if err := paymentTx.UpdateRevenueShareStatus(*payment.RevenueShareID, constants.PaymentStatusPaid, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	payment.PaymentStatus = constants.PaymentStatusPaid
	payment.UPITransactionID = transactionRef
	payment.PaidAt = &now
	paidBy := actor.UserID
	payment.PaidBy = &paidBy

	if profile, err := s.influencerRepo.GetByID(payment.InfluencerProfileID); err == nil && profile != nil {
		s.notificationService.Notify(profile.UserID, constants.NotificationEventPaymentPaid, models.JSON{
			"payment_id": payment.ID,
			"amount":     payment.Amount.String(),
		})
	}
	return payment, nil
}

// SettleResult 月度分成结算结果
type SettleResult struct {
	RevenueShare *models.RevenueShare `json:"revenue_share"`
	Payment      *models.Payment      `json:"payment"`
}

// SettleRevenue 月度收益分成结算；分成金额为总收入的固定比例，
// 分成记录与结算单在同一事务内成对创建，同一结算期只允许结算一次
func (s *SettlementService) SettleRevenue(influencerProfileID uint, month, year int, totalRevenue models.Money, actor Actor) (*SettleResult, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if month < 1 || month > 12 || year < 2000 {
		return nil, ErrInvalidPeriod
	}
	if !totalRevenue.IsPositive() {
		return nil, ErrInvalidRevenue
	}

	profile, err := s.influencerRepo.GetByID(influencerProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	exist, err := s.paymentRepo.GetRevenueShareByPeriod(profile.ID, month, year)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrDuplicateSettlement
	}

	shareAmount := totalRevenue.Percent(s.revenueSharePercent())

	now := time.Now()
	share := &models.RevenueShare{
		InfluencerProfileID:    profile.ID,
		Month:                  month,
		Year:                   year,
		RevenueFromLeads:       totalRevenue,
		PerformanceShareAmount: shareAmount,
		PaymentStatus:          constants.PaymentStatusPending,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	payment := &models.Payment{
		InfluencerProfileID: profile.ID,
		PaymentType:         constants.PaymentTypeRevenueShare,
		PaymentStatus:       constants.PaymentStatusPending,
		Amount:              shareAmount,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		paymentTx := s.paymentRepo.WithTx(tx)

		if err := paymentTx.CreateRevenueShare(share); err != nil {
			// 唯一索引兜底并发下的重复结算
			if isDuplicatedKey(err) {
				return ErrDuplicateSettlement
			}
			return err
		}
		shareID := share.ID
		payment.RevenueShareID = &shareID
		if err := paymentTx.Create(payment); err != nil {
			return err
		}
		paymentID := payment.ID
		share.PaymentID = &paymentID
		return tx.Model(&models.RevenueShare{}).Where("id = ?", share.ID).Update("payment_id", payment.ID).Error
	})
	if err != nil {
		return nil, err
	}

	s.notificationService.Notify(profile.UserID, constants.NotificationEventRevenueSettled, models.JSON{
		"revenue_share_id": share.ID,
		"amount":           shareAmount.String(),
		"month":            month,
		"year":             year,
	})
	return &SettleResult{RevenueShare: share, Payment: payment}, nil
}

// GetPayment 获取结算单
func (s *SettlementService) GetPayment(paymentID uint) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, ErrNotFound
	}
	return payment, nil
}

// ListPayments 结算单列表；达人只能看自己的结算单
func (s *SettlementService) ListPayments(filter repository.PaymentListFilter, actor Actor) ([]models.Payment, int64, error) {
	switch {
	case actor.IsAdmin():
	case actor.IsInfluencer():
		profile, err := s.influencerRepo.GetByUserID(actor.UserID)
		if err != nil {
			return nil, 0, err
		}
		if profile == nil {
			return nil, 0, ErrNotFound
		}
		filter.InfluencerProfileID = profile.ID
	default:
		return nil, 0, ErrUnauthorized
	}
	return s.paymentRepo.List(filter)
}

// ListRevenueShares 分成记录列表；达人只能看自己的记录
func (s *SettlementService) ListRevenueShares(filter repository.RevenueShareListFilter, actor Actor) ([]models.RevenueShare, int64, error) {
	switch {
	case actor.IsAdmin():
	case actor.IsInfluencer():
		profile, err := s.influencerRepo.GetByUserID(actor.UserID)
		if err != nil {
			return nil, 0, err
		}
		if profile == nil {
			return nil, 0, ErrNotFound
		}
		filter.InfluencerProfileID = profile.ID
	default:
		return nil, 0, ErrUnauthorized
	}
	return s.paymentRepo.ListRevenueShares(filter)
}

func isDuplicatedKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
