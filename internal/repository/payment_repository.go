package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"

	"gorm.io/gorm"
)

// PaymentRepository 结算单与收益分成数据访问接口
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetBySubmissionID(submissionID uint) (*models.Payment, error)
	MarkPaid(id uint, transactionRef string, paidAt time.Time, paidBy uint) (bool, error)
	List(filter PaymentListFilter) ([]models.Payment, int64, error)

	CreateRevenueShare(share *models.RevenueShare) error
	GetRevenueShareByID(id uint) (*models.RevenueShare, error)
	GetRevenueShareByPeriod(influencerProfileID uint, month, year int) (*models.RevenueShare, error)
	UpdateRevenueShareStatus(id uint, status string, now time.Time) error
	ListRevenueShares(filter RevenueShareListFilter) ([]models.RevenueShare, int64, error)
	WithTx(tx *gorm.DB) *GormPaymentRepository
}

// GormPaymentRepository GORM 实现
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository 创建结算仓库
func NewPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// WithTx 绑定事务
func (r *GormPaymentRepository) WithTx(tx *gorm.DB) *GormPaymentRepository {
	if tx == nil {
		return r
	}
	return &GormPaymentRepository{db: tx}
}

// Create 创建结算单
func (r *GormPaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// GetByID 根据 ID 获取结算单
func (r *GormPaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetBySubmissionID 根据投稿 ID 获取结算单
func (r *GormPaymentRepository) GetBySubmissionID(submissionID uint) (*models.Payment, error) {
	if submissionID == 0 {
		return nil, nil
	}
	var payment models.Payment
	result := r.db.Where("submission_id = ?", submissionID).Limit(1).Find(&payment)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &payment, nil
}

// MarkPaid 标记打款完成；仅 pending 状态可变更，返回是否实际写入
func (r *GormPaymentRepository) MarkPaid(id uint, transactionRef string, paidAt time.Time, paidBy uint) (bool, error) {
	result := r.db.Model(&models.Payment{}).
		Where("id = ? AND payment_status = ?", id, constants.PaymentStatusPending).
		Updates(map[string]interface{}{
			"payment_status":     constants.PaymentStatusPaid,
			"upi_transaction_id": strings.TrimSpace(transactionRef),
			"paid_at":            paidAt,
			"paid_by":            paidBy,
			"updated_at":         paidAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List 结算单列表
func (r *GormPaymentRepository) List(filter PaymentListFilter) ([]models.Payment, int64, error) {
	query := r.db.Model(&models.Payment{})

	if filter.InfluencerProfileID != 0 {
		query = query.Where("influencer_profile_id = ?", filter.InfluencerProfileID)
	}
	if filter.PaymentType != "" {
		query = query.Where("payment_type = ?", filter.PaymentType)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var payments []models.Payment
	if err := query.Order("id desc").Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

// CreateRevenueShare 创建收益分成记录；唯一索引兜底防止同一期重复结算
func (r *GormPaymentRepository) CreateRevenueShare(share *models.RevenueShare) error {
	return r.db.Create(share).Error
}

// GetRevenueShareByID 根据 ID 获取收益分成记录
func (r *GormPaymentRepository) GetRevenueShareByID(id uint) (*models.RevenueShare, error) {
	var share models.RevenueShare
	if err := r.db.First(&share, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &share, nil
}

// GetRevenueShareByPeriod 根据（达人, 月, 年）获取收益分成记录
func (r *GormPaymentRepository) GetRevenueShareByPeriod(influencerProfileID uint, month, year int) (*models.RevenueShare, error) {
	var share models.RevenueShare
	result := r.db.Where("influencer_profile_id = ? AND month = ? AND year = ?", influencerProfileID, month, year).
		Limit(1).Find(&share)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &share, nil
}

// UpdateRevenueShareStatus 同步收益分成记录的结算状态
func (r *GormPaymentRepository) UpdateRevenueShareStatus(id uint, status string, now time.Time) error {
	return r.db.Model(&models.RevenueShare{}).Where("id = ?", id).Updates(map[string]interface{}{
		"payment_status": status,
		"updated_at":     now,
	}).Error
}

// ListRevenueShares 收益分成列表
func (r *GormPaymentRepository) ListRevenueShares(filter RevenueShareListFilter) ([]models.RevenueShare, int64, error) {
	query := r.db.Model(&models.RevenueShare{})

	if filter.InfluencerProfileID != 0 {
		query = query.Where("influencer_profile_id = ?", filter.InfluencerProfileID)
	}
	if filter.Month != 0 {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.Year != 0 {
		query = query.Where("year = ?", filter.Year)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var shares []models.RevenueShare
	if err := query.Order("year desc, month desc, id desc").Find(&shares).Error; err != nil {
		return nil, 0, err
	}
	return shares, total, nil
}
