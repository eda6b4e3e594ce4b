package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"

	"gorm.io/gorm"
)

// InfluencerRepository 达人档案数据访问接口
type InfluencerRepository interface {
	Create(profile *models.InfluencerProfile) error
	GetByID(id uint) (*models.InfluencerProfile, error)
	GetByUserID(userID uint) (*models.InfluencerProfile, error)
	UpdateDecision(id uint, status, reason string, decidedAt time.Time, decidedBy uint) error
	UpdateRate(id uint, rate models.Money, now time.Time) error
	AssignRateIfUnset(id uint, rate models.Money, now time.Time) (bool, error)
	List(filter InfluencerListFilter) ([]models.InfluencerProfile, int64, error)
	WithTx(tx *gorm.DB) *GormInfluencerRepository
}

// GormInfluencerRepository GORM 实现
type GormInfluencerRepository struct {
	db *gorm.DB
}

// NewInfluencerRepository 创建达人仓库
func NewInfluencerRepository(db *gorm.DB) *GormInfluencerRepository {
	return &GormInfluencerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormInfluencerRepository) WithTx(tx *gorm.DB) *GormInfluencerRepository {
	if tx == nil {
		return r
	}
	return &GormInfluencerRepository{db: tx}
}

// Create 创建达人档案
func (r *GormInfluencerRepository) Create(profile *models.InfluencerProfile) error {
	return r.db.Create(profile).Error
}

// GetByID 根据 ID 获取达人档案
func (r *GormInfluencerRepository) GetByID(id uint) (*models.InfluencerProfile, error) {
	var profile models.InfluencerProfile
	if err := r.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByUserID 根据用户 ID 获取达人档案
func (r *GormInfluencerRepository) GetByUserID(userID uint) (*models.InfluencerProfile, error) {
	if userID == 0 {
		return nil, nil
	}
	var profile models.InfluencerProfile
	result := r.db.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &profile, nil
}

// UpdateDecision 写入审核结论
func (r *GormInfluencerRepository) UpdateDecision(id uint, status, reason string, decidedAt time.Time, decidedBy uint) error {
	updates := map[string]interface{}{
		"approval_status":  status,
		"rejection_reason": reason,
		"updated_at":       decidedAt,
	}
	if status == constants.InfluencerStatusApproved {
		updates["approved_at"] = decidedAt
		updates["approved_by"] = decidedBy
	}
	return r.db.Model(&models.InfluencerProfile{}).Where("id = ?", id).Updates(updates).Error
}

// UpdateRate 覆盖达人单视频报价
func (r *GormInfluencerRepository) UpdateRate(id uint, rate models.Money, now time.Time) error {
	return r.db.Model(&models.InfluencerProfile{}).Where("id = ?", id).Updates(map[string]interface{}{
		"video_rate": rate,
		"updated_at": now,
	}).Error
}

// AssignRateIfUnset 仅当报价尚未核定时写入（条件更新，保证首次核价只发生一次）
func (r *GormInfluencerRepository) AssignRateIfUnset(id uint, rate models.Money, now time.Time) (bool, error) {
	result := r.db.Model(&models.InfluencerProfile{}).
		Where("id = ? AND video_rate = 0", id).
		Updates(map[string]interface{}{
			"video_rate": rate,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List 达人列表
func (r *GormInfluencerRepository) List(filter InfluencerListFilter) ([]models.InfluencerProfile, int64, error) {
	query := r.db.Model(&models.InfluencerProfile{})

	if filter.ApprovalStatus != "" {
		query = query.Where("approval_status = ?", filter.ApprovalStatus)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("display_name LIKE ? OR instagram_handle LIKE ? OR youtube_channel LIKE ?", like, like, like)
	}
	if filter.MinFollowers > 0 {
		query = query.Where("follower_count >= ?", filter.MinFollowers)
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

	var profiles []models.InfluencerProfile
	if err := query.Order("id desc").Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}
