package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"

	"gorm.io/gorm"
)

// CampaignRepository 活动与活动报名数据访问接口
type CampaignRepository interface {
	Create(campaign *models.Campaign) error
	GetByID(id uint) (*models.Campaign, error)
	UpdateStatus(id uint, status string, now time.Time) error
	List(filter CampaignListFilter) ([]models.Campaign, int64, error)

	CreateApplication(application *models.CampaignApplication) error
	GetApplicationByID(id uint) (*models.CampaignApplication, error)
	GetApplicationByPair(influencerProfileID, campaignID uint) (*models.CampaignApplication, error)
	UpdateApplicationDecision(id uint, status string, decidedAt time.Time, decidedBy uint) (bool, error)
	ListApplications(filter CampaignApplicationListFilter) ([]models.CampaignApplication, int64, error)
}

// GormCampaignRepository GORM 实现
type GormCampaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository 创建活动仓库
func NewCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{db: db}
}

// Create 创建活动
func (r *GormCampaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// GetByID 根据 ID 获取活动
func (r *GormCampaignRepository) GetByID(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.First(&campaign, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

// UpdateStatus 更新活动状态
func (r *GormCampaignRepository) UpdateStatus(id uint, status string, now time.Time) error {
	return r.db.Model(&models.Campaign{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}).Error
}

// List 活动列表
func (r *GormCampaignRepository) List(filter CampaignListFilter) ([]models.Campaign, int64, error) {
	query := r.db.Model(&models.Campaign{})

	if filter.BrandProfileID != 0 {
		query = query.Where("brand_profile_id = ?", filter.BrandProfileID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OnlyOpen {
		query = query.Where("status = ?", constants.CampaignStatusActive)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var campaigns []models.Campaign
	if err := query.Order("id desc").Find(&campaigns).Error; err != nil {
		return nil, 0, err
	}
	return campaigns, total, nil
}

// CreateApplication 创建活动报名；唯一索引兜底防止同一达人重复报名
func (r *GormCampaignRepository) CreateApplication(application *models.CampaignApplication) error {
	return r.db.Create(application).Error
}

// GetApplicationByID 根据 ID 获取活动报名
func (r *GormCampaignRepository) GetApplicationByID(id uint) (*models.CampaignApplication, error) {
	var application models.CampaignApplication
	if err := r.db.First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

// GetApplicationByPair 根据（达人, 活动）获取报名记录
func (r *GormCampaignRepository) GetApplicationByPair(influencerProfileID, campaignID uint) (*models.CampaignApplication, error) {
	var application models.CampaignApplication
	result := r.db.Where("influencer_profile_id = ? AND campaign_id = ?", influencerProfileID, campaignID).
		Limit(1).Find(&application)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &application, nil
}

// UpdateApplicationDecision 写入报名审批结论；仅 pending 状态可变更，返回是否实际写入
func (r *GormCampaignRepository) UpdateApplicationDecision(id uint, status string, decidedAt time.Time, decidedBy uint) (bool, error) {
	result := r.db.Model(&models.CampaignApplication{}).
		Where("id = ? AND status = ?", id, constants.CampaignApplicationStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_at": decidedAt,
			"decided_by": decidedBy,
			"updated_at": decidedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListApplications 活动报名列表
func (r *GormCampaignRepository) ListApplications(filter CampaignApplicationListFilter) ([]models.CampaignApplication, int64, error) {
	query := r.db.Model(&models.CampaignApplication{})

	if filter.CampaignID != 0 {
		query = query.Where("campaign_id = ?", filter.CampaignID)
	}
	if filter.InfluencerProfileID != 0 {
		query = query.Where("influencer_profile_id = ?", filter.InfluencerProfileID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var applications []models.CampaignApplication
	if err := query.Order("id desc").Find(&applications).Error; err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}
