package repository

import (
	"errors"
	"time"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"

	"gorm.io/gorm"
)

// SubmissionRepository 视频投稿数据访问接口
type SubmissionRepository interface {
	Create(submission *models.VideoSubmission) error
	GetByID(id uint) (*models.VideoSubmission, error)
	UpdateReview(id uint, status, reason string, reviewedAt time.Time, reviewedBy uint) (bool, error)
	List(filter SubmissionListFilter) ([]models.VideoSubmission, int64, error)
	WithTx(tx *gorm.DB) *GormSubmissionRepository
}

// GormSubmissionRepository GORM 实现
type GormSubmissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository 创建投稿仓库
func NewSubmissionRepository(db *gorm.DB) *GormSubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSubmissionRepository) WithTx(tx *gorm.DB) *GormSubmissionRepository {
	if tx == nil {
		return r
	}
	return &GormSubmissionRepository{db: tx}
}

// Create 创建投稿
func (r *GormSubmissionRepository) Create(submission *models.VideoSubmission) error {
	return r.db.Create(submission).Error
}

// GetByID 根据 ID 获取投稿
func (r *GormSubmissionRepository) GetByID(id uint) (*models.VideoSubmission, error) {
	var submission models.VideoSubmission
	if err := r.db.First(&submission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &submission, nil
}

// UpdateReview 写入审核结论；仅 pending 状态可变更，返回是否实际写入
// 重放同一审核请求时返回 false，由上层转换为冲突错误，保证不会重复产生结算单
func (r *GormSubmissionRepository) UpdateReview(id uint, status, reason string, reviewedAt time.Time, reviewedBy uint) (bool, error) {
	result := r.db.Model(&models.VideoSubmission{}).
		Where("id = ? AND approval_status = ?", id, constants.SubmissionStatusPending).
		Updates(map[string]interface{}{
			"approval_status":  status,
			"rejection_reason": reason,
			"reviewed_at":      reviewedAt,
			"reviewed_by":      reviewedBy,
			"updated_at":       reviewedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List 投稿列表
func (r *GormSubmissionRepository) List(filter SubmissionListFilter) ([]models.VideoSubmission, int64, error) {
	query := r.db.Model(&models.VideoSubmission{})

	if filter.InfluencerProfileID != 0 {
		query = query.Where("influencer_profile_id = ?", filter.InfluencerProfileID)
	}
	if filter.ApprovalStatus != "" {
		query = query.Where("approval_status = ?", filter.ApprovalStatus)
	}
	if filter.LinkType != "" {
		query = query.Where("link_type = ?", filter.LinkType)
	}
	if filter.LinkID != 0 {
		query = query.Where("link_id = ?", filter.LinkID)
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

	var submissions []models.VideoSubmission
	if err := query.Order("id desc").Find(&submissions).Error; err != nil {
		return nil, 0, err
	}
	return submissions, total, nil
}
