package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"

	"gorm.io/gorm"
)

// TaskRepository 任务与任务申领数据访问接口
type TaskRepository interface {
	Create(task *models.Task) error
	GetByID(id uint) (*models.Task, error)
	List(filter TaskListFilter) ([]models.Task, int64, error)

	CreateApplication(application *models.TaskApplication) error
	GetApplicationByID(id uint) (*models.TaskApplication, error)
	GetPendingApplicationByPair(influencerProfileID, taskID uint) (*models.TaskApplication, error)
	UpdateApplicationDecision(id uint, status string, decidedAt time.Time, decidedBy uint) (bool, error)
	UpdateApplicationStatus(id uint, fromStatus, toStatus string, now time.Time) (bool, error)
	ListApplications(filter TaskApplicationListFilter) ([]models.TaskApplication, int64, error)
	WithTx(tx *gorm.DB) *GormTaskRepository
}

// GormTaskRepository GORM 实现
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository 创建任务仓库
func NewTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTaskRepository) WithTx(tx *gorm.DB) *GormTaskRepository {
	if tx == nil {
		return r
	}
	return &GormTaskRepository{db: tx}
}

// Create 创建任务
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// GetByID 根据 ID 获取任务
func (r *GormTaskRepository) GetByID(id uint) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

// List 任务列表
func (r *GormTaskRepository) List(filter TaskListFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{})

	if filter.Month != "" {
		query = query.Where("month = ?", filter.Month)
	}
	if filter.OnlyActive {
		query = query.Where("is_active = ?", true)
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var tasks []models.Task
	if err := query.Order("id desc").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// CreateApplication 创建任务申领
func (r *GormTaskRepository) CreateApplication(application *models.TaskApplication) error {
	return r.db.Create(application).Error
}

// GetApplicationByID 根据 ID 获取任务申领
func (r *GormTaskRepository) GetApplicationByID(id uint) (*models.TaskApplication, error) {
	var application models.TaskApplication
	if err := r.db.First(&application, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

// GetPendingApplicationByPair 获取（达人, 任务）未决申领
func (r *GormTaskRepository) GetPendingApplicationByPair(influencerProfileID, taskID uint) (*models.TaskApplication, error) {
	var application models.TaskApplication
	result := r.db.Where(
		"influencer_profile_id = ? AND task_id = ? AND status IN ?",
		influencerProfileID,
		taskID,
		[]string{constants.TaskApplicationStatusPendingApproval, constants.TaskApplicationStatusAssigned},
	).Limit(1).Find(&application)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &application, nil
}

// UpdateApplicationDecision 写入申领审批结论；仅待审批状态可变更，返回是否实际写入
func (r *GormTaskRepository) UpdateApplicationDecision(id uint, status string, decidedAt time.Time, decidedBy uint) (bool, error) {
	result := r.db.Model(&models.TaskApplication{}).
		Where("id = ? AND status = ?", id, constants.TaskApplicationStatusPendingApproval).
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

// UpdateApplicationStatus 条件状态迁移（用于投稿审核联动），可安全重放
func (r *GormTaskRepository) UpdateApplicationStatus(id uint, fromStatus, toStatus string, now time.Time) (bool, error) {
	result := r.db.Model(&models.TaskApplication{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(map[string]interface{}{
			"status":     toStatus,
			"updated_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListApplications 任务申领列表
func (r *GormTaskRepository) ListApplications(filter TaskApplicationListFilter) ([]models.TaskApplication, int64, error) {
	query := r.db.Model(&models.TaskApplication{})

	if filter.TaskID != 0 {
		query = query.Where("task_id = ?", filter.TaskID)
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

	var applications []models.TaskApplication
	if err := query.Order("id desc").Find(&applications).Error; err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}
