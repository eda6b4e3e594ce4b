package repository

import (
	"errors"

	"github.com/creatorlink/internal/models"

	"gorm.io/gorm"
)

// BrandRepository 品牌方档案数据访问接口
type BrandRepository interface {
	Create(profile *models.BrandProfile) error
	Update(profile *models.BrandProfile) error
	GetByID(id uint) (*models.BrandProfile, error)
	GetByUserID(userID uint) (*models.BrandProfile, error)
}

// GormBrandRepository GORM 实现
type GormBrandRepository struct {
	db *gorm.DB
}

// NewBrandRepository 创建品牌方仓库
func NewBrandRepository(db *gorm.DB) *GormBrandRepository {
	return &GormBrandRepository{db: db}
}

// Create 创建品牌方档案
func (r *GormBrandRepository) Create(profile *models.BrandProfile) error {
	return r.db.Create(profile).Error
}

// Update 更新品牌方档案（仅限档案所有者调用路径）
func (r *GormBrandRepository) Update(profile *models.BrandProfile) error {
	return r.db.Save(profile).Error
}

// GetByID 根据 ID 获取品牌方档案
func (r *GormBrandRepository) GetByID(id uint) (*models.BrandProfile, error) {
	var profile models.BrandProfile
	if err := r.db.First(&profile, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// GetByUserID 根据用户 ID 获取品牌方档案
func (r *GormBrandRepository) GetByUserID(userID uint) (*models.BrandProfile, error) {
	if userID == 0 {
		return nil, nil
	}
	var profile models.BrandProfile
	result := r.db.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &profile, nil
}
