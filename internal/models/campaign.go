package models

import (
	"time"

	"gorm.io/gorm"
)

// Campaign 品牌推广活动表
type Campaign struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                   // 主键
	BrandProfileID uint           `gorm:"index;not null" json:"brand_profile_id"`                 // 所属品牌ID
	Title          string         `gorm:"not null" json:"title"`                                  // 标题
	Requirements   string         `gorm:"type:text" json:"requirements"`                          // 内容要求
	Budget         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"budget"`    // 预算
	Deadline       *time.Time     `gorm:"index" json:"deadline"`                                  // 截止时间
	Status         string         `gorm:"index;not null;default:'active'" json:"status"`          // 活动状态
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`                                // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                         // 软删除时间

	BrandProfile BrandProfile `gorm:"foreignKey:BrandProfileID" json:"brand_profile,omitempty"` // 品牌方
}

// TableName 指定表名
func (Campaign) TableName() string {
	return "campaigns"
}
