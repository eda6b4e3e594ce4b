package models

import (
	"time"

	"gorm.io/gorm"
)

// Task 平台运营任务表（月度、非品牌专属）
type Task struct {
	ID          uint           `gorm:"primarykey" json:"id"`                                // 主键
	Title       string         `gorm:"not null" json:"title"`                               // 标题
	Description string         `gorm:"type:text" json:"description"`                        // 描述
	Guidelines  string         `gorm:"type:text" json:"guidelines"`                         // 制作规范
	Reward      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"reward"` // 名义报酬
	Month       string         `gorm:"index" json:"month"`                                  // 所属月份（YYYY-MM）
	IsActive    bool           `gorm:"index;not null;default:true" json:"is_active"`        // 是否开放申领
	CreatedBy   uint           `gorm:"index" json:"created_by"`                             // 创建人用户ID
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (Task) TableName() string {
	return "tasks"
}
