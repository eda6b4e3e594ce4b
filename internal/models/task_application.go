package models

import (
	"time"

	"gorm.io/gorm"
)

// TaskApplication 任务申领表（审批通过即为任务指派）
type TaskApplication struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                            // 主键
	InfluencerProfileID uint           `gorm:"index;not null" json:"influencer_profile_id"`                     // 达人ID
	TaskID              uint           `gorm:"index;not null" json:"task_id"`                                   // 任务ID
	Pitch               string         `gorm:"type:text" json:"pitch"`                                          // 自荐说明
	RequestedRate       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"requested_rate"`     // 达人期望报价（区别于任务名义报酬）
	Status              string         `gorm:"index;not null;default:'pending_approval'" json:"status"`         // 申领状态
	DecidedAt           *time.Time     `gorm:"index" json:"decided_at"`                                         // 审批时间
	DecidedBy           *uint          `gorm:"index" json:"decided_by"`                                         // 审批人用户ID
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt           time.Time      `gorm:"index" json:"updated_at"`                                         // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间

	InfluencerProfile InfluencerProfile `gorm:"foreignKey:InfluencerProfileID" json:"influencer_profile,omitempty"` // 达人
	Task              Task              `gorm:"foreignKey:TaskID" json:"task,omitempty"`                            // 任务
}

// TableName 指定表名
func (TaskApplication) TableName() string {
	return "task_applications"
}
