package models

import (
	"time"

	"gorm.io/gorm"
)

// VideoSubmission 视频投稿表
// 关联目标用 link_type + link_id 表达（none/task_assignment/campaign），互斥关系由类型保证
type VideoSubmission struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                    // 主键
	InfluencerProfileID uint           `gorm:"index;not null" json:"influencer_profile_id"`             // 达人ID
	Title               string         `gorm:"not null" json:"title"`                                   // 标题
	Description         string         `gorm:"type:text" json:"description"`                            // 描述
	VideoURL            string         `gorm:"type:text;not null" json:"video_url"`                     // 视频地址（仅存 URL）
	LinkType            string         `gorm:"index;not null;default:'none'" json:"link_type"`          // 关联类型
	LinkID              uint           `gorm:"index;not null;default:0" json:"link_id"`                 // 关联对象ID（none 时为 0）
	ApprovalStatus      string         `gorm:"index;not null;default:'pending'" json:"approval_status"` // 审核状态
	RejectionReason     string         `gorm:"type:varchar(255)" json:"rejection_reason"`               // 驳回原因（仅驳回时填写）
	ReviewedAt          *time.Time     `gorm:"index" json:"reviewed_at"`                                // 审核时间
	ReviewedBy          *uint          `gorm:"index" json:"reviewed_by"`                                // 审核人用户ID
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt           time.Time      `gorm:"index" json:"updated_at"`                                 // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	InfluencerProfile InfluencerProfile `gorm:"foreignKey:InfluencerProfileID" json:"influencer_profile,omitempty"` // 达人
}

// TableName 指定表名
func (VideoSubmission) TableName() string {
	return "video_submissions"
}
