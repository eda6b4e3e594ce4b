package models

import (
	"time"

	"gorm.io/gorm"
)

// InfluencerProfile 达人档案表
type InfluencerProfile struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                    // 主键
	UserID          uint           `gorm:"uniqueIndex;not null" json:"user_id"`                     // 关联用户ID
	DisplayName     string         `gorm:"not null" json:"display_name"`                            // 展示名称
	Bio             string         `gorm:"type:text" json:"bio"`                                    // 简介
	FollowerCount   int64          `gorm:"not null;default:0" json:"follower_count"`                // 粉丝数
	InstagramHandle string         `gorm:"default:''" json:"instagram_handle"`                      // Instagram 账号
	YoutubeChannel  string         `gorm:"default:''" json:"youtube_channel"`                       // YouTube 频道
	IDProofURL      string         `gorm:"type:text;not null" json:"id_proof_url"`                  // 身份证明文件地址（仅存 URL）
	UPIID           string         `gorm:"column:upi_id;not null" json:"upi_id"`                    // UPI 收款账号
	ApprovalStatus  string         `gorm:"index;not null;default:'pending'" json:"approval_status"` // 审核状态
	RejectionReason string         `gorm:"type:varchar(255)" json:"rejection_reason"`               // 驳回原因
	VideoRate       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"video_rate"` // 单视频报价（首次核价前为 0）
	ApprovedAt      *time.Time     `gorm:"index" json:"approved_at"`                                // 审核通过时间
	ApprovedBy      *uint          `gorm:"index" json:"approved_by"`                                // 审核人用户ID
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`                                 // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 账号信息
}

// TableName 指定表名
func (InfluencerProfile) TableName() string {
	return "influencer_profiles"
}
