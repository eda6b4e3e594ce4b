package models

import (
	"time"

	"gorm.io/gorm"
)

// CampaignApplication 活动报名表；同一达人对同一活动仅允许一条记录
type CampaignApplication struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                                                              // 主键
	InfluencerProfileID uint           `gorm:"not null;index;index:idx_campaign_application_unique,unique" json:"influencer_profile_id"`          // 达人ID
	CampaignID          uint           `gorm:"not null;index;index:idx_campaign_application_unique,unique" json:"campaign_id"`                    // 活动ID
	BidAmount           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"bid_amount"`                                           // 报价
	Message             string         `gorm:"type:text" json:"message"`                                                                          // 自荐说明
	Status              string         `gorm:"index;not null;default:'pending'" json:"status"`                                                    // 报名状态
	DecidedAt           *time.Time     `gorm:"index" json:"decided_at"`                                                                           // 审批时间
	DecidedBy           *uint          `gorm:"index" json:"decided_by"`                                                                           // 审批人用户ID
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                                                                           // 创建时间
	UpdatedAt           time.Time      `gorm:"index" json:"updated_at"`                                                                           // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                                                                    // 软删除时间

	InfluencerProfile InfluencerProfile `gorm:"foreignKey:InfluencerProfileID" json:"influencer_profile,omitempty"` // 达人
	Campaign          Campaign          `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`                    // 活动
}

// TableName 指定表名
func (CampaignApplication) TableName() string {
	return "campaign_applications"
}
