package models

import (
	"time"

	"gorm.io/gorm"
)

// RevenueShare 月度收益分成记录；同一达人同一月份唯一，与结算单一一对应
type RevenueShare struct {
	ID                    uint           `gorm:"primarykey" json:"id"`                                                                      // 主键
	InfluencerProfileID   uint           `gorm:"not null;index;index:idx_revenue_share_unique,unique" json:"influencer_profile_id"`         // 达人ID
	Month                 int            `gorm:"not null;index:idx_revenue_share_unique,unique" json:"month"`                               // 月份（1-12）
	Year                  int            `gorm:"not null;index:idx_revenue_share_unique,unique" json:"year"`                                // 年份
	RevenueFromLeads      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"revenue_from_leads"`                           // 线索产生的总收入
	PerformanceShareAmount Money         `gorm:"type:decimal(20,2);not null;default:0" json:"performance_share_amount"`                     // 达人分成金额（固定 5%）
	PaymentStatus         string         `gorm:"index;not null;default:'pending'" json:"payment_status"`                                    // 结算状态（与结算单同步）
	PaymentID             *uint          `gorm:"index" json:"payment_id,omitempty"`                                                         // 关联结算单ID
	CreatedAt             time.Time      `gorm:"index" json:"created_at"`                                                                   // 创建时间
	UpdatedAt             time.Time      `gorm:"index" json:"updated_at"`                                                                   // 更新时间
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`                                                                            // 软删除时间

	InfluencerProfile InfluencerProfile `gorm:"foreignKey:InfluencerProfileID" json:"influencer_profile,omitempty"` // 达人
}

// TableName 指定表名
func (RevenueShare) TableName() string {
	return "revenue_shares"
}
