package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment 结算单表；仅由投稿审核通过、人工补付或收益分成结算创建，从不删除
type Payment struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                // 主键
	InfluencerProfileID uint           `gorm:"index;not null" json:"influencer_profile_id"`         // 达人ID
	PaymentType         string         `gorm:"index;not null" json:"payment_type"`                  // 类型（fixed/revenue_share）
	PaymentStatus       string         `gorm:"index;not null;default:'pending'" json:"payment_status"` // 状态（pending/paid）
	Amount              Money          `gorm:"type:decimal(20,2);not null" json:"amount"`           // 金额
	SubmissionID        *uint          `gorm:"index" json:"submission_id,omitempty"`                // 触发投稿ID
	TaskApplicationID   *uint          `gorm:"index" json:"task_application_id,omitempty"`          // 关联任务申领ID
	RevenueShareID      *uint          `gorm:"index" json:"revenue_share_id,omitempty"`             // 关联分成记录ID
	Notes               string         `gorm:"type:varchar(255)" json:"notes"`                      // 备注
	UPITransactionID    string         `gorm:"column:upi_transaction_id;index" json:"upi_transaction_id"` // UPI 交易流水号（打款后填写）
	PaidAt              *time.Time     `gorm:"index" json:"paid_at"`                                // 打款时间
	PaidBy              *uint          `gorm:"index" json:"paid_by"`                                // 打款操作人用户ID
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt           time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间

	InfluencerProfile InfluencerProfile `gorm:"foreignKey:InfluencerProfileID" json:"influencer_profile,omitempty"` // 达人
}

// TableName 指定表名
func (Payment) TableName() string {
	return "payments"
}
