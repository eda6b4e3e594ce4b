package models

import (
	"time"

	"gorm.io/gorm"
)

// BrandProfile 品牌方档案表
type BrandProfile struct {
	ID           uint           `gorm:"primarykey" json:"id"`                // 主键
	UserID       uint           `gorm:"uniqueIndex;not null" json:"user_id"` // 关联用户ID
	CompanyName  string         `gorm:"not null" json:"company_name"`        // 公司名称
	Website      string         `gorm:"default:''" json:"website"`           // 官网
	LogoURL      string         `gorm:"type:text" json:"logo_url"`           // Logo 地址
	ContactName  string         `gorm:"default:''" json:"contact_name"`      // 联系人
	ContactPhone string         `gorm:"default:''" json:"contact_phone"`     // 联系电话
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`             // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`             // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                      // 软删除时间

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"` // 账号信息
}

// TableName 指定表名
func (BrandProfile) TableName() string {
	return "brand_profiles"
}
