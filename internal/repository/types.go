package repository

import "time"

// InfluencerListFilter 查询达人列表的过滤条件
type InfluencerListFilter struct {
	Page           int
	PageSize       int
	ApprovalStatus string
	Keyword        string
	MinFollowers   int64
	CreatedFrom    *time.Time
	CreatedTo      *time.Time
}

// CampaignListFilter 查询活动列表的过滤条件
type CampaignListFilter struct {
	Page           int
	PageSize       int
	BrandProfileID uint
	Status         string
	Keyword        string
	OnlyOpen       bool
}

// CampaignApplicationListFilter 查询活动报名列表的过滤条件
type CampaignApplicationListFilter struct {
	Page                int
	PageSize            int
	CampaignID          uint
	InfluencerProfileID uint
	Status              string
}

// TaskListFilter 查询任务列表的过滤条件
type TaskListFilter struct {
	Page       int
	PageSize   int
	Month      string
	OnlyActive bool
	Keyword    string
}

// TaskApplicationListFilter 查询任务申领列表的过滤条件
type TaskApplicationListFilter struct {
	Page                int
	PageSize            int
	TaskID              uint
	InfluencerProfileID uint
	Status              string
}

// SubmissionListFilter 查询视频投稿列表的过滤条件
type SubmissionListFilter struct {
	Page                int
	PageSize            int
	InfluencerProfileID uint
	ApprovalStatus      string
	LinkType            string
	LinkID              uint
	CreatedFrom         *time.Time
	CreatedTo           *time.Time
}

// PaymentListFilter 查询结算单列表的过滤条件
type PaymentListFilter struct {
	Page                int
	PageSize            int
	InfluencerProfileID uint
	PaymentType         string
	PaymentStatus       string
	CreatedFrom         *time.Time
	CreatedTo           *time.Time
}

// RevenueShareListFilter 查询收益分成列表的过滤条件
type RevenueShareListFilter struct {
	Page                int
	PageSize            int
	InfluencerProfileID uint
	Month               int
	Year                int
	PaymentStatus       string
}
