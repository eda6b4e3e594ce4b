package constants

// 用户角色常量
const (
	RoleAdmin      = "admin"
	RoleBrand      = "brand"
	RoleInfluencer = "influencer"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 达人审核状态常量
const (
	InfluencerStatusPending  = "pending"
	InfluencerStatusApproved = "approved"
	InfluencerStatusRejected = "rejected"
)

// 活动状态常量
const (
	CampaignStatusActive    = "active"
	CampaignStatusCompleted = "completed"
	CampaignStatusClosed    = "closed"
)

// 活动报名状态常量
const (
	CampaignApplicationStatusPending  = "pending"
	CampaignApplicationStatusApproved = "approved"
	CampaignApplicationStatusRejected = "rejected"
)

// 任务申领状态常量
const (
	TaskApplicationStatusPendingApproval = "pending_approval"
	TaskApplicationStatusAssigned        = "assigned"
	TaskApplicationStatusCompleted       = "completed"
	TaskApplicationStatusRejected        = "rejected"
)

// 视频投稿审核状态常量
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
)

// 投稿关联目标常量
const (
	SubmissionLinkNone           = "none"
	SubmissionLinkTaskAssignment = "task_assignment"
	SubmissionLinkCampaign       = "campaign"
)

// 结算单类型常量
const (
	PaymentTypeFixed        = "fixed"
	PaymentTypeRevenueShare = "revenue_share"
)

// 结算单状态常量
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

// 通知事件常量
const (
	NotificationEventInfluencerApproved  = "influencer_approved"
	NotificationEventInfluencerRejected  = "influencer_rejected"
	NotificationEventApplicationApproved = "application_approved"
	NotificationEventApplicationRejected = "application_rejected"
	NotificationEventSubmissionApproved  = "submission_approved"
	NotificationEventSubmissionRejected  = "submission_rejected"
	NotificationEventPaymentPaid         = "payment_paid"
	NotificationEventRevenueSettled      = "revenue_settled"
)

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskNotificationDispatch = "notification:dispatch"
)
