package service

import "errors"

// 通用错误
var (
	ErrNotFound     = errors.New("记录不存在")
	ErrUnauthorized = errors.New("无权执行该操作")
)

// 校验类错误
var (
	ErrProfileFieldsMissing    = errors.New("身份或收款信息不完整")
	ErrInvalidRate             = errors.New("报价无效，首次核价必须提供正数报价")
	ErrInvalidBid              = errors.New("报价金额无效")
	ErrInvalidRevenue          = errors.New("收入金额必须为正数")
	ErrRejectionReasonRequired = errors.New("驳回必须填写原因")
	ErrTransactionRefRequired  = errors.New("打款必须填写交易流水号")
	ErrInvalidDecision         = errors.New("审批结论无效")
	ErrInvalidPeriod           = errors.New("结算期无效")
	ErrInvalidCredentials      = errors.New("邮箱或密码错误")
	ErrInvalidEmail            = errors.New("邮箱格式无效")
	ErrPasswordTooShort        = errors.New("密码长度不足 8 位")
	ErrEmailTaken              = errors.New("邮箱已被注册")
	ErrInvalidRole             = errors.New("角色无效")
)

// 冲突类错误（当前请求终止，重试相同输入不会成功）
var (
	ErrDuplicateApplication  = errors.New("已报名该活动")
	ErrDuplicateTaskClaim    = errors.New("已申领该任务")
	ErrAlreadyReviewed       = errors.New("该投稿已审核，不可重复操作")
	ErrAlreadyDecided        = errors.New("该申请已审批，不可重复操作")
	ErrAlreadyPaid           = errors.New("该结算单已打款")
	ErrDuplicateSettlement   = errors.New("该结算期已生成分成记录")
	ErrInfluencerNotApproved = errors.New("达人尚未通过审核")
	ErrInfluencerRejected    = errors.New("达人已被拒绝，不可继续操作")
	ErrCampaignNotOpen       = errors.New("活动未开放报名")
	ErrTaskNotOpen           = errors.New("任务未开放申领")
	ErrAssignmentNotActive   = errors.New("任务申领不在可投稿状态")
	ErrApplicationNotActive  = errors.New("活动报名未通过，不可投稿")
	ErrUserDisabled          = errors.New("账号已被禁用")
)
