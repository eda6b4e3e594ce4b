package portal

import (
	"strings"

	"github.com/creatorlink/internal/http/handlers/shared"
	"github.com/creatorlink/internal/http/response"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"
	"github.com/creatorlink/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitVideoRequest 视频投稿请求
type SubmitVideoRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	VideoURL    string `json:"video_url" binding:"required"`
	LinkType    string `json:"link_type"`
	LinkID      uint   `json:"link_id"`
}

// SubmitVideo 达人提交视频
func (h *Handler) SubmitVideo(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	var req SubmitVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	submission, err := h.SubmissionService.Submit(actor, service.SubmitInput{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		LinkType:    req.LinkType,
		LinkID:      req.LinkID,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, submission)
}

// MySubmissions 当前达人的投稿列表
func (h *Handler) MySubmissions(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	filter := repository.SubmissionListFilter{
		Page:           page,
		PageSize:       pageSize,
		ApprovalStatus: strings.TrimSpace(c.Query("status")),
		LinkType:       strings.TrimSpace(c.Query("link_type")),
	}
	submissions, total, err := h.SubmissionService.List(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, submissions, response.BuildPagination(page, pageSize, total))
}

// ReviewSubmissionRequest 投稿审核请求（品牌方审核自家活动的投稿）
type ReviewSubmissionRequest struct {
	Approve      bool          `json:"approve"`
	Reason       string        `json:"reason"`
	OverrideRate *models.Money `json:"override_rate"`
}

// ReviewSubmission 品牌方审核活动关联投稿
func (h *Handler) ReviewSubmission(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	submissionID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "投稿ID无效", nil)
		return
	}
	var req ReviewSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	if req.Approve {
		result, err := h.SubmissionService.Approve(submissionID, actor, req.OverrideRate)
		if err != nil {
			shared.RespondServiceError(c, err)
			return
		}
		response.Success(c, result)
		return
	}
	submission, err := h.SubmissionService.Reject(submissionID, req.Reason, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, submission)
}

// MyPayments 当前达人的结算单列表
func (h *Handler) MyPayments(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	filter := repository.PaymentListFilter{
		Page:          page,
		PageSize:      pageSize,
		PaymentType:   strings.TrimSpace(c.Query("type")),
		PaymentStatus: strings.TrimSpace(c.Query("status")),
	}
	payments, total, err := h.SettlementService.ListPayments(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, payments, response.BuildPagination(page, pageSize, total))
}

// MyRevenueShares 当前达人的分成记录列表
func (h *Handler) MyRevenueShares(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	filter := repository.RevenueShareListFilter{
		Page:          page,
		PageSize:      pageSize,
		PaymentStatus: strings.TrimSpace(c.Query("status")),
	}
	shares, total, err := h.SettlementService.ListRevenueShares(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, shares, response.BuildPagination(page, pageSize, total))
}
