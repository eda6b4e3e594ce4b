package admin

import (
	"strconv"
	"strings"

	"github.com/creatorlink/internal/http/handlers/shared"
	"github.com/creatorlink/internal/http/response"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListSubmissions 投稿列表
func (h *Handler) ListSubmissions(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	influencerID, _ := strconv.ParseUint(c.Query("influencer_id"), 10, 64)
	filter := repository.SubmissionListFilter{
		Page:                page,
		PageSize:            pageSize,
		InfluencerProfileID: uint(influencerID),
		ApprovalStatus:      strings.TrimSpace(c.Query("status")),
		LinkType:            strings.TrimSpace(c.Query("link_type")),
	}
	submissions, total, err := h.SubmissionService.List(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, submissions, response.BuildPagination(page, pageSize, total))
}

// GetSubmission 投稿详情
func (h *Handler) GetSubmission(c *gin.Context) {
	submissionID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "投稿ID无效", nil)
		return
	}
	submission, err := h.SubmissionService.Get(submissionID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, submission)
}

// ApproveSubmissionRequest 投稿审核通过请求
type ApproveSubmissionRequest struct {
	OverrideRate *models.Money `json:"override_rate"`
}

// ApproveSubmission 审核通过投稿
func (h *Handler) ApproveSubmission(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	submissionID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "投稿ID无效", nil)
		return
	}
	var req ApproveSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	result, err := h.SubmissionService.Approve(submissionID, actor, req.OverrideRate)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// RejectSubmissionRequest 投稿驳回请求
type RejectSubmissionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectSubmission 驳回投稿
func (h *Handler) RejectSubmission(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	submissionID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "投稿ID无效", nil)
		return
	}
	var req RejectSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	submission, err := h.SubmissionService.Reject(submissionID, req.Reason, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, submission)
}
