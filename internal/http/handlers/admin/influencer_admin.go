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

// ListInfluencers 达人列表
func (h *Handler) ListInfluencers(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	minFollowers, _ := strconv.ParseInt(c.Query("min_followers"), 10, 64)
	filter := repository.InfluencerListFilter{
		Page:           page,
		PageSize:       pageSize,
		ApprovalStatus: strings.TrimSpace(c.Query("status")),
		Keyword:        strings.TrimSpace(c.Query("keyword")),
		MinFollowers:   minFollowers,
	}

	profiles, total, err := h.InfluencerService.List(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, profiles, response.BuildPagination(page, pageSize, total))
}

// GetInfluencer 达人详情
func (h *Handler) GetInfluencer(c *gin.Context) {
	profileID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "达人ID无效", nil)
		return
	}
	profile, err := h.InfluencerService.Get(profileID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, profile)
}

// DecideInfluencerRequest 达人审核请求
type DecideInfluencerRequest struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

// DecideInfluencer 审核达人入驻
func (h *Handler) DecideInfluencer(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	profileID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "达人ID无效", nil)
		return
	}
	var req DecideInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	profile, err := h.InfluencerService.Decide(profileID, req.Approve, req.Reason, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, profile)
}

// SetInfluencerRateRequest 达人报价设置请求
type SetInfluencerRateRequest struct {
	Rate models.Money `json:"rate"`
}

// SetInfluencerRate 设置达人单视频报价
func (h *Handler) SetInfluencerRate(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	profileID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "达人ID无效", nil)
		return
	}
	var req SetInfluencerRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	profile, err := h.InfluencerService.SetRate(profileID, req.Rate, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, profile)
}
