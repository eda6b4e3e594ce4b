package admin

import (
	"strconv"
	"strings"

	"github.com/creatorlink/internal/http/handlers/shared"
	"github.com/creatorlink/internal/http/response"
	"github.com/creatorlink/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListCampaigns 活动列表（全量）
func (h *Handler) ListCampaigns(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	brandID, _ := strconv.ParseUint(c.Query("brand_profile_id"), 10, 64)
	filter := repository.CampaignListFilter{
		Page:           page,
		PageSize:       pageSize,
		BrandProfileID: uint(brandID),
		Status:         strings.TrimSpace(c.Query("status")),
		Keyword:        strings.TrimSpace(c.Query("keyword")),
	}
	campaigns, total, err := h.CampaignService.List(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, campaigns, response.BuildPagination(page, pageSize, total))
}

// ListCampaignApplications 活动报名列表（全量）
func (h *Handler) ListCampaignApplications(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	campaignID, _ := strconv.ParseUint(c.Query("campaign_id"), 10, 64)
	influencerID, _ := strconv.ParseUint(c.Query("influencer_id"), 10, 64)
	filter := repository.CampaignApplicationListFilter{
		Page:                page,
		PageSize:            pageSize,
		CampaignID:          uint(campaignID),
		InfluencerProfileID: uint(influencerID),
		Status:              strings.TrimSpace(c.Query("status")),
	}
	applications, total, err := h.CampaignService.ListApplications(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, applications, response.BuildPagination(page, pageSize, total))
}

// DecideCampaignApplicationRequest 活动报名审批请求
type DecideCampaignApplicationRequest struct {
	Approve bool `json:"approve"`
}

// DecideCampaignApplication 管理员代审活动报名
func (h *Handler) DecideCampaignApplication(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	applicationID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "报名ID无效", nil)
		return
	}
	var req DecideCampaignApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	application, err := h.CampaignService.DecideApplication(applicationID, req.Approve, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, application)
}
