package portal

import (
	"fmt"
	"strings"
	"time"

	"github.com/creatorlink/internal/cache"
	"github.com/creatorlink/internal/http/handlers/shared"
	"github.com/creatorlink/internal/http/response"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"
	"github.com/creatorlink/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCampaignRequest 活动创建请求
type CreateCampaignRequest struct {
	Title        string       `json:"title" binding:"required"`
	Requirements string       `json:"requirements"`
	Budget       models.Money `json:"budget"`
	Deadline     *time.Time   `json:"deadline"`
}

// CreateCampaign 品牌方发布活动
func (h *Handler) CreateCampaign(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	var req CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	campaign, err := h.CampaignService.Create(actor, service.CreateCampaignInput{
		Title:        req.Title,
		Requirements: req.Requirements,
		Budget:       req.Budget,
		Deadline:     req.Deadline,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, campaign)
}

// UpdateCampaignStatusRequest 活动状态流转请求
type UpdateCampaignStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateCampaignStatus 活动状态流转
func (h *Handler) UpdateCampaignStatus(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	campaignID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "活动ID无效", nil)
		return
	}
	var req UpdateCampaignStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	campaign, err := h.CampaignService.UpdateStatus(campaignID, req.Status, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	_ = cache.Del(c.Request.Context(), campaignCacheKey(campaignID))
	response.Success(c, campaign)
}

func campaignCacheKey(id uint) string {
	return fmt.Sprintf("campaign:%d", id)
}

// ListCampaigns 活动列表
func (h *Handler) ListCampaigns(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	filter := repository.CampaignListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	}

	campaigns, total, err := h.CampaignService.List(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, campaigns, response.BuildPagination(page, pageSize, total))
}

// GetCampaign 活动详情
func (h *Handler) GetCampaign(c *gin.Context) {
	campaignID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "活动ID无效", nil)
		return
	}
	var cached models.Campaign
	if hit, err := cache.GetJSON(c.Request.Context(), campaignCacheKey(campaignID), &cached); err == nil && hit {
		response.Success(c, &cached)
		return
	}
	campaign, err := h.CampaignService.Get(campaignID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	_ = cache.SetJSON(c.Request.Context(), campaignCacheKey(campaignID), campaign, time.Minute)
	response.Success(c, campaign)
}

// ApplyCampaignRequest 活动报名请求
type ApplyCampaignRequest struct {
	BidAmount models.Money `json:"bid_amount"`
	Message   string       `json:"message"`
}

// ApplyCampaign 达人报名活动
func (h *Handler) ApplyCampaign(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	campaignID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "活动ID无效", nil)
		return
	}
	var req ApplyCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	application, err := h.CampaignService.Apply(actor, service.ApplyInput{
		CampaignID: campaignID,
		BidAmount:  req.BidAmount,
		Message:    req.Message,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, application)
}

// ListCampaignApplications 活动报名列表
func (h *Handler) ListCampaignApplications(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	campaignID, _ := shared.ParseUintParam(c, "id")
	filter := repository.CampaignApplicationListFilter{
		Page:       page,
		PageSize:   pageSize,
		CampaignID: campaignID,
		Status:     strings.TrimSpace(c.Query("status")),
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

// DecideCampaignApplication 审批活动报名
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

// MyCampaignApplications 当前达人的报名列表
func (h *Handler) MyCampaignApplications(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	filter := repository.CampaignApplicationListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	applications, total, err := h.CampaignService.ListApplications(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, applications, response.BuildPagination(page, pageSize, total))
}
