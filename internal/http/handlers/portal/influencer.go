package portal

import (
	"github.com/creatorlink/internal/http/handlers/shared"
	"github.com/creatorlink/internal/http/response"
	"github.com/creatorlink/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterInfluencerRequest 达人入驻请求
type RegisterInfluencerRequest struct {
	DisplayName     string `json:"display_name" binding:"required"`
	Bio             string `json:"bio"`
	FollowerCount   int64  `json:"follower_count"`
	InstagramHandle string `json:"instagram_handle"`
	YoutubeChannel  string `json:"youtube_channel"`
	IDProofURL      string `json:"id_proof_url" binding:"required"`
	UPIID           string `json:"upi_id" binding:"required"`
}

// RegisterInfluencer 达人提交入驻申请
func (h *Handler) RegisterInfluencer(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	var req RegisterInfluencerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	profile, err := h.InfluencerService.Register(actor, service.RegisterInfluencerInput{
		DisplayName:     req.DisplayName,
		Bio:             req.Bio,
		FollowerCount:   req.FollowerCount,
		InstagramHandle: req.InstagramHandle,
		YoutubeChannel:  req.YoutubeChannel,
		IDProofURL:      req.IDProofURL,
		UPIID:           req.UPIID,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, profile)
}

// MyInfluencerProfile 获取当前达人档案
func (h *Handler) MyInfluencerProfile(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	profile, err := h.InfluencerService.GetByUser(userID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, profile)
}

// UpsertBrandRequest 品牌方档案请求
type UpsertBrandRequest struct {
	CompanyName  string `json:"company_name" binding:"required"`
	Website      string `json:"website"`
	LogoURL      string `json:"logo_url"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
}

// UpsertBrand 创建或更新品牌方档案
func (h *Handler) UpsertBrand(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	var req UpsertBrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	profile, err := h.BrandService.Upsert(actor, service.UpsertBrandInput{
		CompanyName:  req.CompanyName,
		Website:      req.Website,
		LogoURL:      req.LogoURL,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, profile)
}

// MyBrandProfile 获取当前品牌方档案
func (h *Handler) MyBrandProfile(c *gin.Context) {
	userID, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}
	profile, err := h.BrandService.GetByUser(userID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, profile)
}
