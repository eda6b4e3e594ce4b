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

// CreateManualPaymentRequest 人工补付请求
type CreateManualPaymentRequest struct {
	InfluencerProfileID uint         `json:"influencer_profile_id" binding:"required"`
	Amount              models.Money `json:"amount"`
	Notes               string       `json:"notes"`
}

// CreateManualPayment 为达人补录固定结算单
func (h *Handler) CreateManualPayment(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	var req CreateManualPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	payment, err := h.SettlementService.CreateManualPayment(req.InfluencerProfileID, req.Amount, req.Notes, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, payment)
}

// MarkPaidRequest 打款确认请求
type MarkPaidRequest struct {
	TransactionRef string `json:"transaction_ref" binding:"required"`
}

// MarkPaymentPaid 打款确认
func (h *Handler) MarkPaymentPaid(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	paymentID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "结算单ID无效", nil)
		return
	}
	var req MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	payment, err := h.SettlementService.MarkPaid(paymentID, req.TransactionRef, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, payment)
}

// SettleRevenueRequest 月度分成结算请求
type SettleRevenueRequest struct {
	InfluencerProfileID uint         `json:"influencer_profile_id" binding:"required"`
	Month               int          `json:"month" binding:"required"`
	Year                int          `json:"year" binding:"required"`
	TotalRevenue        models.Money `json:"total_revenue"`
}

// SettleRevenue 月度收益分成结算
func (h *Handler) SettleRevenue(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	var req SettleRevenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	result, err := h.SettlementService.SettleRevenue(req.InfluencerProfileID, req.Month, req.Year, req.TotalRevenue, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, result)
}

// ListPayments 结算单列表
func (h *Handler) ListPayments(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	influencerID, _ := strconv.ParseUint(c.Query("influencer_id"), 10, 64)
	filter := repository.PaymentListFilter{
		Page:                page,
		PageSize:            pageSize,
		InfluencerProfileID: uint(influencerID),
		PaymentType:         strings.TrimSpace(c.Query("type")),
		PaymentStatus:       strings.TrimSpace(c.Query("status")),
	}
	payments, total, err := h.SettlementService.ListPayments(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, payments, response.BuildPagination(page, pageSize, total))
}

// GetPayment 结算单详情
func (h *Handler) GetPayment(c *gin.Context) {
	paymentID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "结算单ID无效", nil)
		return
	}
	payment, err := h.SettlementService.GetPayment(paymentID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, payment)
}

// ListRevenueShares 分成记录列表
func (h *Handler) ListRevenueShares(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	influencerID, _ := strconv.ParseUint(c.Query("influencer_id"), 10, 64)
	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))
	filter := repository.RevenueShareListFilter{
		Page:                page,
		PageSize:            pageSize,
		InfluencerProfileID: uint(influencerID),
		Month:               month,
		Year:                year,
		PaymentStatus:       strings.TrimSpace(c.Query("status")),
	}
	shares, total, err := h.SettlementService.ListRevenueShares(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, shares, response.BuildPagination(page, pageSize, total))
}
