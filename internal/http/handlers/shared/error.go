package shared

import (
	"errors"

	"github.com/creatorlink/internal/http/response"
	"github.com/creatorlink/internal/logger"
	"github.com/creatorlink/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondServiceError 将服务层哨兵错误映射为响应码。
func RespondServiceError(c *gin.Context, err error) {
	if appErr, ok := response.FromError(err); ok {
		RespondError(c, appErr.Code, appErr.Message, appErr.Err)
		return
	}
	switch {
	case err == nil:
		response.Success(c, nil)
	case errors.Is(err, service.ErrNotFound):
		RespondError(c, response.CodeNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrUnauthorized):
		RespondError(c, response.CodeForbidden, err.Error(), nil)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserDisabled):
		RespondError(c, response.CodeUnauthorized, err.Error(), nil)
	case errors.Is(err, service.ErrDuplicateApplication),
		errors.Is(err, service.ErrDuplicateTaskClaim),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrAlreadyDecided),
		errors.Is(err, service.ErrAlreadyPaid),
		errors.Is(err, service.ErrDuplicateSettlement),
		errors.Is(err, service.ErrInfluencerNotApproved),
		errors.Is(err, service.ErrInfluencerRejected),
		errors.Is(err, service.ErrCampaignNotOpen),
		errors.Is(err, service.ErrTaskNotOpen),
		errors.Is(err, service.ErrAssignmentNotActive),
		errors.Is(err, service.ErrApplicationNotActive),
		errors.Is(err, service.ErrEmailTaken):
		RespondError(c, response.CodeConflict, err.Error(), nil)
	case errors.Is(err, service.ErrProfileFieldsMissing),
		errors.Is(err, service.ErrInvalidRate),
		errors.Is(err, service.ErrInvalidBid),
		errors.Is(err, service.ErrInvalidRevenue),
		errors.Is(err, service.ErrRejectionReasonRequired),
		errors.Is(err, service.ErrTransactionRefRequired),
		errors.Is(err, service.ErrInvalidDecision),
		errors.Is(err, service.ErrInvalidPeriod),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrPasswordTooShort),
		errors.Is(err, service.ErrInvalidRole):
		RespondError(c, response.CodeBadRequest, err.Error(), nil)
	default:
		RespondError(c, response.CodeInternal, "服务器内部错误", err)
	}
}
