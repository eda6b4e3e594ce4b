package service

import (
	"strings"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/logger"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/queue"

	"github.com/hibiken/asynq"
)

var supportedNotificationEvents = map[string]bool{
	constants.NotificationEventInfluencerApproved:  true,
	constants.NotificationEventInfluencerRejected:  true,
	constants.NotificationEventApplicationApproved: true,
	constants.NotificationEventApplicationRejected: true,
	constants.NotificationEventSubmissionApproved:  true,
	constants.NotificationEventSubmissionRejected:  true,
	constants.NotificationEventPaymentPaid:         true,
	constants.NotificationEventRevenueSettled:      true,
}

// NotificationService 通知服务；仅负责把事件交给消息子系统，不承载业务逻辑
type NotificationService struct {
	queueClient *queue.Client
}

// NewNotificationService 创建通知服务
func NewNotificationService(queueClient *queue.Client) *NotificationService {
	return &NotificationService{queueClient: queueClient}
}

// Notify 投递通知事件；尽力而为，失败只记日志，绝不回滚业务状态
func (s *NotificationService) Notify(userID uint, eventKind string, payload models.JSON) {
	if s == nil || userID == 0 {
		return
	}
	eventKind = strings.ToLower(strings.TrimSpace(eventKind))
	if !supportedNotificationEvents[eventKind] {
		logger.Warnw("notification_event_unsupported", "event_kind", eventKind, "user_id", userID)
		return
	}
	if s.queueClient == nil {
		return
	}
	err := s.queueClient.EnqueueNotificationDispatch(queue.NotificationDispatchPayload{
		UserID:    userID,
		EventKind: eventKind,
		Data:      payload,
	}, asynq.MaxRetry(5))
	if err != nil {
		logger.Warnw("notification_enqueue_failed", "event_kind", eventKind, "user_id", userID, "error", err)
	}
}
