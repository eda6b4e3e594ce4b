package queue

import (
	"encoding/json"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"

	"github.com/hibiken/asynq"
)

const (
	// TaskNotificationDispatch 业务通知分发任务
	TaskNotificationDispatch = constants.TaskNotificationDispatch
)

// NotificationDispatchPayload 通知分发任务载荷
type NotificationDispatchPayload struct {
	UserID    uint        `json:"user_id"`
	EventKind string      `json:"event_kind"`
	Data      models.JSON `json:"data,omitempty"`
}

// NewNotificationDispatchTask 创建通知分发任务
func NewNotificationDispatchTask(payload NotificationDispatchPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskNotificationDispatch, body), nil
}
