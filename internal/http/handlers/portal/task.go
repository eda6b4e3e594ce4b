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

// ListTasks 任务列表（达人侧仅开放中的任务）
func (h *Handler) ListTasks(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	filter := repository.TaskListFilter{
		Page:     page,
		PageSize: pageSize,
		Month:    strings.TrimSpace(c.Query("month")),
		Keyword:  strings.TrimSpace(c.Query("keyword")),
	}

	tasks, total, err := h.TaskService.List(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, tasks, response.BuildPagination(page, pageSize, total))
}

// GetTask 任务详情
func (h *Handler) GetTask(c *gin.Context) {
	taskID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "任务ID无效", nil)
		return
	}
	task, err := h.TaskService.Get(taskID)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, task)
}

// ApplyTaskRequest 任务申领请求
type ApplyTaskRequest struct {
	Pitch         string       `json:"pitch"`
	RequestedRate models.Money `json:"requested_rate"`
}

// ApplyTask 达人申领任务
func (h *Handler) ApplyTask(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	taskID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "任务ID无效", nil)
		return
	}
	var req ApplyTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	application, err := h.TaskService.Apply(actor, service.ApplyTaskInput{
		TaskID:        taskID,
		Pitch:         req.Pitch,
		RequestedRate: req.RequestedRate,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, application)
}

// MyTaskApplications 当前达人的任务申领列表
func (h *Handler) MyTaskApplications(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	filter := repository.TaskApplicationListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	applications, total, err := h.TaskService.ListApplications(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, applications, response.BuildPagination(page, pageSize, total))
}
