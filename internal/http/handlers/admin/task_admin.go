package admin

import (
	"strings"

	"github.com/creatorlink/internal/http/handlers/shared"
	"github.com/creatorlink/internal/http/response"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"
	"github.com/creatorlink/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateTaskRequest 任务创建请求
type CreateTaskRequest struct {
	Title       string       `json:"title" binding:"required"`
	Description string       `json:"description"`
	Guidelines  string       `json:"guidelines"`
	Reward      models.Money `json:"reward"`
	Month       string       `json:"month"`
}

// CreateTask 发布月度任务
func (h *Handler) CreateTask(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	task, err := h.TaskService.Create(actor, service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Guidelines:  req.Guidelines,
		Reward:      req.Reward,
		Month:       req.Month,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, task)
}

// ListTasks 任务列表（含已下线）
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

// ListTaskApplications 任务申领列表
func (h *Handler) ListTaskApplications(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	page, pageSize := shared.ParsePagination(c)
	taskID, _ := shared.ParseUintParam(c, "id")
	filter := repository.TaskApplicationListFilter{
		Page:     page,
		PageSize: pageSize,
		TaskID:   taskID,
		Status:   strings.TrimSpace(c.Query("status")),
	}
	applications, total, err := h.TaskService.ListApplications(filter, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, applications, response.BuildPagination(page, pageSize, total))
}

// DecideTaskApplicationRequest 任务申领审批请求
type DecideTaskApplicationRequest struct {
	Approve bool `json:"approve"`
}

// DecideTaskApplication 审批任务申领
func (h *Handler) DecideTaskApplication(c *gin.Context) {
	actor, ok := shared.GetActor(c)
	if !ok {
		return
	}
	applicationID, ok := shared.ParseUintParam(c, "id")
	if !ok {
		shared.RespondError(c, response.CodeBadRequest, "申领ID无效", nil)
		return
	}
	var req DecideTaskApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "请求参数错误", err)
		return
	}

	application, err := h.TaskService.DecideApplication(applicationID, req.Approve, actor)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, application)
}
