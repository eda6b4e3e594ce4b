package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"
)

var taskMonthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// TaskService 平台任务与申领服务
type TaskService struct {
	taskRepo            repository.TaskRepository
	influencerRepo      repository.InfluencerRepository
	notificationService *NotificationService
}

// NewTaskService 创建任务服务
func NewTaskService(taskRepo repository.TaskRepository, influencerRepo repository.InfluencerRepository, notificationService *NotificationService) *TaskService {
	return &TaskService{
		taskRepo:            taskRepo,
		influencerRepo:      influencerRepo,
		notificationService: notificationService,
	}
}

// CreateTaskInput 任务创建入参
type CreateTaskInput struct {
	Title       string
	Description string
	Guidelines  string
	Reward      models.Money
	Month       string
}

// Create 管理员发布月度任务
func (s *TaskService) Create(actor Actor, input CreateTaskInput) (*models.Task, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrProfileFieldsMissing
	}
	month := strings.TrimSpace(input.Month)
	if month != "" && !taskMonthPattern.MatchString(month) {
		return nil, ErrInvalidPeriod
	}
	if input.Reward.IsNegative() {
		return nil, ErrInvalidRate
	}

	now := time.Now()
	task := &models.Task{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Guidelines:  strings.TrimSpace(input.Guidelines),
		Reward:      input.Reward,
		Month:       month,
		IsActive:    true,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get 获取任务详情
func (s *TaskService) Get(taskID uint) (*models.Task, error) {
	task, err := s.taskRepo.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return task, nil
}

// List 任务列表；达人侧只看开放申领的任务
func (s *TaskService) List(filter repository.TaskListFilter, actor Actor) ([]models.Task, int64, error) {
	if !actor.IsAdmin() {
		filter.OnlyActive = true
	}
	return s.taskRepo.List(filter)
}

// ApplyTaskInput 任务申领入参
type ApplyTaskInput struct {
	TaskID        uint
	Pitch         string
	RequestedRate models.Money
}

// Apply 达人申领任务；同一任务存在待审批或已指派记录时视为重复申领
func (s *TaskService) Apply(actor Actor, input ApplyTaskInput) (*models.TaskApplication, error) {
	if !actor.IsInfluencer() {
		return nil, ErrUnauthorized
	}
	profile, err := requireApprovedInfluencer(s.influencerRepo, actor.UserID)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.GetByID(input.TaskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}
	if !task.IsActive {
		return nil, ErrTaskNotOpen
	}
	if input.RequestedRate.IsNegative() {
		return nil, ErrInvalidBid
	}

	exist, err := s.taskRepo.GetPendingApplicationByPair(profile.ID, task.ID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrDuplicateTaskClaim
	}

	now := time.Now()
	application := &models.TaskApplication{
		InfluencerProfileID: profile.ID,
		TaskID:              task.ID,
		Pitch:               strings.TrimSpace(input.Pitch),
		RequestedRate:       input.RequestedRate,
		Status:              constants.TaskApplicationStatusPendingApproval,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.taskRepo.CreateApplication(application); err != nil {
		return nil, err
	}
	return application, nil
}

// DecideApplication 管理员审批任务申领；通过即指派，审批后为终态
func (s *TaskService) DecideApplication(applicationID uint, approve bool, actor Actor) (*models.TaskApplication, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}

	application, err := s.taskRepo.GetApplicationByID(applicationID)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrNotFound
	}

	status := constants.TaskApplicationStatusAssigned
	event := constants.NotificationEventApplicationApproved
	if !approve {
		status = constants.TaskApplicationStatusRejected
		event = constants.NotificationEventApplicationRejected
	}

	now := time.Now()
	updated, err := s.taskRepo.UpdateApplicationDecision(applicationID, status, now, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrAlreadyDecided
	}

	application.Status = status
	application.DecidedAt = &now
	decidedBy := actor.UserID
	application.DecidedBy = &decidedBy

	if profile, err := s.influencerRepo.GetByID(application.InfluencerProfileID); err == nil && profile != nil {
		s.notificationService.Notify(profile.UserID, event, models.JSON{
			"application_id": application.ID,
			"task_id":        application.TaskID,
		})
	}
	return application, nil
}

// ListApplications 任务申领列表；达人只能看自己的申领
func (s *TaskService) ListApplications(filter repository.TaskApplicationListFilter, actor Actor) ([]models.TaskApplication, int64, error) {
	switch {
	case actor.IsAdmin():
	case actor.IsInfluencer():
		profile, err := s.influencerRepo.GetByUserID(actor.UserID)
		if err != nil {
			return nil, 0, err
		}
		if profile == nil {
			return nil, 0, ErrNotFound
		}
		filter.InfluencerProfileID = profile.ID
	default:
		return nil, 0, ErrUnauthorized
	}
	return s.taskRepo.ListApplications(filter)
}
