package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupTaskServiceTest(t *testing.T) (*TaskService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:task_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.InfluencerProfile{},
		&models.Task{},
		&models.TaskApplication{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	taskRepo := repository.NewTaskRepository(db)
	influencerRepo := repository.NewInfluencerRepository(db)
	return NewTaskService(taskRepo, influencerRepo, NewNotificationService(nil)), db
}

func createTaskTestActor(t *testing.T, db *gorm.DB, role string) Actor {
	t.Helper()
	user := &models.User{
		Email:        fmt.Sprintf("task_%s_%d@example.com", role, time.Now().UnixNano()),
		PasswordHash: "hash",
		Role:         role,
		Status:       constants.UserStatusActive,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if role == constants.RoleInfluencer {
		profile := &models.InfluencerProfile{
			UserID:         user.ID,
			DisplayName:    fmt.Sprintf("creator_%d", user.ID),
			IDProofURL:     "https://files.example.com/id.pdf",
			UPIID:          "creator@upi",
			ApprovalStatus: constants.InfluencerStatusApproved,
			VideoRate:      models.NewMoneyFromFloat(0),
		}
		if err := db.Create(profile).Error; err != nil {
			t.Fatalf("create influencer profile failed: %v", err)
		}
	}
	return Actor{UserID: user.ID, Role: role}
}

func TestTaskCreateValidation(t *testing.T) {
	svc, db := setupTaskServiceTest(t)
	admin := createTaskTestActor(t, db, constants.RoleAdmin)
	influencer := createTaskTestActor(t, db, constants.RoleInfluencer)

	if _, err := svc.Create(influencer, CreateTaskInput{Title: "非管理员"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Create(admin, CreateTaskInput{Title: "坏月份", Month: "2026-13"}); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}

	task, err := svc.Create(admin, CreateTaskInput{
		Title:  "本月测评任务",
		Reward: models.NewMoneyFromFloat(2000),
		Month:  "2026-08",
	})
	if err != nil {
		t.Fatalf("create task error: %v", err)
	}
	if !task.IsActive {
		t.Fatalf("expected new task to be active")
	}
}

func TestTaskApplyDuplicateClaim(t *testing.T) {
	svc, db := setupTaskServiceTest(t)
	admin := createTaskTestActor(t, db, constants.RoleAdmin)
	influencer := createTaskTestActor(t, db, constants.RoleInfluencer)

	task, err := svc.Create(admin, CreateTaskInput{Title: "申领任务", Reward: models.NewMoneyFromFloat(1000)})
	if err != nil {
		t.Fatalf("create task error: %v", err)
	}

	application, err := svc.Apply(influencer, ApplyTaskInput{TaskID: task.ID, Pitch: "可以尽快交付"})
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}
	if application.Status != constants.TaskApplicationStatusPendingApproval {
		t.Fatalf("expected pending_approval, got %s", application.Status)
	}

	// 待审批期间重复申领被拒
	if _, err := svc.Apply(influencer, ApplyTaskInput{TaskID: task.ID}); !errors.Is(err, ErrDuplicateTaskClaim) {
		t.Fatalf("expected ErrDuplicateTaskClaim, got %v", err)
	}

	// 指派后依旧视为占用中
	if _, err := svc.DecideApplication(application.ID, true, admin); err != nil {
		t.Fatalf("decide error: %v", err)
	}
	if _, err := svc.Apply(influencer, ApplyTaskInput{TaskID: task.ID}); !errors.Is(err, ErrDuplicateTaskClaim) {
		t.Fatalf("expected ErrDuplicateTaskClaim after assignment, got %v", err)
	}
}

func TestTaskApplyInactiveTask(t *testing.T) {
	svc, db := setupTaskServiceTest(t)
	admin := createTaskTestActor(t, db, constants.RoleAdmin)
	influencer := createTaskTestActor(t, db, constants.RoleInfluencer)

	task, err := svc.Create(admin, CreateTaskInput{Title: "已下线任务"})
	if err != nil {
		t.Fatalf("create task error: %v", err)
	}
	if err := db.Model(&models.Task{}).Where("id = ?", task.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate task failed: %v", err)
	}

	if _, err := svc.Apply(influencer, ApplyTaskInput{TaskID: task.ID}); !errors.Is(err, ErrTaskNotOpen) {
		t.Fatalf("expected ErrTaskNotOpen, got %v", err)
	}
}

func TestTaskDecideApplication(t *testing.T) {
	svc, db := setupTaskServiceTest(t)
	admin := createTaskTestActor(t, db, constants.RoleAdmin)
	influencer := createTaskTestActor(t, db, constants.RoleInfluencer)

	task, err := svc.Create(admin, CreateTaskInput{Title: "审批任务"})
	if err != nil {
		t.Fatalf("create task error: %v", err)
	}
	application, err := svc.Apply(influencer, ApplyTaskInput{TaskID: task.ID})
	if err != nil {
		t.Fatalf("apply error: %v", err)
	}

	if _, err := svc.DecideApplication(application.ID, true, influencer); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	assigned, err := svc.DecideApplication(application.ID, true, admin)
	if err != nil {
		t.Fatalf("decide error: %v", err)
	}
	if assigned.Status != constants.TaskApplicationStatusAssigned {
		t.Fatalf("expected assigned, got %s", assigned.Status)
	}

	// 审批后为终态
	if _, err := svc.DecideApplication(application.ID, false, admin); !errors.Is(err, ErrAlreadyDecided) {
		t.Fatalf("expected ErrAlreadyDecided, got %v", err)
	}
}

func TestTaskListOnlyActiveForInfluencer(t *testing.T) {
	svc, db := setupTaskServiceTest(t)
	admin := createTaskTestActor(t, db, constants.RoleAdmin)
	influencer := createTaskTestActor(t, db, constants.RoleInfluencer)

	active, err := svc.Create(admin, CreateTaskInput{Title: "开放任务"})
	if err != nil {
		t.Fatalf("create task error: %v", err)
	}
	inactive, err := svc.Create(admin, CreateTaskInput{Title: "下线任务"})
	if err != nil {
		t.Fatalf("create task error: %v", err)
	}
	if err := db.Model(&models.Task{}).Where("id = ?", inactive.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate task failed: %v", err)
	}

	list, total, err := svc.List(repository.TaskListFilter{Page: 1, PageSize: 20}, influencer)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].ID != active.ID {
		t.Fatalf("expected only active task, got total=%d list=%+v", total, list)
	}

	_, total, err = svc.List(repository.TaskListFilter{Page: 1, PageSize: 20}, admin)
	if err != nil {
		t.Fatalf("admin list error: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected admin to see 2 tasks, got %d", total)
	}
}
