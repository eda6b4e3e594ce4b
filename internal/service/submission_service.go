package service

import (
	"strings"
	"time"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"

	"gorm.io/gorm"
)

// SubmissionService 视频投稿与审核服务
type SubmissionService struct {
	submissionRepo      repository.SubmissionRepository
	influencerRepo      repository.InfluencerRepository
	taskRepo            repository.TaskRepository
	campaignRepo        repository.CampaignRepository
	brandRepo           repository.BrandRepository
	paymentRepo         repository.PaymentRepository
	notificationService *NotificationService
}

// NewSubmissionService 创建投稿服务
func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	influencerRepo repository.InfluencerRepository,
	taskRepo repository.TaskRepository,
	campaignRepo repository.CampaignRepository,
	brandRepo repository.BrandRepository,
	paymentRepo repository.PaymentRepository,
	notificationService *NotificationService,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo:      submissionRepo,
		influencerRepo:      influencerRepo,
		taskRepo:            taskRepo,
		campaignRepo:        campaignRepo,
		brandRepo:           brandRepo,
		paymentRepo:         paymentRepo,
		notificationService: notificationService,
	}
}

// SubmitInput 投稿入参
type SubmitInput struct {
	Title       string
	Description string
	VideoURL    string
	LinkType    string
	LinkID      uint
}

// Submit 达人提交视频；关联目标必须属于本人且处于可投稿状态，同一目标允许被驳回后重投
func (s *SubmissionService) Submit(actor Actor, input SubmitInput) (*models.VideoSubmission, error) {
	if !actor.IsInfluencer() {
		return nil, ErrUnauthorized
	}
	profile, err := requireApprovedInfluencer(s.influencerRepo, actor.UserID)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	videoURL := strings.TrimSpace(input.VideoURL)
	if title == "" || videoURL == "" {
		return nil, ErrProfileFieldsMissing
	}

	linkType := strings.ToLower(strings.TrimSpace(input.LinkType))
	if linkType == "" {
		linkType = constants.SubmissionLinkNone
	}

	switch linkType {
	case constants.SubmissionLinkNone:
		input.LinkID = 0
	case constants.SubmissionLinkTaskAssignment:
		assignment, err := s.taskRepo.GetApplicationByID(input.LinkID)
		if err != nil {
			return nil, err
		}
		if assignment == nil || assignment.InfluencerProfileID != profile.ID {
			return nil, ErrNotFound
		}
		if assignment.Status != constants.TaskApplicationStatusAssigned {
			return nil, ErrAssignmentNotActive
		}
	case constants.SubmissionLinkCampaign:
		application, err := s.campaignRepo.GetApplicationByPair(profile.ID, input.LinkID)
		if err != nil {
			return nil, err
		}
		if application == nil {
			return nil, ErrNotFound
		}
		if application.Status != constants.CampaignApplicationStatusApproved {
			return nil, ErrApplicationNotActive
		}
	default:
		return nil, ErrInvalidDecision
	}

	now := time.Now()
	submission := &models.VideoSubmission{
		InfluencerProfileID: profile.ID,
		Title:               title,
		Description:         strings.TrimSpace(input.Description),
		VideoURL:            videoURL,
		LinkType:            linkType,
		LinkID:              input.LinkID,
		ApprovalStatus:      constants.SubmissionStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// ApproveResult 审核通过的结果
type ApproveResult struct {
	Submission *models.VideoSubmission `json:"submission"`
	Payment    *models.Payment         `json:"payment,omitempty"`
	RateUsed   models.Money            `json:"rate_used"`
}

// Approve 审核通过投稿；核价、指派完结与结算单创建在同一事务内完成
// 报价解析规则：达人报价尚未核定时必须提供 overrideRate（首次核价，写回档案）；
// 已核定时 overrideRate 可选，提供则覆盖档案报价并按新价结算
func (s *SubmissionService) Approve(submissionID uint, actor Actor, overrideRate *models.Money) (*ApproveResult, error) {
	submission, err := s.submissionRepo.GetByID(submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, ErrNotFound
	}
	if err := s.requireReviewer(submission, actor); err != nil {
		return nil, err
	}
	if submission.ApprovalStatus != constants.SubmissionStatusPending {
		return nil, ErrAlreadyReviewed
	}

	profile, err := s.influencerRepo.GetByID(submission.InfluencerProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	if overrideRate != nil && !overrideRate.IsPositive() {
		return nil, ErrInvalidRate
	}
	if overrideRate == nil && !profile.VideoRate.IsPositive() {
		return nil, ErrInvalidRate
	}

	now := time.Now()
	result := &ApproveResult{Submission: submission}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		influencerTx := s.influencerRepo.WithTx(tx)
		submissionTx := s.submissionRepo.WithTx(tx)
		taskTx := s.taskRepo.WithTx(tx)
		paymentTx := s.paymentRepo.WithTx(tx)

		rate := profile.VideoRate
		if overrideRate != nil {
			// 条件更新串行化首次核价；档案已有报价时直接覆盖
			assigned, err := influencerTx.AssignRateIfUnset(profile.ID, *overrideRate, now)
			if err != nil {
				return err
			}
			if !assigned {
				if err := influencerTx.UpdateRate(profile.ID, *overrideRate, now); err != nil {
					return err
				}
			}
			rate = *overrideRate
		}
		result.RateUsed = rate

		updated, err := submissionTx.UpdateReview(submission.ID, constants.SubmissionStatusApproved, "", now, actor.UserID)
		if err != nil {
			return err
		}
		if !updated {
			return ErrAlreadyReviewed
		}

		payment := &models.Payment{
			InfluencerProfileID: profile.ID,
			PaymentType:         constants.PaymentTypeFixed,
			PaymentStatus:       constants.PaymentStatusPending,
			Amount:              rate,
			Notes:               "视频审核通过结算",
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		submissionID := submission.ID
		payment.SubmissionID = &submissionID

		if submission.LinkType == constants.SubmissionLinkTaskAssignment {
			moved, err := taskTx.UpdateApplicationStatus(submission.LinkID, constants.TaskApplicationStatusAssigned, constants.TaskApplicationStatusCompleted, now)
			if err != nil {
				return err
			}
			if !moved {
				return ErrAssignmentNotActive
			}
			linkID := submission.LinkID
			payment.TaskApplicationID = &linkID
		}

		if rate.IsPositive() {
			if err := paymentTx.Create(payment); err != nil {
				return err
			}
			result.Payment = payment
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	submission.ApprovalStatus = constants.SubmissionStatusApproved
	submission.ReviewedAt = &now
	reviewedBy := actor.UserID
	submission.ReviewedBy = &reviewedBy
	if overrideRate != nil {
		profile.VideoRate = *overrideRate
	}

	s.notificationService.Notify(profile.UserID, constants.NotificationEventSubmissionApproved, models.JSON{
		"submission_id": submission.ID,
		"rate_used":     result.RateUsed.String(),
	})
	return result, nil
}

// Reject 驳回投稿；原因必填，关联的任务指派在同一事务内转为 rejected
func (s *SubmissionService) Reject(submissionID uint, reason string, actor Actor) (*models.VideoSubmission, error) {
	submission, err := s.submissionRepo.GetByID(submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, ErrNotFound
	}
	if err := s.requireReviewer(submission, actor); err != nil {
		return nil, err
	}
	if submission.ApprovalStatus != constants.SubmissionStatusPending {
		return nil, ErrAlreadyReviewed
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrRejectionReasonRequired
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		submissionTx := s.submissionRepo.WithTx(tx)
		taskTx := s.taskRepo.WithTx(tx)

		updated, err := submissionTx.UpdateReview(submission.ID, constants.SubmissionStatusRejected, reason, now, actor.UserID)
		if err != nil {
			return err
		}
		if !updated {
			return ErrAlreadyReviewed
		}

		if submission.LinkType == constants.SubmissionLinkTaskAssignment {
			if _, err := taskTx.UpdateApplicationStatus(submission.LinkID, constants.TaskApplicationStatusAssigned, constants.TaskApplicationStatusRejected, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	submission.ApprovalStatus = constants.SubmissionStatusRejected
	submission.RejectionReason = reason
	submission.ReviewedAt = &now
	reviewedBy := actor.UserID
	submission.ReviewedBy = &reviewedBy

	if profile, err := s.influencerRepo.GetByID(submission.InfluencerProfileID); err == nil && profile != nil {
		s.notificationService.Notify(profile.UserID, constants.NotificationEventSubmissionRejected, models.JSON{
			"submission_id": submission.ID,
			"reason":        reason,
		})
	}
	return submission, nil
}

// Get 获取投稿详情
func (s *SubmissionService) Get(submissionID uint) (*models.VideoSubmission, error) {
	submission, err := s.submissionRepo.GetByID(submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, ErrNotFound
	}
	return submission, nil
}

// List 投稿列表；达人只能看自己的投稿
func (s *SubmissionService) List(filter repository.SubmissionListFilter, actor Actor) ([]models.VideoSubmission, int64, error) {
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
	return s.submissionRepo.List(filter)
}

// requireReviewer 审核权限：任务类与独立投稿由管理员审核，活动类投稿允许活动所属品牌审核
func (s *SubmissionService) requireReviewer(submission *models.VideoSubmission, actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if submission.LinkType != constants.SubmissionLinkCampaign || !actor.IsBrand() {
		return ErrUnauthorized
	}
	campaign, err := s.campaignRepo.GetByID(submission.LinkID)
	if err != nil {
		return err
	}
	if campaign == nil {
		return ErrUnauthorized
	}
	brand, err := s.brandRepo.GetByUserID(actor.UserID)
	if err != nil {
		return err
	}
	if brand == nil || brand.ID != campaign.BrandProfileID {
		return ErrUnauthorized
	}
	return nil
}
