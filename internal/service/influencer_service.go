package service

import (
	"strings"
	"time"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"
)

// InfluencerService 达人档案服务
type InfluencerService struct {
	influencerRepo      repository.InfluencerRepository
	notificationService *NotificationService
}

// NewInfluencerService 创建达人档案服务
func NewInfluencerService(influencerRepo repository.InfluencerRepository, notificationService *NotificationService) *InfluencerService {
	return &InfluencerService{
		influencerRepo:      influencerRepo,
		notificationService: notificationService,
	}
}

// RegisterInfluencerInput 达人入驻入参
type RegisterInfluencerInput struct {
	DisplayName     string
	Bio             string
	FollowerCount   int64
	InstagramHandle string
	YoutubeChannel  string
	IDProofURL      string
	UPIID           string
}

// Register 达人提交入驻申请；身份证明与收款信息为必填项
func (s *InfluencerService) Register(actor Actor, input RegisterInfluencerInput) (*models.InfluencerProfile, error) {
	if !actor.IsInfluencer() {
		return nil, ErrUnauthorized
	}

	displayName := strings.TrimSpace(input.DisplayName)
	idProofURL := strings.TrimSpace(input.IDProofURL)
	upiID := strings.TrimSpace(input.UPIID)
	if displayName == "" || idProofURL == "" || upiID == "" {
		return nil, ErrProfileFieldsMissing
	}

	exist, err := s.influencerRepo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return exist, nil
	}

	now := time.Now()
	profile := &models.InfluencerProfile{
		UserID:          actor.UserID,
		DisplayName:     displayName,
		Bio:             strings.TrimSpace(input.Bio),
		FollowerCount:   input.FollowerCount,
		InstagramHandle: strings.TrimSpace(input.InstagramHandle),
		YoutubeChannel:  strings.TrimSpace(input.YoutubeChannel),
		IDProofURL:      idProofURL,
		UPIID:           upiID,
		ApprovalStatus:  constants.InfluencerStatusPending,
		VideoRate:       models.NewMoneyFromFloat(0),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.influencerRepo.Create(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// Decide 审核达人入驻；通过后盖章审核人，驳回必须附原因且为终态
func (s *InfluencerService) Decide(profileID uint, approve bool, reason string, actor Actor) (*models.InfluencerProfile, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}

	profile, err := s.influencerRepo.GetByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	if profile.ApprovalStatus != constants.InfluencerStatusPending {
		return nil, ErrAlreadyDecided
	}

	reason = strings.TrimSpace(reason)
	status := constants.InfluencerStatusApproved
	event := constants.NotificationEventInfluencerApproved
	if !approve {
		if reason == "" {
			return nil, ErrRejectionReasonRequired
		}
		status = constants.InfluencerStatusRejected
		event = constants.NotificationEventInfluencerRejected
	} else {
		reason = ""
	}

	now := time.Now()
	if err := s.influencerRepo.UpdateDecision(profileID, status, reason, now, actor.UserID); err != nil {
		return nil, err
	}

	profile.ApprovalStatus = status
	profile.RejectionReason = reason
	profile.UpdatedAt = now
	if approve {
		profile.ApprovedAt = &now
		approvedBy := actor.UserID
		profile.ApprovedBy = &approvedBy
	}

	s.notificationService.Notify(profile.UserID, event, models.JSON{
		"profile_id": profile.ID,
		"reason":     reason,
	})
	return profile, nil
}

// SetRate 管理员覆盖达人单视频报价；仅影响后续审核
func (s *InfluencerService) SetRate(profileID uint, rate models.Money, actor Actor) (*models.InfluencerProfile, error) {
	if !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	if rate.IsNegative() {
		return nil, ErrInvalidRate
	}

	profile, err := s.influencerRepo.GetByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}

	now := time.Now()
	if err := s.influencerRepo.UpdateRate(profileID, rate, now); err != nil {
		return nil, err
	}
	profile.VideoRate = rate
	profile.UpdatedAt = now
	return profile, nil
}

// Get 获取达人档案
func (s *InfluencerService) Get(profileID uint) (*models.InfluencerProfile, error) {
	profile, err := s.influencerRepo.GetByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// GetByUser 获取当前用户的达人档案
func (s *InfluencerService) GetByUser(userID uint) (*models.InfluencerProfile, error) {
	profile, err := s.influencerRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}

// List 达人列表（管理端）
func (s *InfluencerService) List(filter repository.InfluencerListFilter, actor Actor) ([]models.InfluencerProfile, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrUnauthorized
	}
	return s.influencerRepo.List(filter)
}

// requireApprovedInfluencer 取出当前用户的达人档案并校验已通过审核
func requireApprovedInfluencer(repo repository.InfluencerRepository, userID uint) (*models.InfluencerProfile, error) {
	profile, err := repo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	switch profile.ApprovalStatus {
	case constants.InfluencerStatusApproved:
		return profile, nil
	case constants.InfluencerStatusRejected:
		return nil, ErrInfluencerRejected
	default:
		return nil, ErrInfluencerNotApproved
	}
}
