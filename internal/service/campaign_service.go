package service

import (
	"strings"
	"time"

	"github.com/creatorlink/internal/constants"
	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"
)

// CampaignService 品牌活动与报名服务
type CampaignService struct {
	campaignRepo        repository.CampaignRepository
	brandRepo           repository.BrandRepository
	influencerRepo      repository.InfluencerRepository
	notificationService *NotificationService
}

// NewCampaignService 创建活动服务
func NewCampaignService(campaignRepo repository.CampaignRepository, brandRepo repository.BrandRepository, influencerRepo repository.InfluencerRepository, notificationService *NotificationService) *CampaignService {
	return &CampaignService{
		campaignRepo:        campaignRepo,
		brandRepo:           brandRepo,
		influencerRepo:      influencerRepo,
		notificationService: notificationService,
	}
}

// CreateCampaignInput 活动创建入参
type CreateCampaignInput struct {
	Title        string
	Requirements string
	Budget       models.Money
	Deadline     *time.Time
}

// Create 品牌方发布活动
func (s *CampaignService) Create(actor Actor, input CreateCampaignInput) (*models.Campaign, error) {
	if !actor.IsBrand() {
		return nil, ErrUnauthorized
	}
	brand, err := s.brandRepo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrNotFound
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrProfileFieldsMissing
	}
	if input.Budget.IsNegative() {
		return nil, ErrInvalidBid
	}

	now := time.Now()
	campaign := &models.Campaign{
		BrandProfileID: brand.ID,
		Title:          title,
		Requirements:   strings.TrimSpace(input.Requirements),
		Budget:         input.Budget,
		Deadline:       input.Deadline,
		Status:         constants.CampaignStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, err
	}
	return campaign, nil
}

// UpdateStatus 活动状态流转；核心字段不可改，仅允许 active -> completed|closed
func (s *CampaignService) UpdateStatus(campaignID uint, status string, actor Actor) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}
	if err := s.requireCampaignOwnerOrAdmin(campaign, actor); err != nil {
		return nil, err
	}

	status = strings.ToLower(strings.TrimSpace(status))
	if status != constants.CampaignStatusCompleted && status != constants.CampaignStatusClosed {
		return nil, ErrInvalidDecision
	}
	if campaign.Status != constants.CampaignStatusActive {
		return nil, ErrCampaignNotOpen
	}

	now := time.Now()
	if err := s.campaignRepo.UpdateStatus(campaignID, status, now); err != nil {
		return nil, err
	}
	campaign.Status = status
	campaign.UpdatedAt = now
	return campaign, nil
}

// Get 获取活动详情
func (s *CampaignService) Get(campaignID uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}
	return campaign, nil
}

// List 活动列表；达人侧只看开放中的活动
func (s *CampaignService) List(filter repository.CampaignListFilter, actor Actor) ([]models.Campaign, int64, error) {
	if actor.IsInfluencer() {
		filter.OnlyOpen = true
		filter.BrandProfileID = 0
	}
	if actor.IsBrand() {
		brand, err := s.brandRepo.GetByUserID(actor.UserID)
		if err != nil {
			return nil, 0, err
		}
		if brand == nil {
			return nil, 0, ErrNotFound
		}
		filter.BrandProfileID = brand.ID
	}
	return s.campaignRepo.List(filter)
}

// ApplyInput 活动报名入参
type ApplyInput struct {
	CampaignID uint
	BidAmount  models.Money
	Message    string
}

// Apply 达人报名活动；前置校验达人已过审、活动开放、未重复报名
func (s *CampaignService) Apply(actor Actor, input ApplyInput) (*models.CampaignApplication, error) {
	if !actor.IsInfluencer() {
		return nil, ErrUnauthorized
	}
	profile, err := requireApprovedInfluencer(s.influencerRepo, actor.UserID)
	if err != nil {
		return nil, err
	}

	campaign, err := s.campaignRepo.GetByID(input.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}
	if campaign.Status != constants.CampaignStatusActive {
		return nil, ErrCampaignNotOpen
	}
	if campaign.Deadline != nil && campaign.Deadline.Before(time.Now()) {
		return nil, ErrCampaignNotOpen
	}
	if input.BidAmount.IsNegative() {
		return nil, ErrInvalidBid
	}

	exist, err := s.campaignRepo.GetApplicationByPair(profile.ID, campaign.ID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrDuplicateApplication
	}

	now := time.Now()
	application := &models.CampaignApplication{
		InfluencerProfileID: profile.ID,
		CampaignID:          campaign.ID,
		BidAmount:           input.BidAmount,
		Message:             strings.TrimSpace(input.Message),
		Status:              constants.CampaignApplicationStatusPending,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.campaignRepo.CreateApplication(application); err != nil {
		// 唯一索引兜底并发下的重复报名
		if isDuplicatedKey(err) {
			return nil, ErrDuplicateApplication
		}
		return nil, err
	}
	return application, nil
}

// DecideApplication 审批活动报名；仅活动所属品牌或管理员可审批，审批后为终态
func (s *CampaignService) DecideApplication(applicationID uint, approve bool, actor Actor) (*models.CampaignApplication, error) {
	application, err := s.campaignRepo.GetApplicationByID(applicationID)
	if err != nil {
		return nil, err
	}
	if application == nil {
		return nil, ErrNotFound
	}

	campaign, err := s.campaignRepo.GetByID(application.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, ErrNotFound
	}
	if err := s.requireCampaignOwnerOrAdmin(campaign, actor); err != nil {
		return nil, err
	}

	status := constants.CampaignApplicationStatusApproved
	event := constants.NotificationEventApplicationApproved
	if !approve {
		status = constants.CampaignApplicationStatusRejected
		event = constants.NotificationEventApplicationRejected
	}

	now := time.Now()
	updated, err := s.campaignRepo.UpdateApplicationDecision(applicationID, status, now, actor.UserID)
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
			"campaign_id":    campaign.ID,
		})
	}
	return application, nil
}

// ListApplications 活动报名列表；品牌只能看自家活动，达人只能看自己的报名
func (s *CampaignService) ListApplications(filter repository.CampaignApplicationListFilter, actor Actor) ([]models.CampaignApplication, int64, error) {
	switch {
	case actor.IsAdmin():
	case actor.IsBrand():
		if filter.CampaignID == 0 {
			return nil, 0, ErrNotFound
		}
		campaign, err := s.campaignRepo.GetByID(filter.CampaignID)
		if err != nil {
			return nil, 0, err
		}
		if campaign == nil {
			return nil, 0, ErrNotFound
		}
		if err := s.requireCampaignOwnerOrAdmin(campaign, actor); err != nil {
			return nil, 0, err
		}
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
	return s.campaignRepo.ListApplications(filter)
}

func (s *CampaignService) requireCampaignOwnerOrAdmin(campaign *models.Campaign, actor Actor) error {
	if actor.IsAdmin() {
		return nil
	}
	if !actor.IsBrand() {
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
