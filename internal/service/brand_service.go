package service

import (
	"strings"
	"time"

	"github.com/creatorlink/internal/models"
	"github.com/creatorlink/internal/repository"
)

// BrandService 品牌方档案服务
type BrandService struct {
	brandRepo repository.BrandRepository
}

// NewBrandService 创建品牌方档案服务
func NewBrandService(brandRepo repository.BrandRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo}
}

// UpsertBrandInput 品牌方档案入参
type UpsertBrandInput struct {
	CompanyName  string
	Website      string
	LogoURL      string
	ContactName  string
	ContactPhone string
}

// Upsert 创建或更新品牌方档案
func (s *BrandService) Upsert(actor Actor, input UpsertBrandInput) (*models.BrandProfile, error) {
	if !actor.IsBrand() {
		return nil, ErrUnauthorized
	}
	companyName := strings.TrimSpace(input.CompanyName)
	if companyName == "" {
		return nil, ErrProfileFieldsMissing
	}

	now := time.Now()
	profile, err := s.brandRepo.GetByUserID(actor.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &models.BrandProfile{
			UserID:    actor.UserID,
			CreatedAt: now,
		}
	}

	profile.CompanyName = companyName
	profile.Website = strings.TrimSpace(input.Website)
	profile.LogoURL = strings.TrimSpace(input.LogoURL)
	profile.ContactName = strings.TrimSpace(input.ContactName)
	profile.ContactPhone = strings.TrimSpace(input.ContactPhone)
	profile.UpdatedAt = now

	if profile.ID == 0 {
		if err := s.brandRepo.Create(profile); err != nil {
			return nil, err
		}
		return profile, nil
	}
	if err := s.brandRepo.Update(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetByUser 获取当前用户的品牌方档案
func (s *BrandService) GetByUser(userID uint) (*models.BrandProfile, error) {
	profile, err := s.brandRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrNotFound
	}
	return profile, nil
}
