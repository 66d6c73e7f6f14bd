package profiles

import (
	"errors"
	"strings"

	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/models"
	"github.com/consistify/consistify-backend/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CacheEntity = "profile"

	pointsPerCompletion = 10
)

var ErrProfileNotFound = errors.New("profile not found")

type Service struct {
	db    *gorm.DB
	cache *cache.Store
}

func NewService(db *gorm.DB, store *cache.Store) *Service {
	return &Service{db: db, cache: store}
}

func (s *Service) Get(userID uuid.UUID) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	v, err := s.cache.GetOrLoad(cache.ForUser(CacheEntity, userID), func() (interface{}, error) {
		var profile models.Profile
		err := s.db.First(&profile, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return (*models.Profile)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		return &profile, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Profile), nil
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

func (s *Service) Update(userID uuid.UUID, req UpdateProfileRequest) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, session.ErrUnauthenticated
	}

	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if req.DisplayName != nil {
		profile.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.ForUser(CacheEntity, userID))
	return &profile, nil
}

// Achievements lists the user's earned achievements, newest first.
func (s *Service) Achievements(userID uuid.UUID) ([]models.UserAchievement, error) {
	if userID == uuid.Nil {
		return []models.UserAchievement{}, nil
	}

	var earned []models.UserAchievement
	err := s.db.Where("user_id = ?", userID).
		Preload("Achievement").
		Order("earned_at DESC").
		Find(&earned).Error
	if err != nil {
		return nil, err
	}
	return earned, nil
}

// RecordDay folds one finished day into the profile's counters. A day
// counts toward the streak only when every commitment was completed and
// at least one existed. Points accrue per completed commitment.
func (s *Service) RecordDay(userID uuid.UUID, completed, total int) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, session.ErrUnauthenticated
	}

	var profile models.Profile
	if err := s.db.First(&profile, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	if total > 0 && completed == total {
		profile.CurrentStreak++
	} else {
		profile.CurrentStreak = 0
	}
	if profile.CurrentStreak > profile.BestStreak {
		profile.BestStreak = profile.CurrentStreak
	}
	profile.ProductivityPoints += completed * pointsPerCompletion

	if err := s.db.Save(&profile).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.ForUser(CacheEntity, userID))
	return &profile, nil
}
