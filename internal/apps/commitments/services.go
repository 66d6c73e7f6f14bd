package commitments

import (
	"errors"
	"strings"
	"time"

	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CacheEntity names the cache family this service owns.
const CacheEntity = "commitments"

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrInvalidStatus      = errors.New("status must be pending or completed")
	ErrCommitmentNotFound = errors.New("commitment not found")
)

type Service struct {
	db    *gorm.DB
	cache *cache.Store
}

func NewService(db *gorm.DB, store *cache.Store) *Service {
	return &Service{db: db, cache: store}
}

// ListDay returns the user's commitments for one day in creation order.
// Reads are safe without a session: a nil user yields an empty list.
func (s *Service) ListDay(userID uuid.UUID, day string) ([]Commitment, error) {
	if userID == uuid.Nil {
		return []Commitment{}, nil
	}

	v, err := s.cache.GetOrLoad(cache.Daily(CacheEntity, userID, day), func() (interface{}, error) {
		var out []Commitment
		err := s.db.Scopes(session.OwnedBy(userID), session.OnDate(day)).
			Order("created_at ASC").
			Find(&out).Error
		return out, err
	})
	if err != nil {
		return nil, err
	}
	return v.([]Commitment), nil
}

func (s *Service) Create(userID uuid.UUID, day string, req CreateCommitmentRequest) (*Commitment, error) {
	if userID == uuid.Nil {
		return nil, session.ErrUnauthenticated
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	c := Commitment{
		ID:          uuid.New(),
		UserID:      userID,
		RoomID:      req.RoomID,
		Title:       title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Status:      StatusPending,
		Date:        day,
	}

	if err := s.db.Create(&c).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.Daily(CacheEntity, userID, day))
	return &c, nil
}

// UpdateStatus moves a commitment between pending and completed. Completing
// stamps completed_at; reverting to pending keeps the old stamp, which records
// the last time the commitment was completed.
func (s *Service) UpdateStatus(userID uuid.UUID, commitmentID uuid.UUID, status string) (*Commitment, error) {
	if userID == uuid.Nil {
		return nil, session.ErrUnauthenticated
	}
	if status != StatusPending && status != StatusCompleted {
		return nil, ErrInvalidStatus
	}

	var c Commitment
	if err := s.db.Scopes(session.OwnedBy(userID)).First(&c, "id = ?", commitmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommitmentNotFound
		}
		return nil, err
	}

	c.Status = status
	if status == StatusCompleted {
		now := time.Now().UTC()
		c.CompletedAt = &now
	}

	if err := s.db.Save(&c).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.Daily(CacheEntity, userID, c.Date))
	return &c, nil
}

func (s *Service) Delete(userID uuid.UUID, commitmentID uuid.UUID) error {
	if userID == uuid.Nil {
		return session.ErrUnauthenticated
	}

	var c Commitment
	if err := s.db.Scopes(session.OwnedBy(userID)).First(&c, "id = ?", commitmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommitmentNotFound
		}
		return err
	}

	if err := s.db.Delete(&c).Error; err != nil {
		return err
	}

	s.cache.Invalidate(cache.Daily(CacheEntity, userID, c.Date))
	return nil
}
