package timelog

import (
	"errors"

	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const CacheEntity = "time-log"

var ErrNegativeHours = errors.New("hours cannot be negative")

type Service struct {
	db    *gorm.DB
	cache *cache.Store
}

func NewService(db *gorm.DB, store *cache.Store) *Service {
	return &Service{db: db, cache: store}
}

// ForDay returns the user's log for the day, or nil when none exists.
func (s *Service) ForDay(userID uuid.UUID, day string) (*TimeLog, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	v, err := s.cache.GetOrLoad(cache.Daily(CacheEntity, userID, day), func() (interface{}, error) {
		var log TimeLog
		err := s.db.Scopes(session.OwnedBy(userID), session.OnDate(day)).First(&log).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return (*TimeLog)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		return &log, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*TimeLog), nil
}

// Upsert merges the provided fields into the day's row, creating it on
// first write. The (user_id, date) unique index drives the conflict
// target, so concurrent writers converge on one row.
func (s *Service) Upsert(userID uuid.UUID, day string, req UpsertTimeLogRequest) (*TimeLog, error) {
	if userID == uuid.Nil {
		return nil, session.ErrUnauthenticated
	}

	assign := map[string]interface{}{}
	for col, val := range map[string]*float64{
		"screen_time_hours":   req.ScreenTimeHours,
		"focus_time_hours":    req.FocusTimeHours,
		"entertainment_hours": req.EntertainmentHours,
		"sleep_hours":         req.SleepHours,
		"unproductive_hours":  req.UnproductiveHours,
		"social_media_hours":  req.SocialMediaHours,
	} {
		if val == nil {
			continue
		}
		if *val < 0 {
			return nil, ErrNegativeHours
		}
		assign[col] = *val
	}

	row := TimeLog{
		ID:     uuid.New(),
		UserID: userID,
		Date:   day,
	}
	applyFields(&row, req)

	conflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(assign),
	}
	if len(assign) == 0 {
		conflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "date"}},
			DoNothing: true,
		}
	}

	if err := s.db.Clauses(conflict).Create(&row).Error; err != nil {
		return nil, err
	}

	// Reload so the caller sees the merged row, not just the insert values.
	var log TimeLog
	if err := s.db.Scopes(session.OwnedBy(userID), session.OnDate(day)).First(&log).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.Daily(CacheEntity, userID, day))
	return &log, nil
}

func applyFields(log *TimeLog, req UpsertTimeLogRequest) {
	if req.ScreenTimeHours != nil {
		log.ScreenTimeHours = *req.ScreenTimeHours
	}
	if req.FocusTimeHours != nil {
		log.FocusTimeHours = *req.FocusTimeHours
	}
	if req.EntertainmentHours != nil {
		log.EntertainmentHours = *req.EntertainmentHours
	}
	if req.SleepHours != nil {
		log.SleepHours = *req.SleepHours
	}
	if req.UnproductiveHours != nil {
		log.UnproductiveHours = *req.UnproductiveHours
	}
	if req.SocialMediaHours != nil {
		log.SocialMediaHours = *req.SocialMediaHours
	}
}
