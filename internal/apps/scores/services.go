package scores

import (
	"errors"

	"github.com/consistify/consistify-backend/internal/apps/commitments"
	"github.com/consistify/consistify-backend/internal/apps/diet"
	"github.com/consistify/consistify-backend/internal/apps/timelog"
	"github.com/consistify/consistify-backend/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service computes consistency scores from the day's source rows.
// Scores are derived data and are never cached: the inputs belong to
// other apps, whose writes this service cannot observe.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ForDay computes the live scorecard for one day.
func (s *Service) ForDay(userID uuid.UUID, day string) (*Scorecard, error) {
	if userID == uuid.Nil {
		return &Scorecard{Date: day}, nil
	}

	task, schedule, err := s.commitmentScores(userID, day)
	if err != nil {
		return nil, err
	}
	dietScore, err := s.dietScore(userID, day)
	if err != nil {
		return nil, err
	}
	timeScore, err := s.timeScore(userID, day)
	if err != nil {
		return nil, err
	}

	return &Scorecard{
		Date:          day,
		TaskScore:     task,
		TimeScore:     timeScore,
		DietScore:     dietScore,
		ScheduleScore: schedule,
		OverallScore:  Overall(task, timeScore, dietScore, schedule),
	}, nil
}

func (s *Service) commitmentScores(userID uuid.UUID, day string) (task, schedule int, err error) {
	var list []commitments.Commitment
	err = s.db.Scopes(session.OwnedBy(userID), session.OnDate(day)).Find(&list).Error
	if err != nil {
		return 0, 0, err
	}

	completed := 0
	deadlined := 0
	onTime := 0
	for _, c := range list {
		if c.Status == commitments.StatusCompleted {
			completed++
		}
		if c.Deadline == nil {
			continue
		}
		deadlined++
		if c.Status == commitments.StatusCompleted && c.CompletedAt != nil && !c.CompletedAt.After(*c.Deadline) {
			onTime++
		}
	}

	return CompletionRate(completed, len(list)), CompletionRate(onTime, deadlined), nil
}

func (s *Service) dietScore(userID uuid.UUID, day string) (int, error) {
	var plan diet.DietPlan
	err := s.db.Scopes(session.OwnedBy(userID), session.OnDate(day)).
		Preload("Meals").
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	followed, partial := 0, 0
	for _, m := range plan.Meals {
		switch m.Status {
		case diet.MealFollowed:
			followed++
		case diet.MealPartial:
			partial++
		}
	}
	return DietAdherence(followed, partial, len(plan.Meals)), nil
}

func (s *Service) timeScore(userID uuid.UUID, day string) (int, error) {
	var log timelog.TimeLog
	err := s.db.Scopes(session.OwnedBy(userID), session.OnDate(day)).First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return FocusRatio(log.FocusTimeHours, log.Total()), nil
}

// Snapshot persists the computed scorecard for the day, overwriting an
// earlier snapshot for the same (user, date).
func (s *Service) Snapshot(userID uuid.UUID, day string) (*DailyScore, error) {
	if userID == uuid.Nil {
		return nil, session.ErrUnauthenticated
	}

	card, err := s.ForDay(userID, day)
	if err != nil {
		return nil, err
	}

	row := DailyScore{
		ID:            uuid.New(),
		UserID:        userID,
		Date:          day,
		TaskScore:     card.TaskScore,
		TimeScore:     card.TimeScore,
		DietScore:     card.DietScore,
		ScheduleScore: card.ScheduleScore,
		OverallScore:  card.OverallScore,
	}

	err = s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"task_score":     row.TaskScore,
			"time_score":     row.TimeScore,
			"diet_score":     row.DietScore,
			"schedule_score": row.ScheduleScore,
			"overall_score":  row.OverallScore,
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var saved DailyScore
	if err := s.db.Scopes(session.OwnedBy(userID), session.OnDate(day)).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// History returns persisted snapshots, newest first.
func (s *Service) History(userID uuid.UUID, limit int) ([]DailyScore, error) {
	if userID == uuid.Nil {
		return []DailyScore{}, nil
	}
	if limit <= 0 || limit > 365 {
		limit = 30
	}

	var rows []DailyScore
	err := s.db.Scopes(session.OwnedBy(userID)).
		Order("date DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
