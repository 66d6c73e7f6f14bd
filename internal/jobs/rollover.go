package jobs

import (
	"log/slog"
	"time"

	"github.com/consistify/consistify-backend/internal/apps/commitments"
	"github.com/consistify/consistify-backend/internal/apps/profiles"
	"github.com/consistify/consistify-backend/internal/apps/scores"
	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/session"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Rollover closes out a finished day: unresolved commitments become
// incomplete, profile streaks and points are updated, and a score
// snapshot is persisted per active user.
type Rollover struct {
	db       *gorm.DB
	cache    *cache.Store
	profiles *profiles.Service
	scores   *scores.Service
	cron     *cron.Cron
}

func NewRollover(db *gorm.DB, store *cache.Store) *Rollover {
	return &Rollover{
		db:       db,
		cache:    store,
		profiles: profiles.NewService(db, store),
		scores:   scores.NewService(db),
	}
}

type dayTally struct {
	UserID    uuid.UUID
	Completed int
	Total     int
}

// Run processes one day. Safe to re-run: marking is idempotent and the
// score snapshot upserts, though streak counters only tolerate a single
// pass per day.
func (r *Rollover) Run(day string) error {
	started := time.Now()

	var tallies []dayTally
	err := r.db.Model(&commitments.Commitment{}).
		Select("user_id, SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) as completed, COUNT(*) as total", commitments.StatusCompleted).
		Where("date = ?", day).
		Group("user_id").
		Scan(&tallies).Error
	if err != nil {
		return err
	}

	result := r.db.Model(&commitments.Commitment{}).
		Where("date = ? AND status = ?", day, commitments.StatusPending).
		Update("status", commitments.StatusIncomplete)
	if result.Error != nil {
		return result.Error
	}

	for _, tally := range tallies {
		if _, err := r.profiles.RecordDay(tally.UserID, tally.Completed, tally.Total); err != nil {
			slog.Error("rollover: record day failed",
				slog.String("user_id", tally.UserID.String()),
				slog.String("day", day),
				slog.String("error", err.Error()))
		}
		if _, err := r.scores.Snapshot(tally.UserID, day); err != nil {
			slog.Error("rollover: score snapshot failed",
				slog.String("user_id", tally.UserID.String()),
				slog.String("day", day),
				slog.String("error", err.Error()))
		}
	}

	r.cache.InvalidateEntity(commitments.CacheEntity)

	slog.Info("rollover complete",
		slog.String("day", day),
		slog.Int("users", len(tallies)),
		slog.Int64("marked_incomplete", result.RowsAffected),
		slog.Duration("took", time.Since(started)))
	return nil
}

// Start schedules the rollover for the previous day on the configured
// cron expression. Returns the scheduler so the caller can stop it.
func (r *Rollover) Start(schedule string) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(schedule, func() {
		yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(session.DayFormat)
		if err := r.Run(yesterday); err != nil {
			slog.Error("rollover failed",
				slog.String("day", yesterday),
				slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	r.cron = c
	return c, nil
}

// Stop halts the scheduler if it was started.
func (r *Rollover) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}
