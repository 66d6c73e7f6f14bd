package scores

import (
	"time"

	"github.com/google/uuid"
)

// DailyScore is the persisted end-of-day snapshot. Live reads compute
// scores from the source tables instead.
type DailyScore struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_daily_scores_user_date" json:"user_id"`
	Date          string    `gorm:"size:10;not null;uniqueIndex:idx_daily_scores_user_date" json:"date"`
	TaskScore     int       `gorm:"default:0" json:"task_score"`
	TimeScore     int       `gorm:"default:0" json:"time_score"`
	DietScore     int       `gorm:"default:0" json:"diet_score"`
	ScheduleScore int       `gorm:"default:0" json:"schedule_score"`
	OverallScore  int       `gorm:"default:0" json:"overall_score"`
	CreatedAt     time.Time `json:"created_at"`
}

func (DailyScore) TableName() string { return "daily_scores" }

// Scorecard is the live, computed view for one day.
type Scorecard struct {
	Date          string `json:"date"`
	TaskScore     int    `json:"task_score"`
	TimeScore     int    `json:"time_score"`
	DietScore     int    `json:"diet_score"`
	ScheduleScore int    `json:"schedule_score"`
	OverallScore  int    `json:"overall_score"`
}
