package timelog

import (
	"time"

	"github.com/google/uuid"
)

// TimeLog holds one row per (user, date). Writes upsert into that row
// rather than appending, so a day's log is always a single record.
type TimeLog struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_time_logs_user_date" json:"user_id"`
	Date               string    `gorm:"size:10;not null;uniqueIndex:idx_time_logs_user_date" json:"date"`
	ScreenTimeHours    float64   `gorm:"default:0" json:"screen_time_hours"`
	FocusTimeHours     float64   `gorm:"default:0" json:"focus_time_hours"`
	EntertainmentHours float64   `gorm:"default:0" json:"entertainment_hours"`
	SleepHours         float64   `gorm:"default:0" json:"sleep_hours"`
	UnproductiveHours  float64   `gorm:"default:0" json:"unproductive_hours"`
	SocialMediaHours   float64   `gorm:"default:0" json:"social_media_hours"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (TimeLog) TableName() string { return "time_logs" }

// Total sums every tracked duration for the day.
func (t *TimeLog) Total() float64 {
	return t.ScreenTimeHours + t.FocusTimeHours + t.EntertainmentHours +
		t.SleepHours + t.UnproductiveHours + t.SocialMediaHours
}

// UpsertTimeLogRequest carries the fields the caller wants to change.
// Nil fields leave the stored value untouched.
type UpsertTimeLogRequest struct {
	ScreenTimeHours    *float64 `json:"screen_time_hours"`
	FocusTimeHours     *float64 `json:"focus_time_hours"`
	EntertainmentHours *float64 `json:"entertainment_hours"`
	SleepHours         *float64 `json:"sleep_hours"`
	UnproductiveHours  *float64 `json:"unproductive_hours"`
	SocialMediaHours   *float64 `json:"social_media_hours"`
}
