package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile carries the public-facing identity and the aggregate counters the
// nightly rollover maintains. Its primary key is the owning user's id.
type Profile struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DisplayName        string    `gorm:"size:100" json:"display_name"`
	AvatarURL          string    `gorm:"type:text" json:"avatar_url"`
	Email              string    `gorm:"size:255" json:"email"`
	CurrentStreak      int       `gorm:"default:0" json:"current_streak"`
	BestStreak         int       `gorm:"default:0" json:"best_streak"`
	ProductivityPoints int       `gorm:"default:0" json:"productivity_points"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
