package models

import (
	"time"

	"github.com/google/uuid"
)

// Achievement is one row of the static catalog seeded at startup.
type Achievement struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description   string    `gorm:"size:500" json:"description"`
	Icon          string    `gorm:"size:50" json:"icon"`
	RequiredValue int       `gorm:"default:0" json:"required_value"`
	CreatedAt     time.Time `json:"created_at"`
}

type UserAchievement struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievements_user_achievement" json:"user_id"`
	AchievementID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievements_user_achievement" json:"achievement_id"`
	EarnedAt      time.Time   `json:"earned_at"`
	Achievement   Achievement `gorm:"foreignKey:AchievementID" json:"achievement"`
}
