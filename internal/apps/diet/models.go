package diet

import (
	"time"

	"github.com/google/uuid"
)

const (
	MealPending  = "pending"
	MealFollowed = "followed"
	MealPartial  = "partial"
	MealSkipped  = "skipped"
)

var MealStatuses = []string{MealPending, MealFollowed, MealPartial, MealSkipped}

// DietPlan is the per-day container of meals. At most one exists per
// (user, date); the unique index backs the query pattern.
type DietPlan struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_diet_plans_user_date" json:"user_id"`
	Date      string    `gorm:"size:10;not null;uniqueIndex:idx_diet_plans_user_date" json:"date"`
	CreatedAt time.Time `json:"created_at"`
	Meals     []Meal    `gorm:"foreignKey:DietPlanID" json:"meals"`
}

func (DietPlan) TableName() string { return "diet_plans" }

type Meal struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DietPlanID    uuid.UUID `gorm:"type:uuid;not null;index" json:"diet_plan_id"`
	Name          string    `gorm:"size:255;not null" json:"name"`
	ScheduledTime *string   `gorm:"size:8" json:"scheduled_time"`
	Status        string    `gorm:"size:20;default:'pending'" json:"status"`
	Calories      *int      `json:"calories"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
}

// --- DTOs ---

type AddMealRequest struct {
	DietPlanID    uuid.UUID `json:"diet_plan_id"`
	Name          string    `json:"name"`
	ScheduledTime *string   `json:"scheduled_time"`
	Calories      *int      `json:"calories"`
	Notes         string    `json:"notes"`
}

type SetMealStatusRequest struct {
	Status string `json:"status"`
}
