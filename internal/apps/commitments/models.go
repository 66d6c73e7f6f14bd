package commitments

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending    = "pending"
	StatusCompleted  = "completed"
	StatusIncomplete = "incomplete"
)

// Commitment is a user-declared daily task. Several commitments may exist
// for the same (user, date). The UI only moves status between pending and
// completed; incomplete is assigned by the nightly rollover.
type Commitment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_commitments_user_date" json:"user_id"`
	RoomID      *uuid.UUID `gorm:"type:uuid;index" json:"room_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    *time.Time `json:"deadline"`
	Status      string     `gorm:"size:20;default:'pending';index" json:"status"`
	Date        string     `gorm:"size:10;not null;index:idx_commitments_user_date" json:"date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (Commitment) TableName() string { return "daily_commitments" }

// --- DTOs ---

type CreateCommitmentRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline"`
	RoomID      *uuid.UUID `json:"room_id"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CommitmentListResponse struct {
	Commitments []Commitment `json:"commitments"`
	Total       int          `json:"total"`
	Date        string       `json:"date"`
}
