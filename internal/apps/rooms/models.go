package rooms

import (
	"time"

	"github.com/consistify/consistify-backend/internal/models"
	"github.com/google/uuid"
)

var RoomTypes = []string{"study", "coding", "fitness", "startup", "custom"}

const DefaultMaxMembers = 10

type Room struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:255;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Type        string     `gorm:"size:50;not null" json:"type"`
	CreatedBy   *uuid.UUID `gorm:"type:uuid;index" json:"created_by"`
	IsPublic    bool       `gorm:"default:true" json:"is_public"`
	MaxMembers  int        `gorm:"default:10" json:"max_members"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }

type RoomMember struct {
	ID       uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_room_members_room_user" json:"room_id"`
	UserID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_room_members_room_user" json:"user_id"`
	IsAdmin  bool           `gorm:"default:false" json:"is_admin"`
	JoinedAt time.Time      `gorm:"autoCreateTime" json:"joined_at"`
	Profile  models.Profile `gorm:"foreignKey:UserID;references:ID" json:"profile"`
}

func (RoomMember) TableName() string { return "room_members" }

// Report flags room content for admin review.
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID  uuid.UUID `gorm:"type:uuid;not null;index" json:"reporter_id"`
	RoomID      uuid.UUID `gorm:"type:uuid;not null;index" json:"room_id"`
	ContentType string    `gorm:"size:20;not null" json:"content_type"`
	ContentID   string    `gorm:"size:255" json:"content_id"`
	Reason      string    `gorm:"type:text;not null" json:"reason"`
	Status      string    `gorm:"size:20;default:'pending'" json:"status"`
	AdminNote   string    `gorm:"type:text" json:"admin_note"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Report) TableName() string { return "reports" }

// Block hides another member's activity from the blocker.
type Block struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BlockerID uuid.UUID `gorm:"type:uuid;not null;index" json:"blocker_id"`
	BlockedID uuid.UUID `gorm:"type:uuid;not null;index" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Block) TableName() string { return "blocks" }

// --- DTOs ---

type CreateRoomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	IsPublic    *bool  `json:"is_public"`
	MaxMembers  int    `json:"max_members"`
}

// RoomView decorates a room with listing metadata for the requesting user.
type RoomView struct {
	Room
	MemberCount int  `json:"member_count"`
	IsMember    bool `json:"is_member"`
	IsAdmin     bool `json:"is_admin"`
}

type CreateReportRequest struct {
	RoomID      uuid.UUID `json:"room_id"`
	ContentType string    `json:"content_type"`
	ContentID   string    `json:"content_id"`
	Reason      string    `json:"reason"`
}

type ActionReportRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"admin_note"`
}
