package rooms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// CacheEntityPublic caches the shared public listing; CacheEntityMine
	// caches each user's own room list.
	CacheEntityPublic = "rooms"
	CacheEntityMine   = "user-rooms"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNameRequired = errors.New("room name is required")
	ErrInvalidRoomType  = errors.New("invalid room type")
	ErrAlreadyMember    = errors.New("already a member of this room")
	ErrRoomFull         = errors.New("room is full")
	ErrNotMember        = errors.New("not a member of this room")
	ErrContentRejected  = errors.New("content rejected")
)

type Service struct {
	db         *gorm.DB
	cache      *cache.Store
	moderation *ModerationService
}

func NewService(db *gorm.DB, store *cache.Store) *Service {
	return &Service{db: db, cache: store, moderation: NewModerationService(db)}
}

type memberCount struct {
	RoomID uuid.UUID
	Count  int
}

// ListPublic returns every public room with member counts and, when a
// session exists, the viewer's membership flag. Counts come from one
// grouped query and membership from one IN query, regardless of how
// many rooms are listed.
func (s *Service) ListPublic(viewerID uuid.UUID) ([]RoomView, error) {
	v, err := s.cache.GetOrLoad(cache.Shared(CacheEntityPublic), func() (interface{}, error) {
		var rooms []Room
		if err := s.db.Where("is_public = ?", true).Order("created_at DESC").Find(&rooms).Error; err != nil {
			return nil, err
		}

		roomIDs := make([]uuid.UUID, len(rooms))
		for i, r := range rooms {
			roomIDs[i] = r.ID
		}

		counts := map[uuid.UUID]int{}
		if len(roomIDs) > 0 {
			var rows []memberCount
			err := s.db.Model(&RoomMember{}).
				Select("room_id, COUNT(*) as count").
				Where("room_id IN ?", roomIDs).
				Group("room_id").
				Scan(&rows).Error
			if err != nil {
				return nil, err
			}
			for _, row := range rows {
				counts[row.RoomID] = row.Count
			}
		}

		views := make([]RoomView, len(rooms))
		for i, r := range rooms {
			views[i] = RoomView{Room: r, MemberCount: counts[r.ID]}
		}
		return views, nil
	})
	if err != nil {
		return nil, err
	}
	cached := v.([]RoomView)

	// Copy before decorating: the cached slice is shared across viewers.
	views := make([]RoomView, len(cached))
	copy(views, cached)

	if viewerID == uuid.Nil || len(views) == 0 {
		return views, nil
	}

	roomIDs := make([]uuid.UUID, len(views))
	for i, v := range views {
		roomIDs[i] = v.ID
	}

	var memberships []RoomMember
	if err := s.db.Where("user_id = ? AND room_id IN ?", viewerID, roomIDs).Find(&memberships).Error; err != nil {
		return nil, err
	}
	mine := map[uuid.UUID]*RoomMember{}
	for i := range memberships {
		mine[memberships[i].RoomID] = &memberships[i]
	}
	for i := range views {
		if m, ok := mine[views[i].ID]; ok {
			views[i].IsMember = true
			views[i].IsAdmin = m.IsAdmin
		}
	}
	return views, nil
}

// UserRooms lists the rooms the user belongs to, newest join first.
func (s *Service) UserRooms(userID uuid.UUID) ([]Room, error) {
	if userID == uuid.Nil {
		return []Room{}, nil
	}

	v, err := s.cache.GetOrLoad(cache.ForUser(CacheEntityMine, userID), func() (interface{}, error) {
		var rooms []Room
		err := s.db.
			Joins("JOIN room_members ON room_members.room_id = rooms.id").
			Where("room_members.user_id = ?", userID).
			Order("room_members.joined_at DESC").
			Find(&rooms).Error
		if err != nil {
			return nil, err
		}
		return rooms, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Room), nil
}

// Create inserts the room and its creator's admin membership in one
// transaction. A room never exists without its creator inside it.
func (s *Service) Create(userID uuid.UUID, req CreateRoomRequest) (*Room, error) {
	if userID == uuid.Nil {
		return nil, session.ErrUnauthenticated
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrRoomNameRequired
	}
	if !isValidRoomType(req.Type) {
		return nil, ErrInvalidRoomType
	}
	if ok, reason := s.moderation.FilterContent(name + " " + req.Description); !ok {
		return nil, fmt.Errorf("%w: %s", ErrContentRejected, s.moderation.GetRejectionMessage(reason))
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}
	maxMembers := req.MaxMembers
	if maxMembers <= 0 {
		maxMembers = DefaultMaxMembers
	}

	room := Room{
		ID:          uuid.New(),
		Name:        name,
		Description: req.Description,
		Type:        req.Type,
		CreatedBy:   &userID,
		IsPublic:    isPublic,
		MaxMembers:  maxMembers,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		member := RoomMember{
			ID:      uuid.New(),
			RoomID:  room.ID,
			UserID:  userID,
			IsAdmin: true,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateEntity(CacheEntityPublic)
	s.cache.Invalidate(cache.ForUser(CacheEntityMine, userID))
	return &room, nil
}

func (s *Service) Join(userID uuid.UUID, roomID uuid.UUID) (*RoomMember, error) {
	if userID == uuid.Nil {
		return nil, session.ErrUnauthenticated
	}

	var room Room
	if err := s.db.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	var existing RoomMember
	if err := s.db.Where("room_id = ? AND user_id = ?", roomID, userID).First(&existing).Error; err == nil {
		return nil, ErrAlreadyMember
	}

	var count int64
	if err := s.db.Model(&RoomMember{}).Where("room_id = ?", roomID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count >= int64(room.MaxMembers) {
		return nil, ErrRoomFull
	}

	member := RoomMember{
		ID:     uuid.New(),
		RoomID: roomID,
		UserID: userID,
	}
	if err := s.db.Create(&member).Error; err != nil {
		return nil, err
	}

	s.cache.InvalidateEntity(CacheEntityPublic)
	s.cache.Invalidate(cache.ForUser(CacheEntityMine, userID))
	return &member, nil
}

// Leave removes only the acting user's membership row.
func (s *Service) Leave(userID uuid.UUID, roomID uuid.UUID) error {
	if userID == uuid.Nil {
		return session.ErrUnauthenticated
	}

	result := s.db.Where("room_id = ? AND user_id = ?", roomID, userID).Delete(&RoomMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotMember
	}

	s.cache.InvalidateEntity(CacheEntityPublic)
	s.cache.Invalidate(cache.ForUser(CacheEntityMine, userID))
	return nil
}

// Members lists a room's members with their profiles, admins first.
// Users the viewer has blocked are left out of the listing.
func (s *Service) Members(userID uuid.UUID, roomID uuid.UUID) ([]RoomMember, error) {
	if userID == uuid.Nil {
		return []RoomMember{}, nil
	}

	var room Room
	if err := s.db.First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	query := s.db.Where("room_id = ?", roomID)
	blocked, err := s.moderation.GetBlockedIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(blocked) > 0 {
		query = query.Where("user_id NOT IN ?", blocked)
	}

	var members []RoomMember
	err = query.
		Preload("Profile").
		Order("is_admin DESC, joined_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func isValidRoomType(roomType string) bool {
	for _, valid := range RoomTypes {
		if roomType == valid {
			return true
		}
	}
	return false
}
