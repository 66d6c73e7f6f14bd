package rooms

import (
	"errors"
	"testing"

	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/models"
	"github.com/consistify/consistify-backend/internal/session"
	"github.com/consistify/consistify-backend/internal/testutil"
	"github.com/google/uuid"
)

func newService(t *testing.T) *Service {
	t.Helper()
	db := testutil.NewDB(t, &Room{}, &RoomMember{}, &Report{}, &Block{}, &models.Profile{})
	return NewService(db, cache.NewStore())
}

func TestCreateAutoJoinsCreatorAsAdmin(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	room, err := svc.Create(userID, CreateRoomRequest{Name: "morning crew", Type: "study"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if room.MaxMembers != DefaultMaxMembers {
		t.Errorf("max members = %d, want %d", room.MaxMembers, DefaultMaxMembers)
	}
	if !room.IsPublic {
		t.Errorf("room defaults to private")
	}

	members, err := svc.Members(userID, room.ID)
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("member count = %d, want 1", len(members))
	}
	if members[0].UserID != userID || !members[0].IsAdmin {
		t.Fatalf("creator membership = %+v, want admin", members[0])
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	if _, err := svc.Create(userID, CreateRoomRequest{Name: " ", Type: "study"}); !errors.Is(err, ErrRoomNameRequired) {
		t.Errorf("blank name err = %v, want ErrRoomNameRequired", err)
	}
	if _, err := svc.Create(userID, CreateRoomRequest{Name: "x", Type: "karaoke"}); !errors.Is(err, ErrInvalidRoomType) {
		t.Errorf("bad type err = %v, want ErrInvalidRoomType", err)
	}
	if _, err := svc.Create(uuid.Nil, CreateRoomRequest{Name: "x", Type: "study"}); !errors.Is(err, session.ErrUnauthenticated) {
		t.Errorf("no session err = %v, want ErrUnauthenticated", err)
	}
	if _, err := svc.Create(userID, CreateRoomRequest{Name: "join at www.example.com", Type: "study"}); !errors.Is(err, ErrContentRejected) {
		t.Errorf("url in name err = %v, want ErrContentRejected", err)
	}
}

func TestListPublicCountsAndMembership(t *testing.T) {
	svc := newService(t)
	alice := uuid.New()
	bob := uuid.New()

	room, err := svc.Create(alice, CreateRoomRequest{Name: "deep work", Type: "coding"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Join(bob, room.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	views, err := svc.ListPublic(bob)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("listing len = %d, want 1", len(views))
	}
	if views[0].MemberCount != 2 {
		t.Errorf("member count = %d, want 2", views[0].MemberCount)
	}
	if !views[0].IsMember {
		t.Errorf("bob's membership flag not set")
	}
	if views[0].IsAdmin {
		t.Errorf("bob flagged as admin")
	}

	// The creator's listing carries the admin flag.
	mine, err := svc.ListPublic(alice)
	if err != nil {
		t.Fatalf("creator list: %v", err)
	}
	if !mine[0].IsMember || !mine[0].IsAdmin {
		t.Errorf("creator flags = member %v admin %v, want both", mine[0].IsMember, mine[0].IsAdmin)
	}

	// A stranger sees the same counts but no membership flag.
	stranger, err := svc.ListPublic(uuid.New())
	if err != nil {
		t.Fatalf("stranger list: %v", err)
	}
	if stranger[0].IsMember {
		t.Errorf("stranger flagged as member")
	}
	if stranger[0].MemberCount != 2 {
		t.Errorf("stranger sees count = %d, want 2", stranger[0].MemberCount)
	}
}

func TestMembersHidesBlockedUsers(t *testing.T) {
	svc := newService(t)
	alice := uuid.New()
	bob := uuid.New()

	room, _ := svc.Create(alice, CreateRoomRequest{Name: "focus den", Type: "coding"})
	if _, err := svc.Join(bob, room.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := svc.moderation.BlockUser(alice, bob); err != nil {
		t.Fatalf("block: %v", err)
	}

	members, err := svc.Members(alice, room.ID)
	if err != nil {
		t.Fatalf("members: %v", err)
	}
	if len(members) != 1 || members[0].UserID != alice {
		t.Fatalf("alice's listing = %+v, want bob hidden", members)
	}

	// Blocking is one-directional: bob still sees the full room.
	members, err = svc.Members(bob, room.ID)
	if err != nil {
		t.Fatalf("bob members: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("bob's listing len = %d, want 2", len(members))
	}

	if err := svc.moderation.UnblockUser(alice, bob); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if members, _ := svc.Members(alice, room.ID); len(members) != 2 {
		t.Fatalf("listing after unblock len = %d, want 2", len(members))
	}
}

func TestJoinGuards(t *testing.T) {
	svc := newService(t)
	creator := uuid.New()

	room, _ := svc.Create(creator, CreateRoomRequest{Name: "tiny", Type: "fitness", MaxMembers: 2})

	if _, err := svc.Join(creator, room.ID); !errors.Is(err, ErrAlreadyMember) {
		t.Errorf("rejoin err = %v, want ErrAlreadyMember", err)
	}
	if _, err := svc.Join(uuid.New(), uuid.New()); !errors.Is(err, ErrRoomNotFound) {
		t.Errorf("missing room err = %v, want ErrRoomNotFound", err)
	}

	if _, err := svc.Join(uuid.New(), room.ID); err != nil {
		t.Fatalf("second member join: %v", err)
	}
	if _, err := svc.Join(uuid.New(), room.ID); !errors.Is(err, ErrRoomFull) {
		t.Errorf("full room err = %v, want ErrRoomFull", err)
	}
}

func TestLeaveRemovesOnlyOwnMembership(t *testing.T) {
	svc := newService(t)
	alice := uuid.New()
	bob := uuid.New()

	room, _ := svc.Create(alice, CreateRoomRequest{Name: "shipmates", Type: "startup"})
	if _, err := svc.Join(bob, room.ID); err != nil {
		t.Fatalf("join: %v", err)
	}

	if err := svc.Leave(bob, room.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if err := svc.Leave(bob, room.ID); !errors.Is(err, ErrNotMember) {
		t.Errorf("second leave err = %v, want ErrNotMember", err)
	}

	members, _ := svc.Members(alice, room.ID)
	if len(members) != 1 || members[0].UserID != alice {
		t.Fatalf("members after leave = %+v, want only creator", members)
	}
}

func TestUserRoomsReflectsJoinsAndLeaves(t *testing.T) {
	svc := newService(t)
	alice := uuid.New()
	bob := uuid.New()

	room, _ := svc.Create(alice, CreateRoomRequest{Name: "alpha", Type: "study"})

	if rooms, _ := svc.UserRooms(bob); len(rooms) != 0 {
		t.Fatalf("bob's initial rooms = %d, want 0", len(rooms))
	}

	if _, err := svc.Join(bob, room.ID); err != nil {
		t.Fatalf("join: %v", err)
	}
	rooms, err := svc.UserRooms(bob)
	if err != nil {
		t.Fatalf("user rooms: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != room.ID {
		t.Fatalf("bob's rooms after join = %+v", rooms)
	}

	if err := svc.Leave(bob, room.ID); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if rooms, _ := svc.UserRooms(bob); len(rooms) != 0 {
		t.Fatalf("bob's rooms after leave = %d, want 0", len(rooms))
	}
}

func TestModerationReportFlow(t *testing.T) {
	svc := newService(t)
	reporter := uuid.New()

	room, _ := svc.Create(uuid.New(), CreateRoomRequest{Name: "quiet hours", Type: "study"})

	report, err := svc.moderation.CreateReport(reporter, &CreateReportRequest{
		RoomID:      room.ID,
		ContentType: "room",
		Reason:      "off-topic content",
	})
	if err != nil {
		t.Fatalf("create report: %v", err)
	}
	if report.Status != "pending" {
		t.Errorf("new report status = %q, want pending", report.Status)
	}

	if _, err := svc.moderation.CreateReport(reporter, &CreateReportRequest{RoomID: room.ID, ContentType: "post", Reason: "x"}); err == nil {
		t.Errorf("invalid content type accepted")
	}

	if err := svc.moderation.ActionReport(report.ID, &ActionReportRequest{Status: "dismissed", AdminNote: "reviewed, fine"}); err != nil {
		t.Fatalf("action report: %v", err)
	}
	if err := svc.moderation.ActionReport(uuid.New(), &ActionReportRequest{Status: "dismissed"}); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("missing report err = %v, want ErrReportNotFound", err)
	}

	reports, total, err := svc.moderation.ListReports("dismissed", 10, 0)
	if err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if total != 1 || len(reports) != 1 || reports[0].AdminNote != "reviewed, fine" {
		t.Fatalf("reports = %+v (total %d)", reports, total)
	}
}

func TestBlockFlow(t *testing.T) {
	svc := newService(t)
	alice := uuid.New()
	bob := uuid.New()

	if err := svc.moderation.BlockUser(alice, alice); !errors.Is(err, ErrSelfBlock) {
		t.Errorf("self block err = %v, want ErrSelfBlock", err)
	}
	if err := svc.moderation.BlockUser(alice, bob); err != nil {
		t.Fatalf("block: %v", err)
	}
	if err := svc.moderation.BlockUser(alice, bob); !errors.Is(err, ErrAlreadyBlocked) {
		t.Errorf("double block err = %v, want ErrAlreadyBlocked", err)
	}

	ids, err := svc.moderation.GetBlockedIDs(alice)
	if err != nil {
		t.Fatalf("blocked ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != bob {
		t.Fatalf("blocked ids = %v", ids)
	}

	if err := svc.moderation.UnblockUser(alice, bob); err != nil {
		t.Fatalf("unblock: %v", err)
	}
	if ids, _ := svc.moderation.GetBlockedIDs(alice); len(ids) != 0 {
		t.Fatalf("blocked ids after unblock = %v", ids)
	}
}
