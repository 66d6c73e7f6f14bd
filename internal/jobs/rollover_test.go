package jobs

import (
	"testing"

	"github.com/consistify/consistify-backend/internal/apps/commitments"
	"github.com/consistify/consistify-backend/internal/apps/diet"
	"github.com/consistify/consistify-backend/internal/apps/scores"
	"github.com/consistify/consistify-backend/internal/apps/timelog"
	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/models"
	"github.com/consistify/consistify-backend/internal/testutil"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const day = "2026-08-30"

func newRollover(t *testing.T) (*Rollover, *gorm.DB, *cache.Store) {
	t.Helper()
	db := testutil.NewDB(t,
		&commitments.Commitment{},
		&diet.DietPlan{}, &diet.Meal{},
		&timelog.TimeLog{},
		&scores.DailyScore{},
		&models.Profile{},
	)
	store := cache.NewStore()
	return NewRollover(db, store), db, store
}

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	if err := db.Create(&models.Profile{ID: userID}).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return userID
}

func TestRunMarksPendingIncomplete(t *testing.T) {
	rollover, db, store := newRollover(t)
	userID := seedUser(t, db)

	svc := commitments.NewService(db, store)
	done, _ := svc.Create(userID, day, commitments.CreateCommitmentRequest{Title: "done"})
	svc.Create(userID, day, commitments.CreateCommitmentRequest{Title: "missed"})
	svc.UpdateStatus(userID, done.ID, commitments.StatusCompleted)

	if err := rollover.Run(day); err != nil {
		t.Fatalf("run: %v", err)
	}

	list, err := svc.ListDay(userID, day)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	statuses := map[string]string{}
	for _, c := range list {
		statuses[c.Title] = c.Status
	}
	if statuses["done"] != commitments.StatusCompleted {
		t.Errorf("done status = %q", statuses["done"])
	}
	if statuses["missed"] != commitments.StatusIncomplete {
		t.Errorf("missed status = %q, want incomplete", statuses["missed"])
	}
}

func TestRunUpdatesStreakAndSnapshot(t *testing.T) {
	rollover, db, store := newRollover(t)
	perfect := seedUser(t, db)
	slacker := seedUser(t, db)

	svc := commitments.NewService(db, store)
	c, _ := svc.Create(perfect, day, commitments.CreateCommitmentRequest{Title: "a"})
	svc.UpdateStatus(perfect, c.ID, commitments.StatusCompleted)
	svc.Create(slacker, day, commitments.CreateCommitmentRequest{Title: "b"})

	if err := rollover.Run(day); err != nil {
		t.Fatalf("run: %v", err)
	}

	var perfectProfile, slackerProfile models.Profile
	db.First(&perfectProfile, "id = ?", perfect)
	db.First(&slackerProfile, "id = ?", slacker)

	if perfectProfile.CurrentStreak != 1 || perfectProfile.ProductivityPoints != 10 {
		t.Errorf("perfect profile = %+v", perfectProfile)
	}
	if slackerProfile.CurrentStreak != 0 {
		t.Errorf("slacker streak = %d, want 0", slackerProfile.CurrentStreak)
	}

	var snapshots []scores.DailyScore
	db.Where("date = ?", day).Find(&snapshots)
	if len(snapshots) != 2 {
		t.Fatalf("snapshot count = %d, want 2", len(snapshots))
	}
	for _, snap := range snapshots {
		if snap.UserID == perfect && snap.TaskScore != 100 {
			t.Errorf("perfect task score = %d, want 100", snap.TaskScore)
		}
	}
}

func TestRunOnEmptyDayIsNoop(t *testing.T) {
	rollover, _, _ := newRollover(t)

	if err := rollover.Run(day); err != nil {
		t.Fatalf("run on empty day: %v", err)
	}
}
