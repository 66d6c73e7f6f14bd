package timelog

import (
	"errors"
	"testing"

	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/session"
	"github.com/consistify/consistify-backend/internal/testutil"
	"github.com/google/uuid"
)

const day = "2026-08-31"

func ptr(v float64) *float64 { return &v }

func newService(t *testing.T) *Service {
	t.Helper()
	db := testutil.NewDB(t, &TimeLog{})
	return NewService(db, cache.NewStore())
}

func TestForDayAbsentReturnsNil(t *testing.T) {
	svc := newService(t)

	log, err := svc.ForDay(uuid.New(), day)
	if err != nil {
		t.Fatalf("ForDay: %v", err)
	}
	if log != nil {
		t.Fatalf("log = %+v, want nil", log)
	}
}

func TestUpsertCreatesThenUpdatesSingleRow(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	first, err := svc.Upsert(userID, day, UpsertTimeLogRequest{FocusTimeHours: ptr(4), SleepHours: ptr(7.5)})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.FocusTimeHours != 4 || first.SleepHours != 7.5 {
		t.Fatalf("first = %+v", first)
	}

	second, err := svc.Upsert(userID, day, UpsertTimeLogRequest{FocusTimeHours: ptr(5)})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second upsert created a new row: %s vs %s", second.ID, first.ID)
	}
	if second.FocusTimeHours != 5 {
		t.Errorf("focus = %v, want 5", second.FocusTimeHours)
	}
	if second.SleepHours != 7.5 {
		t.Errorf("sleep = %v, want 7.5 (untouched)", second.SleepHours)
	}

	var count int64
	svc.db.Model(&TimeLog{}).Count(&count)
	if count != 1 {
		t.Fatalf("row count = %d, want 1", count)
	}
}

func TestUpsertRejectsNegativeHours(t *testing.T) {
	svc := newService(t)

	if _, err := svc.Upsert(uuid.New(), day, UpsertTimeLogRequest{EntertainmentHours: ptr(-1)}); !errors.Is(err, ErrNegativeHours) {
		t.Fatalf("err = %v, want ErrNegativeHours", err)
	}
}

func TestUpsertRequiresSession(t *testing.T) {
	svc := newService(t)

	if _, err := svc.Upsert(uuid.Nil, day, UpsertTimeLogRequest{FocusTimeHours: ptr(1)}); !errors.Is(err, session.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestReadAfterWriteSeesFreshRow(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	if log, _ := svc.ForDay(userID, day); log != nil {
		t.Fatalf("initial log = %+v", log)
	}

	if _, err := svc.Upsert(userID, day, UpsertTimeLogRequest{UnproductiveHours: ptr(1)}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	log, err := svc.ForDay(userID, day)
	if err != nil {
		t.Fatalf("ForDay after upsert: %v", err)
	}
	if log == nil || log.UnproductiveHours != 1 {
		t.Fatalf("cached read did not reflect write: %+v", log)
	}

	if _, err := svc.Upsert(userID, day, UpsertTimeLogRequest{UnproductiveHours: ptr(2)}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	log, _ = svc.ForDay(userID, day)
	if log.UnproductiveHours != 2 {
		t.Fatalf("unproductive = %v, want 2", log.UnproductiveHours)
	}
}

func TestDaysAreIndependent(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	if _, err := svc.Upsert(userID, day, UpsertTimeLogRequest{FocusTimeHours: ptr(3)}); err != nil {
		t.Fatalf("upsert day 1: %v", err)
	}
	if _, err := svc.Upsert(userID, "2026-09-01", UpsertTimeLogRequest{FocusTimeHours: ptr(6)}); err != nil {
		t.Fatalf("upsert day 2: %v", err)
	}

	var count int64
	svc.db.Model(&TimeLog{}).Count(&count)
	if count != 2 {
		t.Fatalf("row count = %d, want 2", count)
	}
}
