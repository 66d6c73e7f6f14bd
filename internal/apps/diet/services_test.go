package diet

import (
	"errors"
	"testing"

	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/session"
	"github.com/consistify/consistify-backend/internal/testutil"
	"github.com/google/uuid"
)

const day = "2026-08-31"

func newService(t *testing.T) *Service {
	t.Helper()
	db := testutil.NewDB(t, &DietPlan{}, &Meal{})
	return NewService(db, cache.NewStore())
}

func TestPlanAbsentReturnsNil(t *testing.T) {
	svc := newService(t)

	plan, err := svc.PlanForDay(uuid.New(), day)
	if err != nil {
		t.Fatalf("PlanForDay: %v", err)
	}
	if plan != nil {
		t.Fatalf("plan = %+v, want nil", plan)
	}
}

func TestPlanWithoutSessionReturnsNil(t *testing.T) {
	svc := newService(t)

	plan, err := svc.PlanForDay(uuid.Nil, day)
	if err != nil || plan != nil {
		t.Fatalf("plan, err = %+v, %v; want nil, nil", plan, err)
	}
}

func TestCreatePlanOncePerDay(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	if _, err := svc.CreatePlan(userID, day); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.CreatePlan(userID, day); !errors.Is(err, ErrPlanExists) {
		t.Fatalf("second create err = %v, want ErrPlanExists", err)
	}

	// Another user and another day are unaffected.
	if _, err := svc.CreatePlan(uuid.New(), day); err != nil {
		t.Errorf("other user's create: %v", err)
	}
	if _, err := svc.CreatePlan(userID, "2026-09-01"); err != nil {
		t.Errorf("next day's create: %v", err)
	}
}

func TestAddMealAppearsInPlan(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	plan, err := svc.CreatePlan(userID, day)
	if err != nil {
		t.Fatalf("create plan: %v", err)
	}

	calories := 450
	schedule := "08:00"
	meal, err := svc.AddMeal(userID, AddMealRequest{
		DietPlanID:    plan.ID,
		Name:          "oatmeal",
		ScheduledTime: &schedule,
		Calories:      &calories,
	})
	if err != nil {
		t.Fatalf("add meal: %v", err)
	}
	if meal.Status != MealPending {
		t.Errorf("new meal status = %q, want pending", meal.Status)
	}

	loaded, err := svc.PlanForDay(userID, day)
	if err != nil {
		t.Fatalf("reload plan: %v", err)
	}
	if loaded == nil || len(loaded.Meals) != 1 {
		t.Fatalf("reloaded plan = %+v, want 1 meal", loaded)
	}
	got := loaded.Meals[0]
	if got.Name != "oatmeal" || got.Calories == nil || *got.Calories != 450 {
		t.Errorf("meal = %+v", got)
	}
	if got.ScheduledTime == nil || *got.ScheduledTime != "08:00" {
		t.Errorf("scheduled time = %v, want 08:00", got.ScheduledTime)
	}
}

func TestAddMealRejectsBlankName(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	plan, _ := svc.CreatePlan(userID, day)
	if _, err := svc.AddMeal(userID, AddMealRequest{DietPlanID: plan.ID, Name: "  "}); !errors.Is(err, ErrMealNameRequired) {
		t.Fatalf("err = %v, want ErrMealNameRequired", err)
	}
}

func TestAddMealScopedToPlanOwner(t *testing.T) {
	svc := newService(t)
	owner := uuid.New()

	plan, _ := svc.CreatePlan(owner, day)
	if _, err := svc.AddMeal(uuid.New(), AddMealRequest{DietPlanID: plan.ID, Name: "snack"}); !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestSetMealStatus(t *testing.T) {
	svc := newService(t)
	userID := uuid.New()

	plan, _ := svc.CreatePlan(userID, day)
	meal, _ := svc.AddMeal(userID, AddMealRequest{DietPlanID: plan.ID, Name: "lunch"})

	updated, err := svc.SetMealStatus(userID, meal.ID, MealFollowed)
	if err != nil {
		t.Fatalf("set status: %v", err)
	}
	if updated.Status != MealFollowed {
		t.Fatalf("status = %q, want followed", updated.Status)
	}

	// Idempotent re-set.
	if _, err := svc.SetMealStatus(userID, meal.ID, MealFollowed); err != nil {
		t.Fatalf("re-set status: %v", err)
	}

	if _, err := svc.SetMealStatus(userID, meal.ID, "eaten"); !errors.Is(err, ErrInvalidMealStatus) {
		t.Errorf("invalid status err = %v, want ErrInvalidMealStatus", err)
	}
	if _, err := svc.SetMealStatus(uuid.New(), meal.ID, MealSkipped); !errors.Is(err, ErrMealNotFound) {
		t.Errorf("other user's update err = %v, want ErrMealNotFound", err)
	}

	loaded, _ := svc.PlanForDay(userID, day)
	if loaded.Meals[0].Status != MealFollowed {
		t.Fatalf("cached read did not reflect status write: %+v", loaded.Meals[0])
	}
}

func TestWritesRequireSession(t *testing.T) {
	svc := newService(t)

	if _, err := svc.CreatePlan(uuid.Nil, day); !errors.Is(err, session.ErrUnauthenticated) {
		t.Errorf("CreatePlan err = %v, want ErrUnauthenticated", err)
	}
	if _, err := svc.AddMeal(uuid.Nil, AddMealRequest{Name: "x"}); !errors.Is(err, session.ErrUnauthenticated) {
		t.Errorf("AddMeal err = %v, want ErrUnauthenticated", err)
	}
	if _, err := svc.SetMealStatus(uuid.Nil, uuid.New(), MealFollowed); !errors.Is(err, session.ErrUnauthenticated) {
		t.Errorf("SetMealStatus err = %v, want ErrUnauthenticated", err)
	}
}
