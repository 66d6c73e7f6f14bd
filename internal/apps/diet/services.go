package diet

import (
	"errors"
	"strings"

	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CacheEntity names the cache family this service owns. Meals live inside
// their plan's cache entry, so meal writes invalidate the plan key.
const CacheEntity = "diet-plan"

var (
	ErrPlanExists        = errors.New("diet plan already exists for this day")
	ErrPlanNotFound      = errors.New("diet plan not found")
	ErrMealNotFound      = errors.New("meal not found")
	ErrMealNameRequired  = errors.New("meal name is required")
	ErrInvalidMealStatus = errors.New("invalid meal status")
)

type Service struct {
	db    *gorm.DB
	cache *cache.Store
}

func NewService(db *gorm.DB, store *cache.Store) *Service {
	return &Service{db: db, cache: store}
}

// PlanForDay fetches the user's plan with its meals in a single query.
// Returns nil (not an error) when no plan or no session exists.
func (s *Service) PlanForDay(userID uuid.UUID, day string) (*DietPlan, error) {
	if userID == uuid.Nil {
		return nil, nil
	}

	v, err := s.cache.GetOrLoad(cache.Daily(CacheEntity, userID, day), func() (interface{}, error) {
		var plan DietPlan
		err := s.db.Scopes(session.OwnedBy(userID), session.OnDate(day)).
			Preload("Meals", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC")
			}).
			First(&plan).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return (*DietPlan)(nil), nil
		}
		if err != nil {
			return nil, err
		}
		return &plan, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*DietPlan), nil
}

func (s *Service) CreatePlan(userID uuid.UUID, day string) (*DietPlan, error) {
	if userID == uuid.Nil {
		return nil, session.ErrUnauthenticated
	}

	var existing DietPlan
	if err := s.db.Scopes(session.OwnedBy(userID), session.OnDate(day)).First(&existing).Error; err == nil {
		return nil, ErrPlanExists
	}

	plan := DietPlan{
		ID:     uuid.New(),
		UserID: userID,
		Date:   day,
		Meals:  []Meal{},
	}

	if err := s.db.Create(&plan).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.Daily(CacheEntity, userID, day))
	return &plan, nil
}

func (s *Service) AddMeal(userID uuid.UUID, req AddMealRequest) (*Meal, error) {
	if userID == uuid.Nil {
		return nil, session.ErrUnauthenticated
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrMealNameRequired
	}

	var plan DietPlan
	if err := s.db.Scopes(session.OwnedBy(userID)).First(&plan, "id = ?", req.DietPlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	meal := Meal{
		ID:            uuid.New(),
		DietPlanID:    plan.ID,
		Name:          name,
		ScheduledTime: req.ScheduledTime,
		Status:        MealPending,
		Calories:      req.Calories,
		Notes:         req.Notes,
	}

	if err := s.db.Create(&meal).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.Daily(CacheEntity, userID, plan.Date))
	return &meal, nil
}

// SetMealStatus records how a meal went. Re-setting the same status is
// allowed and idempotent.
func (s *Service) SetMealStatus(userID uuid.UUID, mealID uuid.UUID, status string) (*Meal, error) {
	if userID == uuid.Nil {
		return nil, session.ErrUnauthenticated
	}
	if !isValidMealStatus(status) {
		return nil, ErrInvalidMealStatus
	}

	var meal Meal
	if err := s.db.First(&meal, "id = ?", mealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}

	var plan DietPlan
	if err := s.db.Scopes(session.OwnedBy(userID)).First(&plan, "id = ?", meal.DietPlanID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMealNotFound
		}
		return nil, err
	}

	meal.Status = status
	if err := s.db.Save(&meal).Error; err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.Daily(CacheEntity, userID, plan.Date))
	return &meal, nil
}

func isValidMealStatus(status string) bool {
	for _, valid := range MealStatuses {
		if status == valid {
			return true
		}
	}
	return false
}
