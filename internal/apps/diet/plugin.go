package diet

import (
	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DietPlugin struct{}

func New() *DietPlugin {
	return &DietPlugin{}
}

func (p *DietPlugin) ID() string { return "diet" }

func (p *DietPlugin) Models() []interface{} {
	return []interface{}{
		&DietPlan{},
		&Meal{},
	}
}

func (p *DietPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, store *cache.Store, cfg *config.Config) {
	svc := NewService(db, store)
	handler := NewHandler(svc)

	router.Get("/diet/plan", handler.GetPlan)
	router.Post("/diet/plan", handler.CreatePlan)
	router.Post("/diet/meals", handler.AddMeal)
	router.Put("/diet/meals/:id", handler.SetMealStatus)
}
