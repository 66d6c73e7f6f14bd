package timelog

import (
	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TimeLogPlugin struct{}

func New() *TimeLogPlugin {
	return &TimeLogPlugin{}
}

func (p *TimeLogPlugin) ID() string { return "timelog" }

func (p *TimeLogPlugin) Models() []interface{} {
	return []interface{}{
		&TimeLog{},
	}
}

func (p *TimeLogPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, store *cache.Store, cfg *config.Config) {
	svc := NewService(db, store)
	handler := NewHandler(svc)

	router.Get("/time-logs", handler.Get)
	router.Put("/time-logs", handler.Upsert)
}
