package scores

import (
	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ScoresPlugin struct{}

func New() *ScoresPlugin {
	return &ScoresPlugin{}
}

func (p *ScoresPlugin) ID() string { return "scores" }

func (p *ScoresPlugin) Models() []interface{} {
	return []interface{}{
		&DailyScore{},
	}
}

func (p *ScoresPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, store *cache.Store, cfg *config.Config) {
	svc := NewService(db)
	handler := NewHandler(svc)

	router.Get("/scores/today", handler.Today)
	router.Get("/scores/history", handler.History)
}
