package profiles

import (
	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProfilesPlugin struct{}

func New() *ProfilesPlugin {
	return &ProfilesPlugin{}
}

func (p *ProfilesPlugin) ID() string { return "profiles" }

// Models returns nothing: Profile and the achievement tables are shared
// models migrated with the auth schema.
func (p *ProfilesPlugin) Models() []interface{} {
	return []interface{}{}
}

func (p *ProfilesPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, store *cache.Store, cfg *config.Config) {
	svc := NewService(db, store)
	handler := NewHandler(svc)

	router.Get("/profile", handler.Get)
	router.Put("/profile", handler.Update)
	router.Get("/profile/achievements", handler.Achievements)
}
