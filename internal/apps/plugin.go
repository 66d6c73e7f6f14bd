package apps

import (
	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin defines the interface every tracker app must implement.
type Plugin interface {
	// ID returns the unique app identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts app-specific routes on the given Fiber group.
	// The group is already prefixed with /api and has JWT middleware applied.
	// The cache store is the shared read cache every app service invalidates
	// on successful writes.
	RegisterRoutes(router fiber.Router, db *gorm.DB, store *cache.Store, cfg *config.Config)
}

// AdminPlugin extends Plugin with admin-specific route registration.
type AdminPlugin interface {
	Plugin

	// RegisterAdminRoutes mounts admin-only routes on the given Fiber group.
	// The group has both JWT and Admin middleware applied.
	RegisterAdminRoutes(router fiber.Router, db *gorm.DB, store *cache.Store, cfg *config.Config)
}
