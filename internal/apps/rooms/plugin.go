package rooms

import (
	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RoomsPlugin struct{}

func New() *RoomsPlugin {
	return &RoomsPlugin{}
}

func (p *RoomsPlugin) ID() string { return "rooms" }

func (p *RoomsPlugin) Models() []interface{} {
	return []interface{}{
		&Room{},
		&RoomMember{},
		&Report{},
		&Block{},
	}
}

func (p *RoomsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, store *cache.Store, cfg *config.Config) {
	svc := NewService(db, store)
	handler := NewHandler(svc, svc.moderation)

	router.Get("/rooms", handler.ListPublic)
	router.Get("/rooms/mine", handler.Mine)
	router.Post("/rooms", handler.Create)
	router.Post("/rooms/:id/join", handler.Join)
	router.Delete("/rooms/:id/leave", handler.Leave)
	router.Get("/rooms/:id/members", handler.Members)

	router.Post("/reports", handler.Report)
	router.Post("/blocks/:userId", handler.Block)
	router.Delete("/blocks/:userId", handler.Unblock)
}

func (p *RoomsPlugin) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, store *cache.Store, cfg *config.Config) {
	svc := NewService(db, store)
	handler := NewHandler(svc, svc.moderation)

	router.Get("/reports", handler.AdminListReports)
	router.Put("/reports/:id", handler.AdminActionReport)
}
