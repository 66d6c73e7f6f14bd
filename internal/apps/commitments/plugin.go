package commitments

import (
	"github.com/consistify/consistify-backend/internal/cache"
	"github.com/consistify/consistify-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CommitmentsPlugin struct{}

func New() *CommitmentsPlugin {
	return &CommitmentsPlugin{}
}

func (p *CommitmentsPlugin) ID() string { return "commitments" }

func (p *CommitmentsPlugin) Models() []interface{} {
	return []interface{}{
		&Commitment{},
	}
}

func (p *CommitmentsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, store *cache.Store, cfg *config.Config) {
	svc := NewService(db, store)
	handler := NewHandler(svc)

	router.Get("/commitments", handler.List)
	router.Post("/commitments", handler.Create)
	router.Put("/commitments/:id", handler.UpdateStatus)
	router.Delete("/commitments/:id", handler.Delete)
}
