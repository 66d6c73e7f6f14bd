package handlers

import (
	"time"

	"github.com/consistify/consistify-backend/internal/achievements"
	"github.com/consistify/consistify-backend/internal/database"
	"github.com/consistify/consistify-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	catalog *achievements.Catalog
}

func NewHealthHandler(catalog *achievements.Catalog) *HealthHandler {
	return &HealthHandler{catalog: catalog}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:           "ok",
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		DB:               dbStatus,
		AchievementCount: len(h.catalog.All()),
	})
}
