package scores

import (
	"strconv"

	"github.com/consistify/consistify-backend/internal/dto"
	"github.com/consistify/consistify-backend/internal/session"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Today(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	day := c.Query("date", session.Today())

	card, err := h.service.ForDay(userID, day)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to compute scores",
		})
	}

	return c.JSON(card)
}

func (h *Handler) History(c *fiber.Ctx) error {
	userID, err := session.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "30"))

	rows, err := h.service.History(userID, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch score history",
		})
	}

	return c.JSON(fiber.Map{"scores": rows, "total": len(rows)})
}
