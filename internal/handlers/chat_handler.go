package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/codebuddy1234/Kisan-Sahay1/internal/models"
	"github.com/codebuddy1234/Kisan-Sahay1/internal/services"
)

// ChatHandler serves per-scheme question answering.
type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// HandleSchemeChat handles POST /scheme-chat.
func (h *ChatHandler) HandleSchemeChat(c *fiber.Ctx) error {
	var req models.SchemeChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request payload",
		})
	}

	if req.Message == "" || req.Slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Message and slug required",
		})
	}

	reply, err := h.chatService.Answer(c.Context(), req.Slug, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrSchemeNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Scheme not found",
			})
		}
		log.Printf("❌ Scheme chat failed: %v\n", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "AI failed",
		})
	}

	return c.JSON(fiber.Map{"success": true, "reply": reply})
}
