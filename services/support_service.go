package services

import (
	"tricky-turns-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SupportService struct {
	DB *gorm.DB
}

func NewSupportService(db *gorm.DB) *SupportService {
	return &SupportService{DB: db}
}

type supportTicketRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ListMyTickets handles GET /support/tickets (auth required).
func (s *SupportService) ListMyTickets(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)

	var tickets []models.SupportTicket
	if err := s.DB.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&tickets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load tickets"})
	}
	return c.JSON(tickets)
}

// SubmitTicket handles POST /support/ticket (auth required).
func (s *SupportService) SubmitTicket(c *fiber.Ctx) error {
	ownerID := c.Locals("owner_id").(string)

	var req supportTicketRequest
	if ok, resp := ParseAndValidate(c, &req); !ok {
		return resp
	}

	ticket := models.SupportTicket{
		OwnerID: ownerID,
		Subject: req.Subject,
		Message: req.Message,
		Status:  "open",
	}
	if err := s.DB.Create(&ticket).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to submit ticket"})
	}
	return c.JSON(fiber.Map{"ticket_id": ticket.ID, "message": "Support ticket submitted"})
}
