package handler

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-feed-api/internal/model"
	"github.com/iliyamo/social-feed-api/internal/queue"
	"github.com/iliyamo/social-feed-api/internal/repository"
	queue_publisher "github.com/iliyamo/social-feed-api/internal/service"
)

// ContactHandler accepts messages from the public contact form.
type ContactHandler struct {
	Contacts *repository.ContactRepo
}

func NewContactHandler(r *repository.ContactRepo) *ContactHandler {
	return &ContactHandler{Contacts: r}
}

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit handles POST /api/contact. All five fields are required; the stored
// record is echoed back on success.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"msg": "invalid body"})
	}
	var msgs []string
	if strings.TrimSpace(req.Name) == "" {
		msgs = append(msgs, "Name field is Required")
	}
	if strings.TrimSpace(req.Email) == "" {
		msgs = append(msgs, "Email field is Required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		msgs = append(msgs, "Phone field is Required")
	}
	if strings.TrimSpace(req.Subject) == "" {
		msgs = append(msgs, "Subject field is Required")
	}
	if strings.TrimSpace(req.Message) == "" {
		msgs = append(msgs, "Your Message field is Required")
	}
	if len(msgs) > 0 {
		return validationError(c, msgs...)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	contact := model.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.Contacts.Create(ctx, &contact); err != nil {
		log.Printf("contact: insert failed: %v", err)
		return serverError(c)
	}

	_ = queue_publisher.PublishContactReceived(ctx, queue.ContactReceivedEvent{
		ContactID:  contact.ID,
		Name:       contact.Name,
		Email:      contact.Email,
		Subject:    contact.Subject,
		ReceivedAt: contact.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, contact)
}
