package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/propdesk/property-api/internal/model"
	"github.com/propdesk/property-api/internal/queue"
	"github.com/propdesk/property-api/internal/repository"
	queue_publisher "github.com/propdesk/property-api/internal/service"
)

// ContactHandler stores contact-form submissions and hands them off to the
// message broker for notification delivery.
type ContactHandler struct {
	Contacts *repository.ContactRepo
}

func NewContactHandler(r *repository.ContactRepo) *ContactHandler {
	return &ContactHandler{Contacts: r}
}

type contactReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Comments string `json:"comments"`
}

// Submit validates and stores a contact-form submission, then publishes a
// contact.submitted event. A broker failure is logged but never fails the
// request; the submission is already stored.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Comments = strings.TrimSpace(req.Comments)
	if req.Name == "" || req.Email == "" || req.Comments == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and comments are required"})
	}
	if !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid email format"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	contact := model.Contact{Name: req.Name, Email: req.Email, Comments: req.Comments}
	if err := h.Contacts.Create(ctx, &contact); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
		}
		c.Logger().Errorf("store contact failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to submit contact form"})
	}

	_ = queue_publisher.PublishContactSubmitted(ctx, queue.ContactSubmittedEvent{
		ContactID:   contact.ID,
		Name:        contact.Name,
		Email:       contact.Email,
		Comments:    contact.Comments,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Contact form submitted successfully",
		"id":      contact.ID,
	})
}
