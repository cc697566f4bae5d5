package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/soulful-cms/internal/queue"
	queue_publisher "github.com/iliyamo/soulful-cms/internal/service"
)

// ContactHandler receives contact form submissions and relays them to the
// message broker for the external collector to pick up.
type ContactHandler struct{}

func NewContactHandler() *ContactHandler { return &ContactHandler{} }

type contactReq struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit validates the form and publishes a contact event. A broker outage
// must not surface to the visitor, so publish errors are swallowed after
// being logged by the publisher.
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name, email and message are required"})
	}
	if !strings.Contains(req.Email, "@") {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid email"})
	}

	_ = queue_publisher.PublishContactMessage(c.Request().Context(), queue.ContactMessageEvent{
		Name:       req.Name,
		Email:      req.Email,
		Subject:    strings.TrimSpace(req.Subject),
		Message:    req.Message,
		ReceivedAt: time.Now().UTC().Format(time.RFC3339),
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Message received"})
}
