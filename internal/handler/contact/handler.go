package contact

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/camille-osteopathe/booking-api/internal/model"
	contactService "github.com/camille-osteopathe/booking-api/internal/service/contact"
	"github.com/camille-osteopathe/booking-api/pkg/errors"
)

type Handler struct {
	service *contactService.Service
}

func NewHandler(service *contactService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/contact", h.SendMessage)
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req model.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.BadRequest("missing required fields", err))
		return
	}

	result, err := h.service.Send(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		c.Error(err)
		return
	}

	if result.DevMode {
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "message received (development mode)",
			"dev_mode": true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "message sent",
		"emailId": result.EmailID,
	})
}
