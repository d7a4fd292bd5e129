package booking

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/camille-osteopathe/booking-api/internal/model"
	bookingService "github.com/camille-osteopathe/booking-api/internal/service/booking"
	"github.com/camille-osteopathe/booking-api/pkg/errors"
)

const htmlContentType = "text/html; charset=utf-8"

type Handler struct {
	service             *bookingService.Service
	clientNotifications bool
}

func NewHandler(service *bookingService.Service, clientNotifications bool) *Handler {
	return &Handler{service: service, clientNotifications: clientNotifications}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	reservations := r.Group("/reservations")
	{
		reservations.POST("", h.CreateReservation)
		reservations.GET("/availability", h.GetAvailability)
		reservations.GET("/:id/confirm", h.ConfirmReservation)
		reservations.GET("/:id/refuse", h.RefuseReservation)
	}
}

func (h *Handler) CreateReservation(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.BadRequest("missing required fields", err))
		return
	}

	apt, emailID, err := h.service.CreateAppointment(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "reservation request sent",
		"appointmentId": apt.ID,
		"emailId":       emailID,
	})
}

func (h *Handler) GetAvailability(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		c.Error(errors.BadRequest("invalid date format", err))
		return
	}

	slots, err := h.service.Availability(c.Request.Context(), date)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"date":    date.Format("2006-01-02"),
		"slots":   slots,
	})
}

// ConfirmReservation is clicked from the notification email, so it answers
// with a full HTML page rather than JSON.
func (h *Handler) ConfirmReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Data(http.StatusNotFound, htmlContentType, []byte(notFoundPage()))
		return
	}

	result, err := h.service.Confirm(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	switch result.Outcome {
	case bookingService.OutcomeAlreadyDone:
		c.Data(http.StatusOK, htmlContentType, []byte(alreadyConfirmedPage()))
	case bookingService.OutcomeConflict:
		c.Data(http.StatusBadRequest, htmlContentType, []byte(confirmConflictPage()))
	default:
		c.Data(http.StatusOK, htmlContentType, []byte(confirmSuccessPage(result.Appointment, h.clientNotifications)))
	}
}

func (h *Handler) RefuseReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Data(http.StatusNotFound, htmlContentType, []byte(notFoundPage()))
		return
	}

	result, err := h.service.Refuse(c.Request.Context(), id)
	if err != nil {
		h.renderError(c, err)
		return
	}

	switch result.Outcome {
	case bookingService.OutcomeAlreadyDone:
		c.Data(http.StatusOK, htmlContentType, []byte(alreadyRefusedPage()))
	case bookingService.OutcomeConflict:
		c.Data(http.StatusBadRequest, htmlContentType, []byte(refuseConflictPage()))
	default:
		c.Data(http.StatusOK, htmlContentType, []byte(refuseSuccessPage(result.Appointment, h.clientNotifications)))
	}
}

func (h *Handler) renderError(c *gin.Context, err error) {
	if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrNotFound {
		c.Data(http.StatusNotFound, htmlContentType, []byte(notFoundPage()))
		return
	}
	// Keep the error in the gin context for the logging middleware, but the
	// practitioner still gets an HTML page.
	_ = c.Error(err)
	c.Data(http.StatusInternalServerError, htmlContentType, []byte(serverErrorPage()))
}
