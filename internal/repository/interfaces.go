package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/camille-osteopathe/booking-api/internal/model"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("not found")

// ErrStatusChanged is returned by UpdateStatus when the appointment left
// PENDING between the read and the conditional write.
var ErrStatusChanged = errors.New("appointment status changed")

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	// UpdateStatus transitions a PENDING appointment to the given terminal
	// status and stamps decidedAt into the matching timestamp column.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, decidedAt time.Time) error
	// ListSlotsForDate returns the time slots taken by non-cancelled
	// appointments on the given calendar date.
	ListSlotsForDate(ctx context.Context, date time.Time) ([]string, error)
}
