package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/camille-osteopathe/booking-api/internal/model"
	"github.com/camille-osteopathe/booking-api/internal/repository"
)

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, patient_name, email, phone,
			date, time_slot, notes, locale, status,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.PatientName,
		apt.Email,
		apt.Phone,
		apt.Date,
		apt.TimeSlot,
		apt.Notes,
		apt.Locale,
		apt.Status,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `
		SELECT id, patient_name, email, phone,
			   date, time_slot, notes, locale, status,
			   confirmed_at, cancelled_at, created_at, updated_at
		FROM appointments
		WHERE id = $1
	`
	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.AppointmentStatus, decidedAt time.Time) error {
	// The status guard in the WHERE clause keeps a concurrent confirm/refuse
	// pair from both winning: the second write matches zero rows.
	var column string
	switch status {
	case model.AppointmentStatusConfirmed:
		column = "confirmed_at"
	case model.AppointmentStatusCancelled:
		column = "cancelled_at"
	default:
		return fmt.Errorf("invalid target status %q", status)
	}

	query := fmt.Sprintf(`
		UPDATE appointments
		SET status = $1, %s = $2, updated_at = $3
		WHERE id = $4 AND status = 'PENDING'
	`, column)

	result, err := r.db.ExecContext(ctx, query, status, decidedAt, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrStatusChanged
	}
	return nil
}

func (r *appointmentRepository) ListSlotsForDate(ctx context.Context, date time.Time) ([]string, error) {
	query := `
		SELECT time_slot
		FROM appointments
		WHERE date = $1
		AND status IN ('PENDING', 'CONFIRMED')
		ORDER BY time_slot ASC
	`
	var slots []string
	err := r.db.SelectContext(ctx, &slots, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list taken slots: %w", err)
	}
	return slots, nil
}
