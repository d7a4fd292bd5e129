package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camille-osteopathe/booking-api/internal/model"
	"github.com/camille-osteopathe/booking-api/internal/repository"
)

func newMockRepo(t *testing.T) (repository.AppointmentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAppointmentRepository(sqlx.NewDb(db, "postgres")), mock
}

func TestCreateAppointment(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO appointments").
		WillReturnResult(sqlmock.NewResult(0, 1))

	apt := &model.Appointment{
		PatientName: "Jean Dupont",
		Email:       "jean@example.com",
		Phone:       "+33612345678",
		Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "09:00",
		Locale:      model.LocaleFR,
		Status:      model.AppointmentStatusPending,
	}

	err := repo.Create(context.Background(), apt)
	require.NoError(t, err)

	// Create assigns the id and timestamps.
	assert.NotEqual(t, uuid.Nil, apt.ID)
	assert.False(t, apt.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAppointmentNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestGetAppointment(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "patient_name", "email", "phone",
		"date", "time_slot", "notes", "locale", "status",
		"confirmed_at", "cancelled_at", "created_at", "updated_at",
	}).AddRow(id, "Jean Dupont", "jean@example.com", "+33612345678",
		time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), "09:00", nil, "fr", "PENDING",
		nil, nil, now, now)

	mock.ExpectQuery("SELECT (.+) FROM appointments").
		WithArgs(id).
		WillReturnRows(rows)

	apt, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Jean Dupont", apt.PatientName)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Nil(t, apt.Notes)
}

func TestUpdateStatus(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	decidedAt := time.Now()
	mock.ExpectExec("UPDATE appointments").
		WithArgs("CONFIRMED", decidedAt, sqlmock.AnyArg(), id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), id, model.AppointmentStatusConfirmed, decidedAt)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusAlreadyDecided(t *testing.T) {
	repo, mock := newMockRepo(t)

	// The guard on status = 'PENDING' matches no rows once a decision landed.
	mock.ExpectExec("UPDATE appointments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), uuid.New(), model.AppointmentStatusCancelled, time.Now())
	assert.ErrorIs(t, err, repository.ErrStatusChanged)
}

func TestUpdateStatusRejectsPending(t *testing.T) {
	repo, _ := newMockRepo(t)

	err := repo.UpdateStatus(context.Background(), uuid.New(), model.AppointmentStatusPending, time.Now())
	assert.Error(t, err)
}

func TestListSlotsForDate(t *testing.T) {
	repo, mock := newMockRepo(t)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT time_slot").
		WithArgs(date).
		WillReturnRows(sqlmock.NewRows([]string{"time_slot"}).AddRow("09:00").AddRow("14:30"))

	slots, err := repo.ListSlotsForDate(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "14:30"}, slots)
}
