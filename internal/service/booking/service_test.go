package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camille-osteopathe/booking-api/internal/config"
	"github.com/camille-osteopathe/booking-api/internal/email"
	"github.com/camille-osteopathe/booking-api/internal/model"
	"github.com/camille-osteopathe/booking-api/internal/repository"
	apperrors "github.com/camille-osteopathe/booking-api/pkg/errors"
	"github.com/camille-osteopathe/booking-api/pkg/logger"
)

type fakeRepo struct {
	appointments map[uuid.UUID]*model.Appointment
	takenSlots   []string
	listErr      error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{appointments: make(map[uuid.UUID]*model.Appointment)}
}

func (r *fakeRepo) Create(_ context.Context, apt *model.Appointment) error {
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()
	copied := *apt
	r.appointments[apt.ID] = &copied
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, ok := r.appointments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *apt
	return &copied, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, id uuid.UUID, status model.AppointmentStatus, decidedAt time.Time) error {
	apt, ok := r.appointments[id]
	if !ok || apt.Status != model.AppointmentStatusPending {
		return repository.ErrStatusChanged
	}
	apt.Status = status
	switch status {
	case model.AppointmentStatusConfirmed:
		apt.ConfirmedAt = &decidedAt
	case model.AppointmentStatusCancelled:
		apt.CancelledAt = &decidedAt
	}
	return nil
}

func (r *fakeRepo) ListSlotsForDate(context.Context, time.Time) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.takenSlots, nil
}

type fakeSender struct {
	sent    []email.Message
	sendErr error
}

func (s *fakeSender) Send(_ context.Context, msg email.Message) (string, error) {
	if s.sendErr != nil {
		return "", s.sendErr
	}
	s.sent = append(s.sent, msg)
	return "msg-123", nil
}

func newTestService(repo *fakeRepo, sender *fakeSender, clientNotifications bool) *Service {
	emailCfg := config.EmailConfig{
		From:                "Camille <noreply@example.com>",
		ContactEmail:        "camille@example.com",
		ClientNotifications: clientNotifications,
	}
	site := config.SiteConfig{
		BaseURL:          "https://example.com",
		Domain:           "example.com",
		PractitionerName: "Camille Labasse",
		Address:          "Lisboa",
		Phone:            "+351 912 345 678",
	}
	return NewService(repo, sender, emailCfg, site, logger.NewLogger(nil))
}

func validRequest() *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		Name:   "Jean Dupont",
		Email:  "jean@example.com",
		Phone:  "+33612345678",
		Date:   "2025-06-10",
		Time:   "09:00",
		Notes:  "mal de dos",
		Locale: "fr",
	}
}

func TestCreateAppointment(t *testing.T) {
	repo := newFakeRepo()
	sender := &fakeSender{}
	svc := newTestService(repo, sender, false)

	apt, emailID, err := svc.CreateAppointment(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "msg-123", emailID)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, model.LocaleFR, apt.Locale)
	require.NotNil(t, apt.Notes)
	assert.Equal(t, "mal de dos", *apt.Notes)

	// Notification goes to the practitioner and carries the decision links.
	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "camille@example.com", msg.To)
	assert.Contains(t, msg.HTML, "https://example.com/api/reservations/"+apt.ID.String()+"/confirm")
	assert.Contains(t, msg.HTML, "https://example.com/api/reservations/"+apt.ID.String()+"/refuse")
	assert.Contains(t, msg.HTML, "mardi 10 juin 2025")

	// A calendar invite rides along with the notification.
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "rendez-vous.ics", msg.Attachments[0].Filename)
	assert.Contains(t, string(msg.Attachments[0].Content), "UID:appointment-"+apt.ID.String()+"@example.com")
}

func TestCreateAppointmentInvalidDate(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeSender{}, false)

	_, _, err := svc.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		Name: "Jean", Email: "jean@example.com", Phone: "1", Date: "10/06/2025", Time: "09:00",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestCreateAppointmentEmailFailure(t *testing.T) {
	repo := newFakeRepo()
	sender := &fakeSender{sendErr: errors.New("provider down")}
	svc := newTestService(repo, sender, false)

	_, _, err := svc.CreateAppointment(context.Background(), validRequest())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrUpstream, appErr.Code)

	// The appointment stays persisted even though the notification failed.
	assert.Len(t, repo.appointments, 1)
}

func createPending(t *testing.T, svc *Service) uuid.UUID {
	t.Helper()
	apt, _, err := svc.CreateAppointment(context.Background(), validRequest())
	require.NoError(t, err)
	return apt.ID
}

func TestConfirm(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSender{}, false)
	id := createPending(t, svc)

	result, err := svc.Confirm(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Equal(t, model.AppointmentStatusConfirmed, result.Appointment.Status)
	assert.NotNil(t, result.Appointment.ConfirmedAt)
	assert.Equal(t, model.AppointmentStatusConfirmed, repo.appointments[id].Status)
}

func TestConfirmTwice(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSender{}, false)
	id := createPending(t, svc)

	_, err := svc.Confirm(context.Background(), id)
	require.NoError(t, err)

	result, err := svc.Confirm(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyDone, result.Outcome)
}

func TestRefuseAfterConfirm(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSender{}, false)
	id := createPending(t, svc)

	_, err := svc.Confirm(context.Background(), id)
	require.NoError(t, err)

	result, err := svc.Refuse(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeConflict, result.Outcome)
	assert.Equal(t, model.AppointmentStatusConfirmed, result.Appointment.Status)
}

func TestRefuse(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSender{}, false)
	id := createPending(t, svc)

	result, err := svc.Refuse(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Equal(t, model.AppointmentStatusCancelled, result.Appointment.Status)
	assert.NotNil(t, result.Appointment.CancelledAt)
}

// racingRepo lands a competing decision between the service's read and its
// conditional write, so UpdateStatus always loses.
type racingRepo struct {
	*fakeRepo
	winner model.AppointmentStatus
}

func (r *racingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, _ model.AppointmentStatus, _ time.Time) error {
	_ = r.fakeRepo.UpdateStatus(ctx, id, r.winner, time.Now())
	return repository.ErrStatusChanged
}

func TestConfirmLosesRaceToRefuse(t *testing.T) {
	inner := newFakeRepo()
	svc := newTestService(inner, &fakeSender{}, false)
	id := createPending(t, svc)

	svc.repo = &racingRepo{fakeRepo: inner, winner: model.AppointmentStatusCancelled}
	result, err := svc.Confirm(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, OutcomeConflict, result.Outcome)
	assert.Equal(t, model.AppointmentStatusCancelled, result.Appointment.Status)
	assert.Equal(t, model.AppointmentStatusCancelled, inner.appointments[id].Status)
}

func TestConfirmLosesRaceToConfirm(t *testing.T) {
	inner := newFakeRepo()
	svc := newTestService(inner, &fakeSender{}, false)
	id := createPending(t, svc)

	// The competing click asked for the same state; the loser reports it as
	// already done rather than a conflict.
	svc.repo = &racingRepo{fakeRepo: inner, winner: model.AppointmentStatusConfirmed}
	result, err := svc.Confirm(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, OutcomeAlreadyDone, result.Outcome)
}

func TestConfirmUnknownAppointment(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeSender{}, false)

	_, err := svc.Confirm(context.Background(), uuid.New())

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestConfirmSendsClientEmailWhenEnabled(t *testing.T) {
	repo := newFakeRepo()
	sender := &fakeSender{}
	svc := newTestService(repo, sender, true)
	id := createPending(t, svc)

	_, err := svc.Confirm(context.Background(), id)
	require.NoError(t, err)

	// Notification email plus the patient confirmation, localized French.
	require.Len(t, sender.sent, 2)
	confirmation := sender.sent[1]
	assert.Equal(t, "jean@example.com", confirmation.To)
	assert.Equal(t, "Votre rendez-vous est confirmé ✅", confirmation.Subject)
	assert.Contains(t, confirmation.HTML, "Bonjour Jean Dupont,")
	require.Len(t, confirmation.Attachments, 1)
	assert.Contains(t, string(confirmation.Attachments[0].Content), "BEGIN:VCALENDAR")
}

func TestRefuseSendsClientEmailWhenEnabled(t *testing.T) {
	repo := newFakeRepo()
	sender := &fakeSender{}
	svc := newTestService(repo, sender, true)
	id := createPending(t, svc)

	_, err := svc.Refuse(context.Background(), id)
	require.NoError(t, err)

	require.Len(t, sender.sent, 2)
	refusal := sender.sent[1]
	assert.Equal(t, "jean@example.com", refusal.To)
	assert.Empty(t, refusal.HTML)
	assert.Contains(t, refusal.Text, "Bonjour Jean Dupont,")
}

func TestConfirmSkipsClientEmailWhenDisabled(t *testing.T) {
	repo := newFakeRepo()
	sender := &fakeSender{}
	svc := newTestService(repo, sender, false)
	id := createPending(t, svc)

	_, err := svc.Confirm(context.Background(), id)
	require.NoError(t, err)

	// Only the practitioner notification from the create step.
	assert.Len(t, sender.sent, 1)
}

func TestAvailability(t *testing.T) {
	repo := newFakeRepo()
	repo.takenSlots = []string{"09:00", "14:30"}
	svc := newTestService(repo, &fakeSender{}, false)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	slots, err := svc.Availability(context.Background(), date)
	require.NoError(t, err)

	byTime := make(map[string]bool, len(slots))
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}

	// 7 morning slots (09:00 through 12:00) and 8 afternoon slots
	// (14:00 through 17:30).
	assert.Len(t, slots, 15)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "17:30", slots[len(slots)-1].Time)
	_, hasLunch := byTime["12:30"]
	assert.False(t, hasLunch)
	_, hasNoon := byTime["12:00"]
	assert.True(t, hasNoon)

	assert.False(t, byTime["09:00"])
	assert.False(t, byTime["14:30"])
	assert.True(t, byTime["09:30"])
	assert.True(t, byTime["17:30"])
}

func TestAvailabilityCaching(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSender{}, false)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := svc.Availability(context.Background(), date)
	require.NoError(t, err)

	// A repository failure is invisible while the cache entry is warm.
	repo.listErr = errors.New("db down")
	slots, err := svc.Availability(context.Background(), date)
	require.NoError(t, err)
	assert.NotEmpty(t, slots)
}

func TestCreateInvalidatesAvailabilityCache(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeSender{}, false)
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	slots, err := svc.Availability(context.Background(), date)
	require.NoError(t, err)
	for _, s := range slots {
		assert.True(t, s.Available)
	}

	repo.takenSlots = []string{"09:00"}
	_, _, err = svc.CreateAppointment(context.Background(), validRequest())
	require.NoError(t, err)

	slots, err = svc.Availability(context.Background(), date)
	require.NoError(t, err)
	assert.False(t, slots[0].Available)
}
