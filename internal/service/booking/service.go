package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/camille-osteopathe/booking-api/internal/calendar"
	"github.com/camille-osteopathe/booking-api/internal/config"
	"github.com/camille-osteopathe/booking-api/internal/email"
	"github.com/camille-osteopathe/booking-api/internal/i18n"
	"github.com/camille-osteopathe/booking-api/internal/model"
	"github.com/camille-osteopathe/booking-api/internal/repository"
	apperrors "github.com/camille-osteopathe/booking-api/pkg/errors"
	"github.com/camille-osteopathe/booking-api/pkg/logger"
)

// Outcome classifies what a confirm/refuse click did.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	// OutcomeAlreadyDone: the appointment was already in the requested
	// terminal state. Covers double clicks and email link prefetching.
	OutcomeAlreadyDone
	// OutcomeConflict: the opposite terminal state applied first.
	OutcomeConflict
)

// DecisionResult is what a decision endpoint renders a page from.
type DecisionResult struct {
	Outcome     Outcome
	Appointment *model.Appointment
}

const (
	availabilityCacheTTL = time.Minute
	dateLayout           = "2006-01-02"
)

type Service struct {
	repo      repository.AppointmentRepository
	sender    email.Sender
	emailCfg  config.EmailConfig
	site      config.SiteConfig
	log       *logger.Logger
	slotCache *gocache.Cache
}

func NewService(repo repository.AppointmentRepository, sender email.Sender, emailCfg config.EmailConfig, site config.SiteConfig, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		sender:    sender,
		emailCfg:  emailCfg,
		site:      site,
		log:       log,
		slotCache: gocache.New(availabilityCacheTTL, 5*time.Minute),
	}
}

// CreateAppointment persists a PENDING appointment and emails the
// practitioner a notification with accept/refuse links and a calendar-add
// link. Returns the appointment and the provider message id. A provider
// failure surfaces as an upstream error; the persisted appointment is not
// rolled back.
func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, string, error) {
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, "", apperrors.BadRequest("invalid date", err)
	}

	apt := &model.Appointment{
		PatientName: req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Date:        date,
		TimeSlot:    req.Time,
		Locale:      model.NormalizeLocale(req.Locale),
		Status:      model.AppointmentStatusPending,
	}
	if req.Notes != "" {
		apt.Notes = &req.Notes
	}

	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, "", apperrors.Internal(fmt.Errorf("failed to create appointment: %w", err))
	}

	s.slotCache.Delete(req.Date)

	event, err := calendar.PractitionerEvent(date, apt.TimeSlot, apt.PatientName, apt.Email, req.Notes,
		s.site.PractitionerName, s.emailCfg.ContactEmail, s.site.Address)
	if err != nil {
		return nil, "", apperrors.BadRequest("invalid time slot", err)
	}

	subject, htmlBody := email.PractitionerNotification(email.NotificationDetails{
		PatientName: apt.PatientName,
		Email:       apt.Email,
		Phone:       apt.Phone,
		Date:        i18n.FormatLongDate(apt.Locale, date),
		Time:        apt.TimeSlot,
		Notes:       req.Notes,
		ConfirmURL:  fmt.Sprintf("%s/api/reservations/%s/confirm", s.site.BaseURL, apt.ID),
		RefuseURL:   fmt.Sprintf("%s/api/reservations/%s/refuse", s.site.BaseURL, apt.ID),
		CalendarURL: calendar.GoogleCalendarURL(event),
		Address:     s.site.Address,
	})

	emailID, err := s.sender.Send(ctx, email.Message{
		From:        s.emailCfg.From,
		To:          s.emailCfg.ContactEmail,
		Subject:     subject,
		HTML:        htmlBody,
		Attachments: []email.Attachment{s.invite(event, apt.ID)},
	})
	if err != nil {
		s.log.Error(err, "failed to send practitioner notification", "appointment_id", apt.ID.String())
		return nil, "", apperrors.Upstream("failed to send notification email", err)
	}

	s.log.Info("appointment requested", "appointment_id", apt.ID.String(), "email_id", emailID)
	return apt, emailID, nil
}

// Confirm handles the practitioner's accept link.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*DecisionResult, error) {
	return s.decide(ctx, id, model.AppointmentStatusConfirmed)
}

// Refuse handles the practitioner's refuse link.
func (s *Service) Refuse(ctx context.Context, id uuid.UUID) (*DecisionResult, error) {
	return s.decide(ctx, id, model.AppointmentStatusCancelled)
}

func (s *Service) decide(ctx context.Context, id uuid.UUID, target model.AppointmentStatus) (*DecisionResult, error) {
	apt, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("appointment", err)
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if res := classify(apt, target); res != nil {
		return res, nil
	}

	now := time.Now()
	err = s.repo.UpdateStatus(ctx, id, target, now)
	if errors.Is(err, repository.ErrStatusChanged) {
		// Lost the race to the other link; reread and report what won.
		apt, err = s.repo.Get(ctx, id)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		if res := classify(apt, target); res != nil {
			return res, nil
		}
		return nil, apperrors.Internal(fmt.Errorf("appointment %s in unexpected state %s", id, apt.Status))
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	apt.Status = target
	switch target {
	case model.AppointmentStatusConfirmed:
		apt.ConfirmedAt = &now
	case model.AppointmentStatusCancelled:
		apt.CancelledAt = &now
	}

	s.slotCache.Delete(apt.Date.Format(dateLayout))
	s.notifyClient(ctx, apt)

	s.log.Info("appointment decided", "appointment_id", id.String(), "status", string(target))
	return &DecisionResult{Outcome: OutcomeSuccess, Appointment: apt}, nil
}

func classify(apt *model.Appointment, target model.AppointmentStatus) *DecisionResult {
	switch {
	case apt.Status == target:
		return &DecisionResult{Outcome: OutcomeAlreadyDone, Appointment: apt}
	case apt.Status.IsTerminal():
		return &DecisionResult{Outcome: OutcomeConflict, Appointment: apt}
	}
	return nil
}

// notifyClient sends the patient-facing confirmation or refusal email. Gated
// by the client_notifications toggle, which stays off until the sending
// domain is verified with the provider. Failures are logged; the decision
// stands either way.
func (s *Service) notifyClient(ctx context.Context, apt *model.Appointment) {
	if !s.emailCfg.ClientNotifications {
		return
	}

	formattedDate := i18n.FormatLongDate(apt.Locale, apt.Date)
	msg := email.Message{
		From: s.emailCfg.From,
		To:   apt.Email,
	}

	switch apt.Status {
	case model.AppointmentStatusConfirmed:
		event, err := calendar.PatientEvent(apt.Date, apt.TimeSlot, apt.PatientName, apt.Email, apt.Locale,
			s.site.PractitionerName, s.emailCfg.ContactEmail, s.site.Address, s.site.Phone)
		if err != nil {
			s.log.Error(err, "failed to build patient calendar event", "appointment_id", apt.ID.String())
			return
		}
		msg.Attachments = []email.Attachment{s.invite(event, apt.ID)}
		msg.Subject, msg.HTML = email.ClientConfirmation(email.ConfirmationContentFor(apt.Locale), email.ConfirmationDetails{
			PatientName: apt.PatientName,
			Date:        formattedDate,
			Time:        apt.TimeSlot,
			CalendarURL: calendar.GoogleCalendarURL(event),
			Address:     s.site.Address,
			Signature:   s.site.PractitionerName,
		})
	case model.AppointmentStatusCancelled:
		msg.Subject, msg.Text = email.ClientRefusal(email.RefusalContentFor(apt.Locale), apt.PatientName, formattedDate, apt.TimeSlot)
	default:
		return
	}

	if _, err := s.sender.Send(ctx, msg); err != nil {
		s.log.Error(err, "failed to send client notification", "appointment_id", apt.ID.String())
	}
}

// invite renders the event as an .ics attachment so mail clients show an
// add-to-calendar action next to the Google Calendar link.
func (s *Service) invite(event calendar.Event, id uuid.UUID) email.Attachment {
	return email.Attachment{
		Filename:    "rendez-vous.ics",
		Content:     []byte(calendar.ICS(event, id, s.site.Domain)),
		ContentType: "text/calendar",
	}
}

// openingSlots is the practice's slot grid: 09:00-12:30 and 14:00-18:00 in
// half-hour steps.
func openingSlots() []string {
	var slots []string
	for h, m := 9, 0; h < 12 || (h == 12 && m == 0); h, m = next(h, m) {
		slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
	}
	for h, m := 14, 0; h < 18; h, m = next(h, m) {
		slots = append(slots, fmt.Sprintf("%02d:%02d", h, m))
	}
	return slots
}

func next(h, m int) (int, int) {
	if m == 0 {
		return h, 30
	}
	return h + 1, 0
}

// Availability returns the slot grid for a date with slots already taken by
// pending or confirmed appointments marked unavailable. Results are cached
// briefly per date.
func (s *Service) Availability(ctx context.Context, date time.Time) ([]model.TimeSlot, error) {
	key := date.Format(dateLayout)
	if cached, ok := s.slotCache.Get(key); ok {
		return cached.([]model.TimeSlot), nil
	}

	taken, err := s.repo.ListSlotsForDate(ctx, date)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	takenSet := make(map[string]struct{}, len(taken))
	for _, slot := range taken {
		takenSet[slot] = struct{}{}
	}

	grid := openingSlots()
	slots := make([]model.TimeSlot, 0, len(grid))
	for _, t := range grid {
		_, isTaken := takenSet[t]
		slots = append(slots, model.TimeSlot{Time: t, Available: !isTaken})
	}

	s.slotCache.Set(key, slots, gocache.DefaultExpiration)
	return slots, nil
}
