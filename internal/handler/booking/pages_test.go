package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/camille-osteopathe/booking-api/internal/model"
)

func sampleAppointment(locale model.Locale) *model.Appointment {
	return &model.Appointment{
		PatientName: "Jean Dupont",
		Email:       "jean@example.com",
		Phone:       "+33612345678",
		Date:        time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		TimeSlot:    "09:00",
		Locale:      locale,
		Status:      model.AppointmentStatusConfirmed,
	}
}

func TestConfirmSuccessPageKeepsFrenchCopyLiteral(t *testing.T) {
	body := confirmSuccessPage(sampleAppointment(model.LocaleFR), false)

	// The static French copy must not be entity-escaped by the template.
	assert.Contains(t, body, "Le rendez-vous a été confirmé avec succès.")
	assert.Contains(t, body, "n'a pas reçu d'email automatique")
	assert.NotContains(t, body, "n&#39;a pas")
}

func TestConfirmSuccessPageEscapesPatientFields(t *testing.T) {
	apt := sampleAppointment(model.LocaleFR)
	apt.PatientName = `<script>alert("x")</script>`

	body := confirmSuccessPage(apt, false)
	assert.NotContains(t, body, "<script>alert")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestDecisionPageDateFollowsBookingLocale(t *testing.T) {
	body := confirmSuccessPage(sampleAppointment(model.LocalePT), true)
	assert.Contains(t, body, "terça-feira, 10 de junho de 2025")

	body = refuseSuccessPage(sampleAppointment(model.LocaleEN), true)
	assert.Contains(t, body, "Tuesday 10 June 2025")
}

func TestSuccessPagesDropWarningWhenClientNotified(t *testing.T) {
	assert.NotContains(t, confirmSuccessPage(sampleAppointment(model.LocaleFR), true), "⚠️")
	assert.Contains(t, refuseSuccessPage(sampleAppointment(model.LocaleFR), false), "⚠️")
}
