// Package calendar formats appointment data as iCalendar text and Google
// Calendar deep links, for the add-to-calendar buttons in the booking emails.
package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/camille-osteopathe/booking-api/internal/model"
)

// Consultations are booked in one-hour blocks regardless of the half-hour
// slot granularity.
const eventDuration = time.Hour

type Event struct {
	Title          string
	Description    string
	Location       string
	Start          time.Time
	End            time.Time
	OrganizerName  string
	OrganizerEmail string
	AttendeeName   string
	AttendeeEmail  string
}

// formatICalTime renders an instant as an iCalendar UTC timestamp
// (YYYYMMDDTHHMMSSZ).
func formatICalTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeText escapes the characters RFC 5545 reserves in TEXT values.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// EventTime derives the start instant from a calendar date and a slot label
// such as "09:30". Times are treated as UTC; the practice publishes slot
// labels, not zoned instants.
func EventTime(date time.Time, slot string) (time.Time, error) {
	parsed, err := time.Parse("15:04", slot)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time slot %q: %w", slot, err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.UTC), nil
}

// ICS renders the event as an iCalendar text block with the required VEVENT
// fields, a UID derived from the appointment id and a 24-hour display alarm.
func ICS(event Event, appointmentID uuid.UUID, domain string) string {
	uid := fmt.Sprintf("appointment-%s@%s", appointmentID, domain)

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//" + escapeText(event.OrganizerName) + "//Booking System//FR",
		"CALSCALE:GREGORIAN",
		"METHOD:REQUEST",
		"BEGIN:VEVENT",
		"UID:" + uid,
		"DTSTAMP:" + formatICalTime(time.Now()),
		"DTSTART:" + formatICalTime(event.Start),
		"DTEND:" + formatICalTime(event.End),
		"SUMMARY:" + escapeText(event.Title),
		"DESCRIPTION:" + escapeText(event.Description),
		"LOCATION:" + escapeText(event.Location),
		fmt.Sprintf("ORGANIZER;CN=%s:mailto:%s", escapeText(event.OrganizerName), event.OrganizerEmail),
		fmt.Sprintf("ATTENDEE;CN=%s;RSVP=TRUE:mailto:%s", escapeText(event.AttendeeName), event.AttendeeEmail),
		"STATUS:CONFIRMED",
		"SEQUENCE:0",
		"BEGIN:VALARM",
		"TRIGGER:-PT24H",
		"ACTION:DISPLAY",
		"DESCRIPTION:Rendez-vous ostéopathie demain",
		"END:VALARM",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n")
}

// GoogleCalendarURL builds a calendar.google.com render link carrying the
// same fields as the ICS block, percent-encoded.
func GoogleCalendarURL(event Event) string {
	params := url.Values{}
	params.Set("action", "TEMPLATE")
	params.Set("text", event.Title)
	params.Set("dates", formatICalTime(event.Start)+"/"+formatICalTime(event.End))
	params.Set("details", event.Description)
	params.Set("location", event.Location)
	params.Set("sf", "true")
	params.Set("output", "xml")
	return "https://calendar.google.com/calendar/render?" + params.Encode()
}

// PractitionerEvent is the event attached to the new-request notification:
// it carries the patient's contact details so the practitioner's calendar
// entry is self-contained.
func PractitionerEvent(date time.Time, slot, patientName, patientEmail, notes, organizerName, organizerEmail, address string) (Event, error) {
	start, err := EventTime(date, slot)
	if err != nil {
		return Event{}, err
	}

	parts := []string{
		"Patient: " + patientName,
		"Email: " + patientEmail,
	}
	if notes != "" {
		parts = append(parts, "Notes: "+notes)
	}
	parts = append(parts, "", "Consultation ostéopathique - "+address)

	return Event{
		Title:          "Consultation - " + patientName,
		Description:    strings.Join(parts, "\n"),
		Location:       address,
		Start:          start,
		End:            start.Add(eventDuration),
		OrganizerName:  organizerName,
		OrganizerEmail: organizerEmail,
		AttendeeName:   patientName,
		AttendeeEmail:  patientEmail,
	}, nil
}

var patientEventTitles = map[model.Locale]string{
	model.LocaleFR: "Consultation Ostéopathie",
	model.LocalePT: "Consulta Osteopatia",
	model.LocaleEN: "Osteopathy Consultation",
}

var patientEventDescriptions = map[model.Locale]string{
	model.LocaleFR: "Consultation d'ostéopathie.\n\nRecommandations:\n- Portez des vêtements confortables\n- Hydratez-vous bien avant et après la séance\n- Évitez les repas copieux 1h avant\n- Arrivez 5 minutes en avance\n- Apportez vos examens médicaux si pertinent",
	model.LocalePT: "Consulta de osteopatia.\n\nRecomendações:\n- Use roupas confortáveis\n- Hidrate-se bem antes e depois da sessão\n- Evite refeições pesadas 1h antes\n- Chegue 5 minutos mais cedo\n- Traga seus exames médicos se relevante",
	model.LocaleEN: "Osteopathy consultation.\n\nRecommendations:\n- Wear comfortable clothing\n- Hydrate well before and after the session\n- Avoid heavy meals 1h before\n- Arrive 5 minutes early\n- Bring your medical exams if relevant",
}

// PatientEvent is the event offered to the patient once the appointment is
// confirmed, localized to their booking language.
func PatientEvent(date time.Time, slot, patientName, patientEmail string, locale model.Locale, organizerName, organizerEmail, address, phone string) (Event, error) {
	start, err := EventTime(date, slot)
	if err != nil {
		return Event{}, err
	}

	title, ok := patientEventTitles[locale]
	if !ok {
		title = patientEventTitles[model.LocalePT]
	}
	desc, ok := patientEventDescriptions[locale]
	if !ok {
		desc = patientEventDescriptions[model.LocalePT]
	}

	return Event{
		Title:          title + " - " + organizerName,
		Description:    desc + "\n\nTel: " + phone + "\n" + address,
		Location:       address,
		Start:          start,
		End:            start.Add(eventDuration),
		OrganizerName:  organizerName,
		OrganizerEmail: organizerEmail,
		AttendeeName:   patientName,
		AttendeeEmail:  patientEmail,
	}, nil
}
