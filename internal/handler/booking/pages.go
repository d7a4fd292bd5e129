package booking

import (
	"html/template"
	"strings"

	"github.com/camille-osteopathe/booking-api/internal/i18n"
	"github.com/camille-osteopathe/booking-api/internal/model"
)

// The decision endpoints answer the practitioner's email client with full
// HTML pages, styled like the original notification emails. French copy
// only: these pages are for the practitioner, not the patient.

type pageDetails struct {
	Patient string
	Date    string
	Time    string
	Email   string
	Phone   string
}

// Message and Warning hold our own static French copy, so they bypass the
// auto-escaper; everything in Details is patient-supplied and stays escaped.
type page struct {
	Title    string
	Icon     string
	Heading  string
	Color    string
	Gradient string
	Message  template.HTML
	Details  *pageDetails
	Warning  template.HTML
}

var pageTemplate = template.Must(template.New("decision").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
  <style>
    body { font-family: system-ui, -apple-system, sans-serif; display: flex; align-items: center; justify-content: center; min-height: 100vh; margin: 0; background: linear-gradient(135deg, {{.Gradient}}); }
    .container { background: white; padding: 3rem; border-radius: 1rem; box-shadow: 0 20px 60px rgba(0,0,0,0.3); text-align: center; max-width: 500px; }
    h1 { color: {{.Color}}; font-size: 2rem; margin: 0 0 1rem; }
    p { color: #6b7280; line-height: 1.6; }
    .details { background: #f0fdf4; padding: 1.5rem; border-radius: 0.5rem; margin: 1.5rem 0; text-align: left; }
    .details strong { color: #065f46; }
    .warning { color: #f59e0b; font-weight: 600; }
  </style>
</head>
<body>
  <div class="container">
    <div style="font-size: 4rem; margin-bottom: 1rem;">{{.Icon}}</div>
    <h1>{{.Heading}}</h1>
    <p>{{.Message}}</p>
{{- with .Details}}
    <div class="details">
      <p style="margin: 0 0 0.5rem;"><strong>Patient :</strong> {{.Patient}}</p>
      <p style="margin: 0 0 0.5rem;"><strong>Date :</strong> {{.Date}}</p>
      <p style="margin: 0;"><strong>Heure :</strong> {{.Time}}</p>
    </div>
{{- end}}
{{- if .Warning}}
    <p class="warning">⚠️ {{.Warning}}</p>
{{- end}}
{{- with .Details}}
    <p style="font-size: 0.9rem;">
      📧 {{.Email}}<br>
      📱 {{.Phone}}
    </p>
{{- end}}
  </div>
</body>
</html>
`))

const (
	gradientNeutral = "#667eea 0%, #764ba2 100%"
	gradientGreen   = "#10b981 0%, #059669 100%"
	gradientRed     = "#ef4444 0%, #dc2626 100%"
)

func renderPage(p page) string {
	var sb strings.Builder
	// The template is static and the data is plain strings; Execute cannot
	// fail here.
	_ = pageTemplate.Execute(&sb, p)
	return sb.String()
}

func detailsFor(apt *model.Appointment) *pageDetails {
	return &pageDetails{
		Patient: apt.PatientName,
		// The page chrome is French, but the date is shown the way the
		// patient booked it, matching the confirmation email.
		Date: i18n.FormatLongDate(apt.Locale, apt.Date),
		Time:    apt.TimeSlot,
		Email:   apt.Email,
		Phone:   apt.Phone,
	}
}

func notFoundPage() string {
	return renderPage(page{
		Title:    "Rendez-vous introuvable",
		Icon:     "❌",
		Heading:  "Rendez-vous introuvable",
		Color:    "#dc2626",
		Gradient: gradientNeutral,
		Message:  "Le rendez-vous demandé n'existe pas ou a été supprimé.",
	})
}

func serverErrorPage() string {
	return renderPage(page{
		Title:    "Erreur",
		Icon:     "⚠️",
		Heading:  "Erreur serveur",
		Color:    "#dc2626",
		Gradient: gradientNeutral,
		Message:  "Une erreur est survenue. Veuillez réessayer.",
	})
}

func confirmSuccessPage(apt *model.Appointment, clientNotified bool) string {
	warning := template.HTML("Le patient n'a pas reçu d'email automatique. Veuillez le contacter directement.")
	if clientNotified {
		warning = ""
	}
	return renderPage(page{
		Title:    "Rendez-vous confirmé",
		Icon:     "✅",
		Heading:  "Rendez-vous confirmé !",
		Color:    "#10b981",
		Gradient: gradientGreen,
		Message:  "Le rendez-vous a été confirmé avec succès.",
		Details:  detailsFor(apt),
		Warning:  warning,
	})
}

func alreadyConfirmedPage() string {
	return renderPage(page{
		Title:    "Déjà confirmé",
		Icon:     "✅",
		Heading:  "Déjà confirmé",
		Color:    "#10b981",
		Gradient: gradientNeutral,
		Message:  "Ce rendez-vous a déjà été confirmé.",
	})
}

func confirmConflictPage() string {
	return renderPage(page{
		Title:    "Rendez-vous annulé",
		Icon:     "⚠️",
		Heading:  "Rendez-vous annulé",
		Color:    "#f59e0b",
		Gradient: gradientNeutral,
		Message:  "Ce rendez-vous a déjà été refusé et ne peut plus être confirmé. Veuillez contacter le patient directement.",
	})
}

func refuseSuccessPage(apt *model.Appointment, clientNotified bool) string {
	warning := template.HTML("Le patient n'a pas reçu d'email automatique. Veuillez le contacter directement si nécessaire.")
	if clientNotified {
		warning = ""
	}
	return renderPage(page{
		Title:    "Rendez-vous refusé",
		Icon:     "❌",
		Heading:  "Rendez-vous refusé",
		Color:    "#ef4444",
		Gradient: gradientRed,
		Message:  "La demande de rendez-vous a été refusée.",
		Details:  detailsFor(apt),
		Warning:  warning,
	})
}

func alreadyRefusedPage() string {
	return renderPage(page{
		Title:    "Déjà refusé",
		Icon:     "❌",
		Heading:  "Déjà refusé",
		Color:    "#ef4444",
		Gradient: gradientNeutral,
		Message:  "Ce rendez-vous a déjà été refusé.",
	})
}

func refuseConflictPage() string {
	return renderPage(page{
		Title:    "Rendez-vous confirmé",
		Icon:     "⚠️",
		Heading:  "Rendez-vous confirmé",
		Color:    "#f59e0b",
		Gradient: gradientNeutral,
		Message:  "Ce rendez-vous a déjà été confirmé et ne peut plus être refusé. Veuillez contacter le patient directement.",
	})
}
