package email

import (
	"fmt"
	"html"
	"strings"
)

// escape neutralizes user-supplied text before HTML interpolation. Every
// field rendered into an email body goes through it.
func escape(s string) string {
	return html.EscapeString(s)
}

// NotificationDetails feeds the practitioner notification for a new booking
// request. Date is already formatted for the locale.
type NotificationDetails struct {
	PatientName string
	Email       string
	Phone       string
	Date        string
	Time        string
	Notes       string
	ConfirmURL  string
	RefuseURL   string
	CalendarURL string
	Address     string
}

// PractitionerNotification renders the email sent to the practitioner for
// every new request, with the accept/refuse action links and a calendar-add
// button. The practitioner reads French; this one is not localized.
func PractitionerNotification(d NotificationDetails) (subject, htmlBody string) {
	subject = fmt.Sprintf("📅 Nouvelle demande de RDV - %s (%s)", d.PatientName, d.Email)

	var notes string
	if d.Notes != "" {
		notes = fmt.Sprintf(`
        <div style="margin-top: 20px;">
          <p style="margin: 0 0 5px; color: #6b7280; font-size: 12px; text-transform: uppercase; font-weight: 600;">Notes du patient</p>
          <p style="margin: 0; color: #111827; font-size: 14px; line-height: 1.6; padding: 12px; background-color: #ffffff; border-left: 3px solid #667eea; border-radius: 4px;">%s</p>
        </div>`, escape(d.Notes))
	}

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="UTF-8">
  <title>Nouvelle demande de rendez-vous</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f5f5;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f5f5f5; padding: 20px 0;">
    <tr><td align="center">
      <table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 12px; overflow: hidden;">
        <tr>
          <td style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 40px 30px; text-align: center;">
            <h1 style="margin: 0; color: #ffffff; font-size: 28px; font-weight: 600;">📅 Nouvelle demande de rendez-vous</h1>
            <p style="margin: 10px 0 0; color: #e0e7ff; font-size: 14px;">Action requise - Veuillez confirmer ou refuser</p>
          </td>
        </tr>
        <tr>
          <td style="padding: 40px 30px;">
            <p style="margin: 0 0 30px; color: #374151; font-size: 16px; line-height: 1.5;">Vous avez reçu une nouvelle demande de rendez-vous. Voici les détails :</p>
            <table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f9fafb; border-radius: 8px; border: 1px solid #e5e7eb; margin-bottom: 30px;">
              <tr><td style="padding: 25px;">
                <p style="margin: 0 0 5px; color: #6b7280; font-size: 12px; text-transform: uppercase; font-weight: 600;">Patient</p>
                <p style="margin: 0 0 20px; color: #111827; font-size: 18px; font-weight: 600;">%s</p>
                <p style="margin: 0 0 5px; color: #6b7280; font-size: 12px; text-transform: uppercase; font-weight: 600;">Date et heure</p>
                <p style="margin: 0; color: #111827; font-size: 16px;">📆 %s</p>
                <p style="margin: 5px 0 20px; color: #111827; font-size: 16px;">🕐 %s</p>
                <p style="margin: 0 0 5px; color: #6b7280; font-size: 12px; text-transform: uppercase; font-weight: 600;">Contact</p>
                <p style="margin: 0; color: #111827; font-size: 14px;">📧 <a href="mailto:%s" style="color: #667eea; text-decoration: none;">%s</a></p>
                <p style="margin: 5px 0 0; color: #111827; font-size: 14px;">📱 <a href="tel:%s" style="color: #667eea; text-decoration: none;">%s</a></p>%s
              </td></tr>
            </table>
            <p style="margin: 0 0 20px; color: #374151; font-size: 15px; font-weight: 600; text-align: center;">Que souhaitez-vous faire ?</p>
            <table width="100%%" cellpadding="0" cellspacing="0" style="margin-bottom: 30px;">
              <tr>
                <td width="48%%" align="center">
                  <a href="%s" style="display: inline-block; width: 100%%; padding: 16px 24px; background-color: #10b981; color: #ffffff; text-decoration: none; border-radius: 8px; font-weight: 600; font-size: 15px; text-align: center;">✅ Accepter</a>
                </td>
                <td width="4%%"></td>
                <td width="48%%" align="center">
                  <a href="%s" style="display: inline-block; width: 100%%; padding: 16px 24px; background-color: #ef4444; color: #ffffff; text-decoration: none; border-radius: 8px; font-weight: 600; font-size: 15px; text-align: center;">❌ Refuser</a>
                </td>
              </tr>
            </table>
            <table width="100%%" cellpadding="0" cellspacing="0" style="margin-bottom: 30px;">
              <tr><td align="center">
                <a href="%s" target="_blank" style="display: inline-block; padding: 14px 28px; background-color: #667eea; color: #ffffff; text-decoration: none; border-radius: 8px; font-weight: 600; font-size: 14px;">📅 Ajouter à Google Calendar</a>
              </td></tr>
            </table>
            <p style="margin: 30px 0 0; color: #6b7280; font-size: 14px; line-height: 1.6;">Bonne journée,<br><span style="color: #374151; font-weight: 500;">Votre système de réservation</span></p>
          </td>
        </tr>
        <tr>
          <td style="background-color: #f9fafb; padding: 20px 30px; border-top: 1px solid #e5e7eb;">
            <p style="margin: 0; color: #9ca3af; font-size: 12px; text-align: center; line-height: 1.5;">Cet email a été envoyé automatiquement depuis votre site de réservation.<br>Cabinet d'Ostéopathie - %s</p>
          </td>
        </tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`,
		escape(d.PatientName),
		escape(d.Date),
		escape(d.Time),
		escape(d.Email), escape(d.Email),
		escape(d.Phone), escape(d.Phone),
		notes,
		escape(d.ConfirmURL),
		escape(d.RefuseURL),
		escape(d.CalendarURL),
		escape(d.Address),
	)
	return subject, htmlBody
}

// ConfirmationDetails feeds the patient-facing confirmation email.
type ConfirmationDetails struct {
	PatientName string
	Date        string
	Time        string
	CalendarURL string
	Address     string
	Signature   string
}

// ClientConfirmation renders the localized confirmation email for the
// patient, with a calendar-add link and pre-session recommendations.
func ClientConfirmation(t ConfirmationContent, d ConfirmationDetails) (subject, htmlBody string) {
	var recs strings.Builder
	for _, rec := range t.Recommendations {
		fmt.Fprintf(&recs, `
              <tr><td style="padding: 10px 0; border-bottom: 1px solid #f3f4f6;">
                <p style="margin: 0; color: #111827; font-size: 15px; font-weight: 600;">%s %s</p>
                <p style="margin: 4px 0 0; color: #6b7280; font-size: 13px; line-height: 1.5;">%s</p>
              </td></tr>`, rec.Icon, escape(rec.Title), escape(rec.Description))
	}

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>%s</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f5f5f5;">
  <table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f5f5f5; padding: 20px 0;">
    <tr><td align="center">
      <table width="600" cellpadding="0" cellspacing="0" style="background-color: #ffffff; border-radius: 12px; overflow: hidden;">
        <tr>
          <td style="background: linear-gradient(135deg, #10b981 0%%, #059669 100%%); padding: 40px 30px; text-align: center;">
            <h1 style="margin: 0; color: #ffffff; font-size: 26px; font-weight: 600;">%s %s,</h1>
            <p style="margin: 10px 0 0; color: #d1fae5; font-size: 16px;">%s</p>
          </td>
        </tr>
        <tr>
          <td style="padding: 40px 30px;">
            <table width="100%%" cellpadding="0" cellspacing="0" style="background-color: #f0fdf4; border-radius: 8px; border: 1px solid #bbf7d0; margin-bottom: 30px;">
              <tr><td style="padding: 25px;">
                <p style="margin: 0 0 15px; color: #065f46; font-size: 16px; font-weight: 600;">%s</p>
                <p style="margin: 0 0 8px; color: #111827; font-size: 15px;"><strong>%s :</strong> %s</p>
                <p style="margin: 0 0 8px; color: #111827; font-size: 15px;"><strong>%s :</strong> %s</p>
                <p style="margin: 0; color: #111827; font-size: 15px;"><strong>%s :</strong> %s</p>
              </td></tr>
            </table>
            <table width="100%%" cellpadding="0" cellspacing="0" style="margin-bottom: 30px;">
              <tr><td align="center">
                <a href="%s" target="_blank" style="display: inline-block; padding: 14px 28px; background-color: #10b981; color: #ffffff; text-decoration: none; border-radius: 8px; font-weight: 600; font-size: 14px;">%s</a>
              </td></tr>
            </table>
            <p style="margin: 0 0 15px; color: #374151; font-size: 16px; font-weight: 600;">%s</p>
            <table width="100%%" cellpadding="0" cellspacing="0" style="margin-bottom: 30px;">%s
            </table>
            <div style="background-color: #fffbeb; border-left: 4px solid #f59e0b; padding: 16px; border-radius: 4px; margin-bottom: 20px;">
              <p style="margin: 0; color: #92400e; font-size: 13px; line-height: 1.6;"><strong>%s :</strong> %s</p>
            </div>
            <p style="margin: 30px 0 0; color: #6b7280; font-size: 14px; line-height: 1.6;">%s<br><span style="color: #374151; font-weight: 500;">%s</span></p>
          </td>
        </tr>
        <tr>
          <td style="background-color: #f9fafb; padding: 20px 30px; border-top: 1px solid #e5e7eb;">
            <p style="margin: 0; color: #9ca3af; font-size: 12px; text-align: center;">%s</p>
          </td>
        </tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`,
		escape(t.Subject),
		escape(t.Greeting), escape(d.PatientName),
		escape(t.Confirmed),
		escape(t.DetailsTitle),
		escape(t.DateLabel), escape(d.Date),
		escape(t.TimeLabel), escape(d.Time),
		escape(t.LocationLabel), escape(d.Address),
		escape(d.CalendarURL), escape(t.AddToCalendar),
		escape(t.RecommendationsTitle),
		recs.String(),
		escape(t.ImportantNote), escape(t.ImportantNoteText),
		escape(t.Closing), d.Signature,
		escape(t.FooterText),
	)
	return t.Subject, htmlBody
}

// ClientRefusal renders the plain-text email telling the patient the slot is
// unavailable.
func ClientRefusal(t RefusalContent, patientName, date, timeSlot string) (subject, text string) {
	return t.Subject, fmt.Sprintf(t.Body, patientName, date, timeSlot)
}

// ContactMessage renders the contact-form email: escaped HTML plus a plain
// text alternative.
func ContactMessage(name, fromEmail, message, address string) (subject, htmlBody, text string) {
	subject = fmt.Sprintf("📬 Nouveau message de %s", name)

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="UTF-8">
  <title>Nouveau message de contact</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f3f4f1;">
  <table role="presentation" style="width: 100%%; border-collapse: collapse;">
    <tr><td align="center" style="padding: 40px 0;">
      <table role="presentation" style="width: 600px; max-width: 100%%; border-collapse: collapse; background-color: #ffffff; border-radius: 12px;">
        <tr>
          <td style="padding: 40px 40px 20px 40px; text-align: center; background: linear-gradient(135deg, #EE6A22 0%%, #F2AF1D 100%%); border-radius: 12px 12px 0 0;">
            <h1 style="margin: 0; color: #ffffff; font-size: 28px; font-weight: 600;">📬 Nouveau Message</h1>
            <p style="margin: 10px 0 0 0; color: #ffffff; font-size: 14px; opacity: 0.9;">Depuis le formulaire de contact</p>
          </td>
        </tr>
        <tr>
          <td style="padding: 40px;">
            <table role="presentation" style="width: 100%%; border-collapse: collapse; margin-bottom: 30px;">
              <tr><td style="padding: 15px; background-color: #f3f4f1; border-radius: 8px;">
                <p style="margin: 0 0 8px 0; font-size: 12px; color: #6a6546; text-transform: uppercase; font-weight: 600;">Expéditeur</p>
                <p style="margin: 0; font-size: 18px; color: #2a2c25; font-weight: 600;">%s</p>
                <p style="margin: 8px 0 0 0; font-size: 14px;"><a href="mailto:%s" style="color: #EE6A22; text-decoration: none;">%s</a></p>
              </td></tr>
            </table>
            <p style="margin: 0 0 12px 0; font-size: 12px; color: #6a6546; text-transform: uppercase; font-weight: 600;">Message</p>
            <div style="padding: 20px; background-color: #f9f9f8; border-left: 4px solid #EE6A22; border-radius: 4px;">
              <p style="margin: 0; font-size: 15px; line-height: 1.6; color: #2a2c25; white-space: pre-wrap;">%s</p>
            </div>
          </td>
        </tr>
        <tr>
          <td style="padding: 30px 40px; text-align: center; border-top: 1px solid #e5e5e5; background-color: #fafafa; border-radius: 0 0 12px 12px;">
            <p style="margin: 0; font-size: 13px; color: #7a7c6f;">%s</p>
          </td>
        </tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`,
		escape(name),
		escape(fromEmail), escape(fromEmail),
		escape(message),
		escape(address),
	)

	text = fmt.Sprintf("Nouveau message de contact\n\nNom: %s\nEmail: %s\n\nMessage:\n%s\n\n---\nCet email a été envoyé depuis le formulaire de contact.", name, fromEmail, message)
	return subject, htmlBody, text
}
