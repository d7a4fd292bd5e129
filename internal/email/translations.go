package email

import "github.com/camille-osteopathe/booking-api/internal/model"

// ConfirmationContent is the localized copy of the patient confirmation
// email.
type ConfirmationContent struct {
	Subject              string
	Greeting             string
	Confirmed            string
	DetailsTitle         string
	DateLabel            string
	TimeLabel            string
	LocationLabel        string
	AddToCalendar        string
	RecommendationsTitle string
	Recommendations      []Recommendation
	ImportantNote        string
	ImportantNoteText    string
	Closing              string
	FooterText           string
}

type Recommendation struct {
	Icon        string
	Title       string
	Description string
}

// RefusalContent is the localized copy of the refusal email. Body takes
// patient name, formatted date and time slot, in that order.
type RefusalContent struct {
	Subject string
	Body    string
}

var confirmationContent = map[model.Locale]ConfirmationContent{
	model.LocaleFR: {
		Subject:              "Votre rendez-vous est confirmé ✅",
		Greeting:             "Bonjour",
		Confirmed:            "Votre rendez-vous d'ostéopathie est confirmé ! 🎉",
		DetailsTitle:         "Détails du rendez-vous",
		DateLabel:            "Date",
		TimeLabel:            "Heure",
		LocationLabel:        "Lieu",
		AddToCalendar:        "📅 Ajouter à mon agenda",
		RecommendationsTitle: "Recommandations pour une séance optimale",
		Recommendations: []Recommendation{
			{"👕", "Vêtements confortables", "Portez des vêtements souples et confortables. Évitez les jeans serrés ou les ceintures rigides."},
			{"💧", "Hydratation", "Hydratez-vous bien avant et après la séance pour faciliter l'élimination des toxines."},
			{"🍽️", "Repas légers", "Évitez les repas copieux dans l'heure précédant votre consultation."},
			{"⏰", "Ponctualité", "Arrivez 5 minutes en avance pour vous installer tranquillement."},
			{"📋", "Examens médicaux", "Si vous avez des examens médicaux récents (radiographies, IRM, etc.), pensez à les apporter."},
		},
		ImportantNote:     "Important",
		ImportantNoteText: "Si vous devez annuler ou reporter votre rendez-vous, merci de nous prévenir au moins 24h à l'avance.",
		Closing:           "Au plaisir de vous recevoir,",
		FooterText:        "Cabinet d'Ostéopathie",
	},
	model.LocalePT: {
		Subject:              "A sua consulta está confirmada ✅",
		Greeting:             "Olá",
		Confirmed:            "A sua consulta de osteopatia está confirmada! 🎉",
		DetailsTitle:         "Detalhes da consulta",
		DateLabel:            "Data",
		TimeLabel:            "Hora",
		LocationLabel:        "Local",
		AddToCalendar:        "📅 Adicionar à minha agenda",
		RecommendationsTitle: "Recomendações para uma sessão ideal",
		Recommendations: []Recommendation{
			{"👕", "Roupa confortável", "Use roupas soltas e confortáveis. Evite calças justas ou cintos rígidos."},
			{"💧", "Hidratação", "Hidrate-se bem antes e depois da sessão para facilitar a eliminação de toxinas."},
			{"🍽️", "Refeições leves", "Evite refeições pesadas na hora anterior à sua consulta."},
			{"⏰", "Pontualidade", "Chegue 5 minutos mais cedo para se instalar tranquilamente."},
			{"📋", "Exames médicos", "Se tiver exames médicos recentes (radiografias, ressonâncias, etc.), traga-os consigo."},
		},
		ImportantNote:     "Importante",
		ImportantNoteText: "Se precisar de cancelar ou adiar a sua consulta, avise-nos com pelo menos 24h de antecedência.",
		Closing:           "Com muito gosto em recebê-lo,",
		FooterText:        "Consultório de Osteopatia",
	},
	model.LocaleEN: {
		Subject:              "Your appointment is confirmed ✅",
		Greeting:             "Hello",
		Confirmed:            "Your osteopathy appointment is confirmed! 🎉",
		DetailsTitle:         "Appointment details",
		DateLabel:            "Date",
		TimeLabel:            "Time",
		LocationLabel:        "Location",
		AddToCalendar:        "📅 Add to my calendar",
		RecommendationsTitle: "Recommendations for an optimal session",
		Recommendations: []Recommendation{
			{"👕", "Comfortable clothing", "Wear loose, comfortable clothes. Avoid tight jeans or rigid belts."},
			{"💧", "Hydration", "Hydrate well before and after the session to help eliminate toxins."},
			{"🍽️", "Light meals", "Avoid heavy meals in the hour before your consultation."},
			{"⏰", "Punctuality", "Arrive 5 minutes early to settle in calmly."},
			{"📋", "Medical exams", "If you have recent medical exams (X-rays, MRI, etc.), please bring them."},
		},
		ImportantNote:     "Important",
		ImportantNoteText: "If you need to cancel or postpone your appointment, please let us know at least 24h in advance.",
		Closing:           "Looking forward to seeing you,",
		FooterText:        "Osteopathy Practice",
	},
}

var refusalContent = map[model.Locale]RefusalContent{
	model.LocaleFR: {
		Subject: "Demande de rendez-vous - Indisponibilité",
		Body:    "Bonjour %s,\n\nMalheureusement, je ne suis pas disponible pour le créneau demandé (%s à %s).\n\nJe vous invite à proposer d'autres dates via le formulaire de réservation.\n\nCordialement",
	},
	model.LocalePT: {
		Subject: "Pedido de consulta - Indisponibilidade",
		Body:    "Olá %s,\n\nInfelizmente, não estou disponível para o horário solicitado (%s às %s).\n\nConvido-o a propor outras datas através do formulário de reserva.\n\nCordialmente",
	},
	model.LocaleEN: {
		Subject: "Appointment request - Unavailability",
		Body:    "Hello %s,\n\nUnfortunately, I am not available for the requested time slot (%s at %s).\n\nI invite you to propose other dates via the booking form.\n\nBest regards",
	},
}

// ConfirmationContentFor returns the confirmation copy for a locale,
// falling back to Portuguese.
func ConfirmationContentFor(locale model.Locale) ConfirmationContent {
	if c, ok := confirmationContent[locale]; ok {
		return c
	}
	return confirmationContent[model.LocalePT]
}

// RefusalContentFor returns the refusal copy for a locale, falling back to
// Portuguese.
func RefusalContentFor(locale model.Locale) RefusalContent {
	if c, ok := refusalContent[locale]; ok {
		return c
	}
	return refusalContent[model.LocalePT]
}
