// Package i18n holds the small amount of localization the booking pipeline
// needs: long date formatting for emails and decision pages.
package i18n

import (
	"fmt"
	"time"

	"github.com/camille-osteopathe/booking-api/internal/model"
)

var weekdaysFR = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}
var weekdaysPT = [...]string{"domingo", "segunda-feira", "terça-feira", "quarta-feira", "quinta-feira", "sexta-feira", "sábado"}

var monthsFR = [...]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"}
var monthsPT = [...]string{"janeiro", "fevereiro", "março", "abril", "maio", "junho", "julho", "agosto", "setembro", "outubro", "novembro", "dezembro"}

// FormatLongDate renders a date the way the booking emails show it:
// "mardi 10 juin 2025", "terça-feira, 10 de junho de 2025",
// "Tuesday 10 June 2025".
func FormatLongDate(locale model.Locale, t time.Time) string {
	switch locale {
	case model.LocaleFR:
		return fmt.Sprintf("%s %d %s %d", weekdaysFR[t.Weekday()], t.Day(), monthsFR[t.Month()-1], t.Year())
	case model.LocaleEN:
		return fmt.Sprintf("%s %d %s %d", t.Weekday().String(), t.Day(), t.Month().String(), t.Year())
	default:
		return fmt.Sprintf("%s, %d de %s de %d", weekdaysPT[t.Weekday()], t.Day(), monthsPT[t.Month()-1], t.Year())
	}
}
