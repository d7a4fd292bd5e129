package i18n

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/camille-osteopathe/booking-api/internal/model"
)

func TestFormatLongDate(t *testing.T) {
	// 2025-06-10 is a Tuesday.
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "mardi 10 juin 2025", FormatLongDate(model.LocaleFR, date))
	assert.Equal(t, "terça-feira, 10 de junho de 2025", FormatLongDate(model.LocalePT, date))
	assert.Equal(t, "Tuesday 10 June 2025", FormatLongDate(model.LocaleEN, date))
}

func TestFormatLongDateDefaultsToPortuguese(t *testing.T) {
	date := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "segunda-feira, 1 de dezembro de 2025", FormatLongDate(model.Locale("xx"), date))
}
