package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLocale(t *testing.T) {
	assert.Equal(t, LocaleFR, NormalizeLocale("fr"))
	assert.Equal(t, LocalePT, NormalizeLocale("pt"))
	assert.Equal(t, LocaleEN, NormalizeLocale("en"))

	// Anything unknown falls back to the site default.
	assert.Equal(t, LocalePT, NormalizeLocale(""))
	assert.Equal(t, LocalePT, NormalizeLocale("de"))
	assert.Equal(t, LocalePT, NormalizeLocale("FR"))
}

func TestSlotPattern(t *testing.T) {
	assert.True(t, slotPattern.MatchString("09:00"))
	assert.True(t, slotPattern.MatchString("17:30"))
	assert.False(t, slotPattern.MatchString("9:00"))
	assert.False(t, slotPattern.MatchString("09:65"))
	assert.False(t, slotPattern.MatchString("0900"))
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, AppointmentStatusPending.IsTerminal())
	assert.True(t, AppointmentStatusConfirmed.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
}
