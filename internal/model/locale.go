package model

// Locale is one of the site languages.
type Locale string

const (
	LocaleFR Locale = "fr"
	LocalePT Locale = "pt"
	LocaleEN Locale = "en"
)

// NormalizeLocale maps an arbitrary client value to a supported locale.
// Portuguese is the site default.
func NormalizeLocale(s string) Locale {
	switch Locale(s) {
	case LocaleFR, LocalePT, LocaleEN:
		return Locale(s)
	default:
		return LocalePT
	}
}
