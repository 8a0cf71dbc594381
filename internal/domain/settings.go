package domain

// Font scale steps understood by the presentation layer.
const (
	FontScaleSmall  = 0
	FontScaleMedium = 1
	FontScaleLarge  = 2
)

// Settings holds presentation preferences. They are persisted
// independently of the portfolio collections.
type Settings struct {
	DarkMode  bool
	FontScale int    `validate:"gte=0,lte=2" label:"font scale"`
	Language  string `validate:"notblank" label:"language"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{DarkMode: false, FontScale: FontScaleMedium, Language: "ko"}
}

// Validate ensures the settings adhere to domain rules
func (s *Settings) Validate() error {
	return validateEntity("settings", s)
}
