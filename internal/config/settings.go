package config

// Settings is the [dupline] table: one switch per command plus the
// occurrence indicator options.
type Settings struct {
	AddSpaceBetween bool `toml:"add_space_between"`

	LineDown       bool `toml:"line_down"`
	LineUp         bool `toml:"line_up"`
	SelectionDown  bool `toml:"selection_down"`
	SelectionUp    bool `toml:"selection_up"`
	SelectionRight bool `toml:"selection_right"`
	SelectionLeft  bool `toml:"selection_left"`
	MixRightDown   bool `toml:"mix_right_down"`
	MoveRight      bool `toml:"move_right"`
	MoveLeft       bool `toml:"move_left"`
	AddNextOcc     bool `toml:"add_next_occurrence"`
	SelAllOcc      bool `toml:"select_all_occurrences"`

	ShowOccurrences     bool    `toml:"show_occurrences"`
	MatchCase           bool    `toml:"match_case"`
	Color               string  `toml:"color"`
	FontSize            float64 `toml:"font_size"`
	OccurrenceMinLength int     `toml:"occurrence_min_length"`
	OccurrenceMinCount  int     `toml:"occurrence_min_count"`
	DebounceMillis      int     `toml:"debounce_ms"`
}

// DefaultSettings mirrors the plugin's shipped defaults.
func DefaultSettings() Settings {
	return Settings{
		AddSpaceBetween:     true,
		LineDown:            true,
		LineUp:              true,
		SelectionDown:       true,
		SelectionUp:         true,
		SelectionRight:      true,
		SelectionLeft:       true,
		MixRightDown:        false,
		MoveRight:           true,
		MoveLeft:            true,
		AddNextOcc:          true,
		SelAllOcc:           true,
		ShowOccurrences:     true,
		MatchCase:           false,
		Color:               DefaultColor,
		FontSize:            DefaultFontSize,
		OccurrenceMinLength: DefaultOccurrenceMinLength,
		OccurrenceMinCount:  DefaultOccurrenceMinCount,
		DebounceMillis:      DefaultDebounceMillis,
	}
}

// validate resets out-of-range values to their defaults.
func (s *Settings) validate() {
	if s.Color == "" {
		s.Color = DefaultColor
	}
	if s.FontSize < MinFontSize || s.FontSize > MaxFontSize {
		s.FontSize = DefaultFontSize
	}
	if s.OccurrenceMinLength < 1 {
		s.OccurrenceMinLength = DefaultOccurrenceMinLength
	}
	if s.OccurrenceMinCount < 1 {
		s.OccurrenceMinCount = DefaultOccurrenceMinCount
	}
	if s.DebounceMillis <= 0 {
		s.DebounceMillis = DefaultDebounceMillis
	}
}
