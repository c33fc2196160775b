package config

import "time"

// Base application details
const AppName = "dupline"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "dupline.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Settings reload
const ReloadDelay = 100 * time.Millisecond

// Defaults of the [dupline] table.
const (
	DefaultColor               = "#C6AB85"
	DefaultFontSize            = 1.2
	MinFontSize                = 1.0
	MaxFontSize                = 1.7
	DefaultOccurrenceMinLength = 2
	DefaultOccurrenceMinCount  = 2
	DefaultDebounceMillis      = 300
	DefaultMaxHistory          = 100
)
