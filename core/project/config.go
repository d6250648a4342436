package project

import "lcftrans/core/translation"

// Config holds configuration for the translation workflow.
type Config struct {
	// Encoding forces a codepage instead of resolving one from the game.
	Encoding string `mapstructure:"encoding" default:""`
	// Output is the directory the unit files are written to.
	Output string `mapstructure:"output" default:"."`
	// Workers caps how many map files are processed in parallel.
	Workers int `mapstructure:"workers" default:"4"`
	// MatchTrim ignores surrounding whitespace when pairing units.
	MatchTrim bool `mapstructure:"match_trim" default:"true"`
	// MatchFold also pairs case-insensitively, flagged fuzzy.
	MatchFold bool `mapstructure:"match_fold" default:"true"`
}

// MatchOptions returns the configured unit pairing normalization.
func (c Config) MatchOptions() translation.MatchOptions {
	return translation.MatchOptions{
		TrimSpace: c.MatchTrim,
		CaseFold:  c.MatchFold,
	}
}
