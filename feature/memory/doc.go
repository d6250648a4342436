// Package memory implements the shared translation memory.
//
// The memory is a database table of remembered translations keyed by
// context and original text. Translators import finished units into it,
// fresh extractions can then be pre-filled from what the team already
// translated before, across games and projects.
//
// # Matching
//
// Fill pairs entries exactly by context and original first. Optionally
// it falls back to a context-free lookup on the original text alone,
// such carry-overs are flagged fuzzy and need review.
//
// # Storage
//
// Records live in the translation_memory table, by default in a local
// SQLite file. Teams sharing one memory point the database configuration
// at MySQL instead. The upsert identity is a hash of context, original
// and source unit, so arbitrarily long message texts stay indexable.
package memory
