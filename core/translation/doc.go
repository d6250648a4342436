// Package translation holds the in-memory model for translatable text
// and its gettext-style file representation.
//
// # Model
//
// An Entry is one translatable term: original text, translation, an
// optional context that separates field classes, provenance locations
// and a fuzzy marker. A Store is an ordered set of entries, unique per
// (context, original) key. Stores are what the extraction side produces
// and what unit files on disk decode back into.
//
// # Codec
//
// Encoder and Decoder map stores to the PO-like unit format:
//
//	#. Actor 1
//	#, fuzzy
//	msgctxt "actor.name"
//	msgid "Alex"
//	msgstr "Alexis"
//
// Records are separated by blank lines. A record with an empty msgid is
// the unit header and carries file metadata instead of a term. The
// decoder drops malformed records with a warning and resumes at the next
// blank line, so one broken record never loses a whole unit.
//
// # Lifecycle
//
// Merge carries translations from a previously written unit into a fresh
// extraction and reports the terms that no longer exist upstream. Match
// bootstraps translations by pairing a unit against the same unit of an
// already-localized game tree.
package translation
