package translation

// Key is the identity of an entry inside a store. Two entries with the
// same context and original text are the same term.
type Key struct {
	Context  string
	Original string
}

// Entry is a single translatable term.
type Entry struct {
	// Original is the source text as extracted from the game files.
	Original string
	// Translation is the target text. Empty until somebody translates it.
	Translation string
	// Context separates field classes that may share the same original,
	// e.g. "actor.name" vs "item.name". Serialized as msgctxt.
	Context string
	// Locations records where the term was found. Provenance only, not
	// part of the entry identity.
	Locations []string
	// Fuzzy marks a translation that was carried over with reduced
	// confidence and needs review.
	Fuzzy bool
}

// Key returns the identity of the entry.
func (e *Entry) Key() Key {
	return Key{Context: e.Context, Original: e.Original}
}

// HasTranslation reports whether the entry carries target text.
func (e *Entry) HasTranslation() bool {
	return e.Translation != ""
}

// AddLocation appends a provenance tag unless it is already recorded.
func (e *Entry) AddLocation(location string) {
	for _, l := range e.Locations {
		if l == location {
			return
		}
	}
	e.Locations = append(e.Locations, location)
}

// Clone returns a deep copy sharing no state with the receiver.
func (e *Entry) Clone() *Entry {
	c := *e
	c.Locations = append([]string(nil), e.Locations...)
	return &c
}
