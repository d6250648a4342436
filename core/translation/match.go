package translation

import "strings"

// MatchOptions controls how original text is normalized before two units
// are paired.
type MatchOptions struct {
	// TrimSpace ignores leading and trailing whitespace when comparing.
	TrimSpace bool
	// CaseFold additionally allows case-insensitive matches, which are
	// marked fuzzy for review.
	CaseFold bool
}

// DefaultMatchOptions trims whitespace and falls back to case-folded
// lookups.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{TrimSpace: true, CaseFold: true}
}

func (o MatchOptions) normalize(s string) string {
	if o.TrimSpace {
		s = strings.TrimSpace(s)
	}
	if o.CaseFold {
		s = strings.ToLower(s)
	}
	return s
}

func (o MatchOptions) trimmed(s string) string {
	if o.TrimSpace {
		s = strings.TrimSpace(s)
	}
	return s
}

// Match bootstraps translations in the receiver from the same unit of an
// already-localized game tree. Entries are paired by normalized original
// text, context is ignored because the two trees rarely agree on it.
//
// A pairing that is case-exact after trimming assigns a clean
// translation, a fold-only pairing assigns a fuzzy one. When several
// source entries normalize alike the first case-exact one wins, then the
// first seen. The assigned text is the source translation when present,
// the source original otherwise, so matching against an untranslated
// tree still carries the localized originals over.
//
// Source entries that were never selected come back as an independent
// stale store. The second result is the number of entries that received
// text.
func (s *Store) Match(src *Store, opts MatchOptions) (*Store, int) {
	index := make(map[string][]*Entry)
	for _, e := range src.entries {
		norm := opts.normalize(e.Original)
		index[norm] = append(index[norm], e)
	}

	selected := make(map[*Entry]bool)
	matched := 0
	for _, e := range s.entries {
		candidates := index[opts.normalize(e.Original)]
		if len(candidates) == 0 {
			continue
		}
		pick := candidates[0]
		exact := false
		for _, c := range candidates {
			if opts.trimmed(c.Original) == opts.trimmed(e.Original) {
				pick = c
				exact = true
				break
			}
		}
		selected[pick] = true
		if pick.HasTranslation() {
			e.Translation = pick.Translation
		} else {
			e.Translation = pick.Original
		}
		e.Fuzzy = !exact
		matched++
	}

	stale := NewStore()
	stale.header = src.header
	for _, e := range src.entries {
		if selected[e] {
			continue
		}
		stale.Add(*e)
	}
	return stale, matched
}
