package translation

// Merge carries translations from a previously written unit into the
// receiver, which holds a fresh extraction. Entries are paired by key.
// Previous entries whose key no longer exists upstream are returned as
// an independent stale store so no translated text is ever lost. Calling
// Merge again with the same previous store changes nothing.
func (s *Store) Merge(previous *Store) *Store {
	consumed := make(map[Key]bool)
	for _, e := range s.entries {
		prev, ok := previous.Get(e.Key())
		if !ok {
			continue
		}
		consumed[prev.Key()] = true
		e.Translation = prev.Translation
		e.Fuzzy = prev.Fuzzy
	}

	// translator-edited metadata survives the re-extraction
	if previous.header != "" {
		s.header = previous.header
	}

	stale := NewStore()
	stale.header = previous.header
	for _, prev := range previous.entries {
		if consumed[prev.Key()] {
			continue
		}
		stale.Add(*prev)
	}
	return stale
}
