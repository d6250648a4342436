package translation

// DefaultHeader is the metadata block written into freshly created units.
// Translators fill in the blanks, tooling only requires the charset line.
const DefaultHeader = "Project-Id-Version: GAME_NAME 1.0\n" +
	"Language-Team: YOUR LANGUAGE TEAM <your@team.example>\n" +
	"Language: \n" +
	"MIME-Version: 1.0\n" +
	"Content-Type: text/plain; charset=UTF-8\n" +
	"Content-Transfer-Encoding: 8bit\n"

// Store is an insertion-ordered collection of entries, unique per key.
type Store struct {
	entries []*Entry
	index   map[Key]int
	header  string
}

// NewStore returns an empty store without a header.
func NewStore() *Store {
	return &Store{index: make(map[Key]int)}
}

// Add inserts a copy of the entry. When the key is already present the
// new locations are folded into the existing entry instead and insertion
// order is preserved. The stored entry is returned either way.
func (s *Store) Add(e Entry) *Entry {
	if i, ok := s.index[e.Key()]; ok {
		existing := s.entries[i]
		for _, location := range e.Locations {
			existing.AddLocation(location)
		}
		return existing
	}
	stored := e.Clone()
	s.index[e.Key()] = len(s.entries)
	s.entries = append(s.entries, stored)
	return stored
}

// Get returns the entry stored under the key.
func (s *Store) Get(k Key) (*Entry, bool) {
	i, ok := s.index[k]
	if !ok {
		return nil, false
	}
	return s.entries[i], true
}

// Entries returns the entries in insertion order. The entries are shared
// with the store, callers may mutate translations in place.
func (s *Store) Entries() []*Entry {
	return s.entries
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Header returns the metadata block of the unit, empty when none was set.
func (s *Store) Header() string {
	return s.header
}

// SetHeader replaces the metadata block of the unit.
func (s *Store) SetHeader(header string) {
	s.header = header
}

// Clone returns a deep copy sharing no entries with the receiver.
func (s *Store) Clone() *Store {
	c := NewStore()
	c.header = s.header
	for _, e := range s.entries {
		c.index[e.Key()] = len(c.entries)
		c.entries = append(c.entries, e.Clone())
	}
	return c
}

// Stats summarises the translation state of a store.
type Stats struct {
	Total      int
	Translated int
	Fuzzy      int
}

// Stats counts translated and fuzzy entries.
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.entries)}
	for _, e := range s.entries {
		if e.HasTranslation() {
			st.Translated++
		}
		if e.Fuzzy {
			st.Fuzzy++
		}
	}
	return st
}

// Percent returns the translated share in percent, 100 for empty stores.
func (st Stats) Percent() float64 {
	if st.Total == 0 {
		return 100
	}
	return float64(st.Translated) * 100 / float64(st.Total)
}
