package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddDeduplicates(t *testing.T) {
	s := NewStore()
	first := s.Add(Entry{Original: "Hero", Context: "actor.name", Locations: []string{"Actor 1"}})
	second := s.Add(Entry{Original: "Hero", Context: "actor.name", Locations: []string{"Actor 2"}})

	assert.Equal(t, 1, s.Len())
	assert.Same(t, first, second)
	assert.Equal(t, []string{"Actor 1", "Actor 2"}, first.Locations)

	// same text under another context is a different term
	s.Add(Entry{Original: "Hero", Context: "item.name", Locations: []string{"Item 4"}})
	assert.Equal(t, 2, s.Len())
}

func TestStoreAddIgnoresDuplicateLocations(t *testing.T) {
	s := NewStore()
	e := s.Add(Entry{Original: "Potion", Locations: []string{"Item 1"}})
	s.Add(Entry{Original: "Potion", Locations: []string{"Item 1"}})

	assert.Equal(t, []string{"Item 1"}, e.Locations)
}

func TestStorePreservesOrder(t *testing.T) {
	s := NewStore()
	s.Add(Entry{Original: "Zebra"})
	s.Add(Entry{Original: "Apple"})
	s.Add(Entry{Original: "Mango"})

	var got []string
	for _, e := range s.Entries() {
		got = append(got, e.Original)
	}
	assert.Equal(t, []string{"Zebra", "Apple", "Mango"}, got)
}

func TestStoreAddCopiesInput(t *testing.T) {
	locations := []string{"Actor 1"}
	s := NewStore()
	stored := s.Add(Entry{Original: "Hero", Locations: locations})

	locations[0] = "changed"
	assert.Equal(t, []string{"Actor 1"}, stored.Locations)
}

func TestStoreGet(t *testing.T) {
	s := NewStore()
	s.Add(Entry{Original: "Hero", Context: "actor.name", Translation: "Held"})

	e, ok := s.Get(Key{Context: "actor.name", Original: "Hero"})
	require.True(t, ok)
	assert.Equal(t, "Held", e.Translation)

	_, ok = s.Get(Key{Original: "Hero"})
	assert.False(t, ok)
}

func TestStoreClone(t *testing.T) {
	s := NewStore()
	s.SetHeader(DefaultHeader)
	s.Add(Entry{Original: "Hero", Translation: "Held", Locations: []string{"Actor 1"}})

	c := s.Clone()
	c.Entries()[0].Translation = "changed"
	c.Entries()[0].Locations[0] = "changed"

	assert.Equal(t, "Held", s.Entries()[0].Translation)
	assert.Equal(t, []string{"Actor 1"}, s.Entries()[0].Locations)
	assert.Equal(t, DefaultHeader, c.Header())
}

func TestStats(t *testing.T) {
	s := NewStore()
	s.Add(Entry{Original: "Hero", Translation: "Held"})
	s.Add(Entry{Original: "Potion", Translation: "Trank", Fuzzy: true})
	s.Add(Entry{Original: "Sword"})

	st := s.Stats()
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Translated)
	assert.Equal(t, 1, st.Fuzzy)
	assert.InDelta(t, 66.6, st.Percent(), 0.1)
}

func TestStatsEmptyStore(t *testing.T) {
	st := NewStore().Stats()
	assert.Equal(t, 0, st.Total)
	assert.Equal(t, float64(100), st.Percent())
}
