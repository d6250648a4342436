package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcftrans/core/encoding"
	"lcftrans/core/rpg"
	"lcftrans/core/translation"
)

func newExtractor(t *testing.T, codepage string) *Extractor {
	t.Helper()
	dec, err := encoding.NewDecoder(codepage)
	require.NoError(t, err)
	return New(dec, nil)
}

func TestDatabaseStoresTerms(t *testing.T) {
	db := &rpg.Database{
		Actors: []rpg.Actor{
			{ID: 1, Name: []byte("Alex"), Title: []byte("Hero")},
			{ID: 2, Name: []byte("Brian")},
		},
		Skills: []rpg.Skill{
			{ID: 4, Name: []byte("Heal"), Description: []byte("Restores HP"), Message1: []byte("casts Heal")},
		},
		Items:   []rpg.Item{{ID: 9, Name: []byte("Potion")}},
		Enemies: []rpg.Enemy{{ID: 3, Name: []byte("Slime")}},
		States:  []rpg.State{{ID: 2, Name: []byte("Poison")}},
		Terms:   []rpg.Term{{ID: 0x29, Text: []byte("Fight")}},
	}

	terms, common, battle := newExtractor(t, "utf-8").DatabaseStores(db)

	assert.Equal(t, 0, common.Len())
	assert.Equal(t, 0, battle.Len())
	assert.Equal(t, translation.DefaultHeader, terms.Header())

	alex, ok := terms.Get(translation.Key{Context: "actor.name", Original: "Alex"})
	require.True(t, ok)
	assert.Equal(t, []string{"Actor 1"}, alex.Locations)

	_, ok = terms.Get(translation.Key{Context: "actor.title", Original: "Hero"})
	assert.True(t, ok)
	_, ok = terms.Get(translation.Key{Context: "skill.description", Original: "Restores HP"})
	assert.True(t, ok)
	_, ok = terms.Get(translation.Key{Context: "skill.message", Original: "casts Heal"})
	assert.True(t, ok)
	_, ok = terms.Get(translation.Key{Context: "item.name", Original: "Potion"})
	assert.True(t, ok)
	_, ok = terms.Get(translation.Key{Context: "enemy.name", Original: "Slime"})
	assert.True(t, ok)
	_, ok = terms.Get(translation.Key{Context: "state.name", Original: "Poison"})
	assert.True(t, ok)

	fight, ok := terms.Get(translation.Key{Context: "term", Original: "Fight"})
	require.True(t, ok)
	assert.Equal(t, []string{"Term 41"}, fight.Locations)
}

func TestDatabaseStores2003Sections(t *testing.T) {
	db := &rpg.Database{
		Engine:         rpg.Engine2003,
		Classes:        []rpg.Class{{ID: 1, Name: []byte("Paladin")}},
		BattleCommands: []rpg.BattleCommand{{ID: 1, Name: []byte("Attack")}},
	}

	terms, _, _ := newExtractor(t, "utf-8").DatabaseStores(db)

	_, ok := terms.Get(translation.Key{Context: "class.name", Original: "Paladin"})
	assert.True(t, ok)
	_, ok = terms.Get(translation.Key{Context: "battlecommand.name", Original: "Attack"})
	assert.True(t, ok)
}

func TestDatabaseStoresSkipsBlankText(t *testing.T) {
	db := &rpg.Database{
		Actors: []rpg.Actor{
			{ID: 1, Name: []byte("")},
			{ID: 2, Name: []byte("   ")},
			{ID: 3, Name: []byte("Carol")},
		},
	}

	terms, _, _ := newExtractor(t, "utf-8").DatabaseStores(db)

	assert.Equal(t, 1, terms.Len())
}

func TestDatabaseStoresDeduplicates(t *testing.T) {
	db := &rpg.Database{
		Items: []rpg.Item{
			{ID: 1, Name: []byte("Potion")},
			{ID: 2, Name: []byte("Potion")},
		},
	}

	terms, _, _ := newExtractor(t, "utf-8").DatabaseStores(db)

	require.Equal(t, 1, terms.Len())
	assert.Equal(t, []string{"Item 1", "Item 2"}, terms.Entries()[0].Locations)
}

func TestDatabaseStoresCommonEvents(t *testing.T) {
	db := &rpg.Database{
		CommonEvents: []rpg.CommonEvent{
			{
				ID:   12,
				Name: []byte("Intro"),
				Commands: []rpg.EventCommand{
					{Code: rpg.CommandShowMessage, Text: []byte("It's dangerous to go alone!")},
					{Code: rpg.CommandShowMessageMore, Text: []byte("Take this.")},
					{Code: rpg.CommandShowChoiceOption, Text: []byte("Yes")},
					{Code: rpg.CommandShowChoiceOption, Text: []byte("No")},
					{Code: rpg.CommandChangeHeroName, Text: []byte("Link"), Params: []int{1}},
				},
			},
		},
	}

	_, common, _ := newExtractor(t, "utf-8").DatabaseStores(db)

	require.Equal(t, 4, common.Len())

	message, ok := common.Get(translation.Key{Original: "It's dangerous to go alone!\nTake this."})
	require.True(t, ok)
	assert.Equal(t, []string{"Common Event 12 'Intro', Line 1"}, message.Locations)

	yes, ok := common.Get(translation.Key{Original: "Yes"})
	require.True(t, ok)
	assert.Equal(t, []string{"Common Event 12 'Intro', Line 3"}, yes.Locations)

	_, ok = common.Get(translation.Key{Original: "Link"})
	assert.True(t, ok)
}

func TestDatabaseStoresBattleEvents(t *testing.T) {
	db := &rpg.Database{
		Troops: []rpg.Troop{
			{
				ID:   5,
				Name: []byte("Slime x2"),
				Pages: []rpg.TroopPage{
					{
						ID: 2,
						Commands: []rpg.EventCommand{
							{Code: rpg.CommandShowMessage, Text: []byte("The slime attacks!")},
						},
					},
				},
			},
		},
	}

	_, _, battle := newExtractor(t, "utf-8").DatabaseStores(db)

	require.Equal(t, 1, battle.Len())
	assert.Equal(t, []string{"Troop 5 'Slime x2', Page 2, Line 1"}, battle.Entries()[0].Locations)
}

func TestDatabaseStoresLegacyCodepage(t *testing.T) {
	db := &rpg.Database{
		Actors: []rpg.Actor{
			{ID: 1, Name: []byte{0x83, 0x65, 0x83, 0x58, 0x83, 0x67}}, // テスト in Shift JIS
		},
	}

	terms, _, _ := newExtractor(t, "932").DatabaseStores(db)

	_, ok := terms.Get(translation.Key{Context: "actor.name", Original: "テスト"})
	assert.True(t, ok)
}

func TestDatabaseFileFailureYieldsEmptyStores(t *testing.T) {
	x := newExtractor(t, "utf-8")

	terms, common, battle := x.Database("does/not/exist.ldb")

	assert.Equal(t, 0, terms.Len())
	assert.Equal(t, 0, common.Len())
	assert.Equal(t, 0, battle.Len())
	assert.Equal(t, translation.DefaultHeader, terms.Header())
}
