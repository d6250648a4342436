package rpg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lcftrans/core/lcf"
)

func TestDecodeDatabaseActors(t *testing.T) {
	var actors lcfBuilder
	actors.writeInt(2)
	actors.writeInt(1)
	actors.writeString(chunkName, "Alex")
	actors.writeString(chunkActorTitle, "Hero")
	actors.endRecord()
	actors.writeInt(2)
	actors.writeString(chunkName, "Brian")
	actors.writeString(0x44, "ignored") // unknown field tag
	actors.endRecord()

	file := newFile(lcf.SigDatabase)
	file.writeChunk(chunkActors, actors.Bytes())

	db, err := DecodeDatabase(file.Bytes())
	require.NoError(t, err)

	require.Len(t, db.Actors, 2)
	assert.Equal(t, Actor{ID: 1, Name: []byte("Alex"), Title: []byte("Hero")}, db.Actors[0])
	assert.Equal(t, 2, db.Actors[1].ID)
	assert.Equal(t, []byte("Brian"), db.Actors[1].Name)
	assert.Nil(t, db.Actors[1].Title)
	assert.Equal(t, Engine2000, db.Engine)
}

func TestDecodeDatabaseNamedSections(t *testing.T) {
	record := func(id int, name string) []byte {
		var b lcfBuilder
		b.writeInt(1)
		b.writeInt(id)
		b.writeString(chunkName, name)
		b.endRecord()
		return b.Bytes()
	}

	file := newFile(lcf.SigDatabase)
	file.writeChunk(chunkItems, record(1, "Potion"))
	file.writeChunk(chunkEnemies, record(3, "Slime"))
	file.writeChunk(chunkStates, record(2, "Poison"))

	db, err := DecodeDatabase(file.Bytes())
	require.NoError(t, err)

	require.Len(t, db.Items, 1)
	assert.Equal(t, []byte("Potion"), db.Items[0].Name)
	require.Len(t, db.Enemies, 1)
	assert.Equal(t, []byte("Slime"), db.Enemies[0].Name)
	require.Len(t, db.States, 1)
	assert.Equal(t, []byte("Poison"), db.States[0].Name)
}

func TestDecodeDatabaseSkills(t *testing.T) {
	var skills lcfBuilder
	skills.writeInt(1)
	skills.writeInt(4)
	skills.writeString(chunkName, "Heal")
	skills.writeString(chunkDescription, "Restores HP")
	skills.writeString(chunkSkillMessage1, "casts Heal")
	skills.writeString(chunkSkillMessage2, "and light shines")
	skills.endRecord()

	file := newFile(lcf.SigDatabase)
	file.writeChunk(chunkSkills, skills.Bytes())

	db, err := DecodeDatabase(file.Bytes())
	require.NoError(t, err)

	require.Len(t, db.Skills, 1)
	s := db.Skills[0]
	assert.Equal(t, []byte("Heal"), s.Name)
	assert.Equal(t, []byte("Restores HP"), s.Description)
	assert.Equal(t, []byte("casts Heal"), s.Message1)
	assert.Equal(t, []byte("and light shines"), s.Message2)
}

func TestDecodeDatabaseTerms(t *testing.T) {
	var terms lcfBuilder
	terms.writeString(0x01, "%S attacks")
	terms.writeString(0x29, "Fight")

	file := newFile(lcf.SigDatabase)
	file.writeChunk(chunkTerms, terms.Bytes())

	db, err := DecodeDatabase(file.Bytes())
	require.NoError(t, err)

	require.Len(t, db.Terms, 2)
	assert.Equal(t, Term{ID: 0x01, Text: []byte("%S attacks")}, db.Terms[0])
	assert.Equal(t, Term{ID: 0x29, Text: []byte("Fight")}, db.Terms[1])
}

func TestDecodeDatabaseCommonEvents(t *testing.T) {
	var commands lcfBuilder
	commands.writeCommand(CommandShowMessage, 0, "Hello")
	commands.writeCommand(CommandShowMessageMore, 0, "World")
	commands.writeCommand(0, 0, "") // list padding

	var events lcfBuilder
	events.writeInt(1)
	events.writeInt(12)
	events.writeString(chunkName, "Intro")
	events.writeChunk(chunkEventCommands, commands.Bytes())
	events.endRecord()

	file := newFile(lcf.SigDatabase)
	file.writeChunk(chunkCommonEvents, events.Bytes())

	db, err := DecodeDatabase(file.Bytes())
	require.NoError(t, err)

	require.Len(t, db.CommonEvents, 1)
	ev := db.CommonEvents[0]
	assert.Equal(t, 12, ev.ID)
	assert.Equal(t, []byte("Intro"), ev.Name)
	require.Len(t, ev.Commands, 2)
	assert.Equal(t, CommandShowMessage, ev.Commands[0].Code)
	assert.Equal(t, []byte("Hello"), ev.Commands[0].Text)
	assert.Equal(t, CommandShowMessageMore, ev.Commands[1].Code)
}

func TestDecodeDatabaseTroops(t *testing.T) {
	var commands lcfBuilder
	commands.writeCommand(CommandShowMessage, 0, "The slime attacks!", 7)

	var pages lcfBuilder
	pages.writeInt(1)
	pages.writeInt(1)
	pages.writeChunk(chunkTroopPageCommands, commands.Bytes())
	pages.endRecord()

	var troops lcfBuilder
	troops.writeInt(1)
	troops.writeInt(5)
	troops.writeString(chunkName, "Slime x2")
	troops.writeChunk(chunkTroopPages, pages.Bytes())
	troops.endRecord()

	file := newFile(lcf.SigDatabase)
	file.writeChunk(chunkTroops, troops.Bytes())

	db, err := DecodeDatabase(file.Bytes())
	require.NoError(t, err)

	require.Len(t, db.Troops, 1)
	tr := db.Troops[0]
	assert.Equal(t, []byte("Slime x2"), tr.Name)
	require.Len(t, tr.Pages, 1)
	require.Len(t, tr.Pages[0].Commands, 1)
	cmd := tr.Pages[0].Commands[0]
	assert.Equal(t, []byte("The slime attacks!"), cmd.Text)
	assert.Equal(t, []int{7}, cmd.Params)
}

func TestDecodeDatabaseEngine2003(t *testing.T) {
	var classes lcfBuilder
	classes.writeInt(1)
	classes.writeInt(1)
	classes.writeString(chunkName, "Paladin")
	classes.endRecord()

	var commandList lcfBuilder
	commandList.writeInt(1)
	commandList.writeInt(1)
	commandList.writeString(chunkName, "Attack")
	commandList.endRecord()
	var battle lcfBuilder
	battle.writeChunk(chunkBattleCommandList, commandList.Bytes())

	file := newFile(lcf.SigDatabase)
	file.writeChunk(chunkClasses, classes.Bytes())
	file.writeChunk(chunkBattleCommands, battle.Bytes())

	db, err := DecodeDatabase(file.Bytes())
	require.NoError(t, err)

	assert.Equal(t, Engine2003, db.Engine)
	require.Len(t, db.Classes, 1)
	assert.Equal(t, []byte("Paladin"), db.Classes[0].Name)
	require.Len(t, db.BattleCommands, 1)
	assert.Equal(t, []byte("Attack"), db.BattleCommands[0].Name)
}

func TestDecodeDatabaseSkipsUnknownSections(t *testing.T) {
	file := newFile(lcf.SigDatabase)
	file.writeChunk(0x20, []byte{0xDE, 0xAD})

	db, err := DecodeDatabase(file.Bytes())
	require.NoError(t, err)
	assert.Empty(t, db.Actors)
}

func TestDecodeDatabaseBadSignature(t *testing.T) {
	file := newFile(lcf.SigMapUnit)

	_, err := DecodeDatabase(file.Bytes())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected signature")
}

func TestDecodeDatabaseTruncated(t *testing.T) {
	file := newFile(lcf.SigDatabase)
	file.writeChunk(chunkActors, []byte{0x05}) // claims five records, has none

	_, err := DecodeDatabase(file.Bytes())
	assert.Error(t, err)
}

func TestReadDatabase(t *testing.T) {
	var actors lcfBuilder
	actors.writeInt(1)
	actors.writeInt(1)
	actors.writeString(chunkName, "Alex")
	actors.endRecord()

	file := newFile(lcf.SigDatabase)
	file.writeChunk(chunkActors, actors.Bytes())

	path := filepath.Join(t.TempDir(), "RPG_RT.ldb")
	require.NoError(t, os.WriteFile(path, file.Bytes(), 0o644))

	db, err := ReadDatabase(path)
	require.NoError(t, err)
	require.Len(t, db.Actors, 1)

	_, err = ReadDatabase(filepath.Join(t.TempDir(), "missing.ldb"))
	assert.Error(t, err)
}
