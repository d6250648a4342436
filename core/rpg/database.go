package rpg

import (
	"fmt"
	"os"

	"lcftrans/core/lcf"
)

// Engine identifies the editor generation a database was written by.
type Engine int

const (
	Engine2000 Engine = iota
	Engine2003
)

func (e Engine) String() string {
	if e == Engine2003 {
		return "RPG Maker 2003"
	}
	return "RPG Maker 2000"
}

// Database section tags.
const (
	chunkActors         = 0x0B
	chunkSkills         = 0x0C
	chunkItems          = 0x0D
	chunkEnemies        = 0x0E
	chunkTroops         = 0x0F
	chunkStates         = 0x12
	chunkTerms          = 0x15
	chunkCommonEvents   = 0x19
	chunkBattleCommands = 0x1D
	chunkClasses        = 0x1E
)

// Field tags inside the section records. Sections reuse tag values, the
// meaning depends on the record kind.
const (
	chunkName              = 0x01
	chunkActorTitle        = 0x02
	chunkDescription       = 0x02
	chunkSkillMessage1     = 0x03
	chunkSkillMessage2     = 0x04
	chunkTroopPages        = 0x0B
	chunkTroopPageCommands = 0x0C
	chunkEventCommands     = 0x16
	chunkBattleCommandList = 0x0A
)

// Database is the decoded RPG_RT.ldb content.
type Database struct {
	Engine         Engine
	Actors         []Actor
	Skills         []Skill
	Items          []Item
	Enemies        []Enemy
	States         []State
	Terms          []Term
	Classes        []Class
	BattleCommands []BattleCommand
	CommonEvents   []CommonEvent
	Troops         []Troop
}

// Actor is one playable character.
type Actor struct {
	ID    int
	Name  []byte
	Title []byte
}

// Skill is one learnable ability. The messages are only shown by the
// 2000 battle system.
type Skill struct {
	ID          int
	Name        []byte
	Description []byte
	Message1    []byte
	Message2    []byte
}

// Item is one inventory object.
type Item struct {
	ID          int
	Name        []byte
	Description []byte
}

// Enemy is one monster.
type Enemy struct {
	ID   int
	Name []byte
}

// State is one status condition.
type State struct {
	ID   int
	Name []byte
}

// Term is one system vocabulary string, e.g. the battle and shop
// messages. The tag value identifies which one.
type Term struct {
	ID   int
	Text []byte
}

// Class is one character class, 2003 only.
type Class struct {
	ID   int
	Name []byte
}

// BattleCommand is one entry of the 2003 battle menu.
type BattleCommand struct {
	ID   int
	Name []byte
}

// CommonEvent is one global event script.
type CommonEvent struct {
	ID       int
	Name     []byte
	Commands []EventCommand
}

// Troop is one enemy group with its battle event pages.
type Troop struct {
	ID    int
	Name  []byte
	Pages []TroopPage
}

// TroopPage is one conditional battle event script.
type TroopPage struct {
	ID       int
	Commands []EventCommand
}

// ReadDatabase reads and decodes a database file.
func ReadDatabase(path string) (*Database, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read database: %w", err)
	}
	return DecodeDatabase(data)
}

// DecodeDatabase decodes database bytes.
func DecodeDatabase(data []byte) (*Database, error) {
	r := lcf.NewReader(data)
	sig, err := r.ReadSignature()
	if err != nil {
		return nil, err
	}
	if sig != lcf.SigDatabase {
		return nil, fmt.Errorf("unexpected signature %q, want %q", sig, lcf.SigDatabase)
	}

	db := &Database{}
	for {
		c, ok, err := r.ReadChunk()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		switch c.ID {
		case chunkActors:
			db.Actors, err = readActors(c.Reader())
		case chunkSkills:
			db.Skills, err = readSkills(c.Reader())
		case chunkItems:
			db.Items, err = readItems(c.Reader())
		case chunkEnemies:
			db.Enemies, err = readEnemies(c.Reader())
		case chunkStates:
			db.States, err = readStates(c.Reader())
		case chunkTerms:
			db.Terms, err = readTerms(c.Reader())
		case chunkClasses:
			db.Classes, err = readClasses(c.Reader())
		case chunkBattleCommands:
			db.BattleCommands, err = readBattleCommands(c.Reader())
		case chunkCommonEvents:
			db.CommonEvents, err = readCommonEvents(c.Reader())
		case chunkTroops:
			db.Troops, err = readTroops(c.Reader())
		}
		if err != nil {
			return nil, fmt.Errorf("section 0x%02X: %w", c.ID, err)
		}
	}

	// only the 2003 editor writes these sections
	if len(db.Classes) > 0 || len(db.BattleCommands) > 0 {
		db.Engine = Engine2003
	}
	return db, nil
}

// readList iterates a count-prefixed record list. fn receives the record
// id and the shared reader positioned at the record's field chunks, it
// must consume them up to the terminator tag.
func readList(r *lcf.Reader, fn func(id int, record *lcf.Reader) error) error {
	count, err := r.ReadInt()
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		id, err := r.ReadInt()
		if err != nil {
			return err
		}
		if err := fn(id, r); err != nil {
			return err
		}
	}
	return nil
}

// readFields walks the field chunks of one record until the terminator.
func readFields(r *lcf.Reader, fn func(c lcf.Chunk) error) error {
	for {
		c, ok, err := r.ReadChunk()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(c); err != nil {
			return err
		}
	}
}

func readActors(r *lcf.Reader) ([]Actor, error) {
	var actors []Actor
	err := readList(r, func(id int, record *lcf.Reader) error {
		a := Actor{ID: id}
		err := readFields(record, func(c lcf.Chunk) error {
			switch c.ID {
			case chunkName:
				a.Name = c.Data
			case chunkActorTitle:
				a.Title = c.Data
			}
			return nil
		})
		actors = append(actors, a)
		return err
	})
	return actors, err
}

func readSkills(r *lcf.Reader) ([]Skill, error) {
	var skills []Skill
	err := readList(r, func(id int, record *lcf.Reader) error {
		s := Skill{ID: id}
		err := readFields(record, func(c lcf.Chunk) error {
			switch c.ID {
			case chunkName:
				s.Name = c.Data
			case chunkDescription:
				s.Description = c.Data
			case chunkSkillMessage1:
				s.Message1 = c.Data
			case chunkSkillMessage2:
				s.Message2 = c.Data
			}
			return nil
		})
		skills = append(skills, s)
		return err
	})
	return skills, err
}

func readItems(r *lcf.Reader) ([]Item, error) {
	var items []Item
	err := readList(r, func(id int, record *lcf.Reader) error {
		it := Item{ID: id}
		err := readFields(record, func(c lcf.Chunk) error {
			switch c.ID {
			case chunkName:
				it.Name = c.Data
			case chunkDescription:
				it.Description = c.Data
			}
			return nil
		})
		items = append(items, it)
		return err
	})
	return items, err
}

func readEnemies(r *lcf.Reader) ([]Enemy, error) {
	var enemies []Enemy
	err := readList(r, func(id int, record *lcf.Reader) error {
		e := Enemy{ID: id}
		err := readFields(record, func(c lcf.Chunk) error {
			if c.ID == chunkName {
				e.Name = c.Data
			}
			return nil
		})
		enemies = append(enemies, e)
		return err
	})
	return enemies, err
}

func readStates(r *lcf.Reader) ([]State, error) {
	var states []State
	err := readList(r, func(id int, record *lcf.Reader) error {
		s := State{ID: id}
		err := readFields(record, func(c lcf.Chunk) error {
			if c.ID == chunkName {
				s.Name = c.Data
			}
			return nil
		})
		states = append(states, s)
		return err
	})
	return states, err
}

// readTerms reads the vocabulary section. It is a single record, every
// field chunk is one string.
func readTerms(r *lcf.Reader) ([]Term, error) {
	var terms []Term
	err := readFields(r, func(c lcf.Chunk) error {
		terms = append(terms, Term{ID: c.ID, Text: c.Data})
		return nil
	})
	return terms, err
}

func readClasses(r *lcf.Reader) ([]Class, error) {
	var classes []Class
	err := readList(r, func(id int, record *lcf.Reader) error {
		cl := Class{ID: id}
		err := readFields(record, func(c lcf.Chunk) error {
			if c.ID == chunkName {
				cl.Name = c.Data
			}
			return nil
		})
		classes = append(classes, cl)
		return err
	})
	return classes, err
}

// readBattleCommands reads the 2003 battle menu section. The commands
// hide in a list chunk inside an outer settings record.
func readBattleCommands(r *lcf.Reader) ([]BattleCommand, error) {
	var commands []BattleCommand
	err := readFields(r, func(c lcf.Chunk) error {
		if c.ID != chunkBattleCommandList {
			return nil
		}
		return readList(c.Reader(), func(id int, record *lcf.Reader) error {
			b := BattleCommand{ID: id}
			err := readFields(record, func(fc lcf.Chunk) error {
				if fc.ID == chunkName {
					b.Name = fc.Data
				}
				return nil
			})
			commands = append(commands, b)
			return err
		})
	})
	return commands, err
}

func readCommonEvents(r *lcf.Reader) ([]CommonEvent, error) {
	var events []CommonEvent
	err := readList(r, func(id int, record *lcf.Reader) error {
		ev := CommonEvent{ID: id}
		err := readFields(record, func(c lcf.Chunk) error {
			switch c.ID {
			case chunkName:
				ev.Name = c.Data
			case chunkEventCommands:
				var cerr error
				ev.Commands, cerr = readCommands(c.Data)
				return cerr
			}
			return nil
		})
		events = append(events, ev)
		return err
	})
	return events, err
}

func readTroops(r *lcf.Reader) ([]Troop, error) {
	var troops []Troop
	err := readList(r, func(id int, record *lcf.Reader) error {
		tr := Troop{ID: id}
		err := readFields(record, func(c lcf.Chunk) error {
			switch c.ID {
			case chunkName:
				tr.Name = c.Data
			case chunkTroopPages:
				var perr error
				tr.Pages, perr = readTroopPages(c.Reader())
				return perr
			}
			return nil
		})
		troops = append(troops, tr)
		return err
	})
	return troops, err
}

func readTroopPages(r *lcf.Reader) ([]TroopPage, error) {
	var pages []TroopPage
	err := readList(r, func(id int, record *lcf.Reader) error {
		p := TroopPage{ID: id}
		err := readFields(record, func(c lcf.Chunk) error {
			if c.ID == chunkTroopPageCommands {
				var cerr error
				p.Commands, cerr = readCommands(c.Data)
				return cerr
			}
			return nil
		})
		pages = append(pages, p)
		return err
	})
	return pages, err
}
