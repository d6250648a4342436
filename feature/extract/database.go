package extract

import (
	"fmt"

	"lcftrans/core/rpg"
	"lcftrans/core/translation"
)

// DatabaseStores extracts the three database units from a decoded tree.
// The terms store holds the named objects and the vocabulary, separated
// by context so equal text in different field classes stays distinct.
// The common and battle stores hold the event script text.
func (x *Extractor) DatabaseStores(db *rpg.Database) (terms, common, battle *translation.Store) {
	terms = newStore()
	common = newStore()
	battle = newStore()

	for _, a := range db.Actors {
		where := fmt.Sprintf("Actor %d", a.ID)
		x.add(terms, "actor.name", a.Name, where)
		x.add(terms, "actor.title", a.Title, where)
	}
	for _, s := range db.Skills {
		where := fmt.Sprintf("Skill %d", s.ID)
		x.add(terms, "skill.name", s.Name, where)
		x.add(terms, "skill.description", s.Description, where)
		x.add(terms, "skill.message", s.Message1, where)
		x.add(terms, "skill.message", s.Message2, where)
	}
	for _, it := range db.Items {
		where := fmt.Sprintf("Item %d", it.ID)
		x.add(terms, "item.name", it.Name, where)
		x.add(terms, "item.description", it.Description, where)
	}
	for _, e := range db.Enemies {
		x.add(terms, "enemy.name", e.Name, fmt.Sprintf("Enemy %d", e.ID))
	}
	for _, s := range db.States {
		x.add(terms, "state.name", s.Name, fmt.Sprintf("State %d", s.ID))
	}
	for _, t := range db.Terms {
		x.add(terms, "term", t.Text, fmt.Sprintf("Term %d", t.ID))
	}
	for _, c := range db.Classes {
		x.add(terms, "class.name", c.Name, fmt.Sprintf("Class %d", c.ID))
	}
	for _, b := range db.BattleCommands {
		x.add(terms, "battlecommand.name", b.Name, fmt.Sprintf("Battle Command %d", b.ID))
	}

	for _, ev := range db.CommonEvents {
		x.commands(common, ev.Commands, x.named("Common Event", ev.ID, ev.Name))
	}
	for _, tr := range db.Troops {
		for _, page := range tr.Pages {
			where := fmt.Sprintf("%s, Page %d", x.named("Troop", tr.ID, tr.Name), page.ID)
			x.commands(battle, page.Commands, where)
		}
	}
	return terms, common, battle
}
