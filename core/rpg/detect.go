package rpg

import "lcftrans/core/encoding"

// DetectEncoding guesses the legacy codepage of the database text. It
// samples every string field and defers the scoring to the encoding
// package. Empty means there was nothing to judge.
func DetectEncoding(db *Database) string {
	var samples [][]byte
	add := func(fields ...[]byte) {
		for _, f := range fields {
			if len(f) > 0 {
				samples = append(samples, f)
			}
		}
	}

	for _, a := range db.Actors {
		add(a.Name, a.Title)
	}
	for _, s := range db.Skills {
		add(s.Name, s.Description, s.Message1, s.Message2)
	}
	for _, it := range db.Items {
		add(it.Name, it.Description)
	}
	for _, e := range db.Enemies {
		add(e.Name)
	}
	for _, s := range db.States {
		add(s.Name)
	}
	for _, t := range db.Terms {
		add(t.Text)
	}
	for _, c := range db.Classes {
		add(c.Name)
	}
	for _, b := range db.BattleCommands {
		add(b.Name)
	}
	for _, ev := range db.CommonEvents {
		add(ev.Name)
		for _, c := range ev.Commands {
			add(c.Text)
		}
	}
	for _, tr := range db.Troops {
		add(tr.Name)
		for _, p := range tr.Pages {
			for _, c := range p.Commands {
				add(c.Text)
			}
		}
	}
	return encoding.Detect(samples)
}
