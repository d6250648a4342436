package extract

import (
	"fmt"
	"strings"

	"lcftrans/core/rpg"
	"lcftrans/core/translation"
)

// commands collects the translatable text of one event command list.
// Message boxes spanning continuation commands are joined into one
// multi-line entry anchored at the first line.
func (x *Extractor) commands(s *translation.Store, cmds []rpg.EventCommand, where string) {
	for i := 0; i < len(cmds); i++ {
		c := cmds[i]
		location := fmt.Sprintf("%s, Line %d", where, i+1)
		switch c.Code {
		case rpg.CommandShowMessage:
			var text strings.Builder
			text.WriteString(x.dec.String(c.Text))
			for i+1 < len(cmds) && cmds[i+1].Code == rpg.CommandShowMessageMore {
				i++
				text.WriteByte('\n')
				text.WriteString(x.dec.String(cmds[i].Text))
			}
			x.addText(s, text.String(), location)
		case rpg.CommandShowChoiceOption:
			x.addText(s, x.dec.String(c.Text), location)
		case rpg.CommandChangeHeroName, rpg.CommandChangeHeroTitle:
			x.addText(s, x.dec.String(c.Text), location)
		}
	}
}

// MapStore extracts one map unit from a decoded map. The map name only
// shows up in the locations, the unit file itself is named after it.
func (x *Extractor) MapStore(m *rpg.Map, mapName string) *translation.Store {
	s := newStore()
	for _, ev := range m.Events {
		for _, page := range ev.Pages {
			where := fmt.Sprintf("%s, %s, Page %d",
				mapName, x.named("Event", ev.ID, ev.Name), page.ID)
			x.commands(s, page.Commands, where)
		}
	}
	return s
}

// MapTreeStore extracts the map names from a decoded tree. The root
// node carries the game title, not a map name, and is skipped.
func (x *Extractor) MapTreeStore(tree *rpg.MapTree) *translation.Store {
	s := newStore()
	for _, info := range tree.Maps {
		if info.ID == 0 {
			continue
		}
		x.add(s, "", info.Name, fmt.Sprintf("Map %04d", info.ID))
	}
	return s
}
