package rpg

import (
	"fmt"
	"os"

	"lcftrans/core/lcf"
)

// Map unit tags.
const (
	chunkMapEvents = 0x51
)

// Map event field tags.
const (
	chunkEventX            = 0x02
	chunkEventY            = 0x03
	chunkEventPages        = 0x05
	chunkPageEventCommands = 0x34
)

// Map is the decoded content of one map unit, reduced to its events.
type Map struct {
	Events []MapEvent
}

// MapEvent is one event placed on a map.
type MapEvent struct {
	ID    int
	Name  []byte
	X     int
	Y     int
	Pages []EventPage
}

// EventPage is one conditional page of a map event.
type EventPage struct {
	ID       int
	Commands []EventCommand
}

// ReadMap reads and decodes a map unit file.
func ReadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}
	return DecodeMap(data)
}

// DecodeMap decodes map unit bytes.
func DecodeMap(data []byte) (*Map, error) {
	r := lcf.NewReader(data)
	sig, err := r.ReadSignature()
	if err != nil {
		return nil, err
	}
	if sig != lcf.SigMapUnit {
		return nil, fmt.Errorf("unexpected signature %q, want %q", sig, lcf.SigMapUnit)
	}

	m := &Map{}
	for {
		c, ok, err := r.ReadChunk()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if c.ID != chunkMapEvents {
			continue
		}
		if m.Events, err = readMapEvents(c.Reader()); err != nil {
			return nil, fmt.Errorf("events: %w", err)
		}
	}
	return m, nil
}

func readMapEvents(r *lcf.Reader) ([]MapEvent, error) {
	var events []MapEvent
	err := readList(r, func(id int, record *lcf.Reader) error {
		ev := MapEvent{ID: id}
		err := readFields(record, func(c lcf.Chunk) error {
			var ferr error
			switch c.ID {
			case chunkName:
				ev.Name = c.Data
			case chunkEventX:
				ev.X, ferr = c.Int()
			case chunkEventY:
				ev.Y, ferr = c.Int()
			case chunkEventPages:
				ev.Pages, ferr = readEventPages(c.Reader())
			}
			return ferr
		})
		events = append(events, ev)
		return err
	})
	return events, err
}

func readEventPages(r *lcf.Reader) ([]EventPage, error) {
	var pages []EventPage
	err := readList(r, func(id int, record *lcf.Reader) error {
		p := EventPage{ID: id}
		err := readFields(record, func(c lcf.Chunk) error {
			if c.ID == chunkPageEventCommands {
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
