package rpg

import "lcftrans/core/lcf"

// Event command codes that carry user-visible text.
const (
	CommandShowMessage      = 10110
	CommandShowChoice       = 10140
	CommandChangeHeroName   = 10610
	CommandChangeHeroTitle  = 10620
	CommandShowMessageMore  = 20110
	CommandShowChoiceOption = 20140
)

// EventCommand is one step of an event script.
type EventCommand struct {
	Code   int
	Indent int
	Text   []byte
	Params []int
}

// readCommands decodes a command list payload. Each command is the code,
// the indent level, a length-prefixed string and the parameter list.
// Zero-code commands pad the end of some lists and are dropped.
func readCommands(data []byte) ([]EventCommand, error) {
	r := lcf.NewReader(data)
	var commands []EventCommand
	for r.Remaining() > 0 {
		code, err := r.ReadInt()
		if err != nil {
			return nil, err
		}
		indent, err := r.ReadInt()
		if err != nil {
			return nil, err
		}
		n, err := r.ReadInt()
		if err != nil {
			return nil, err
		}
		text, err := r.ReadBytes(n)
		if err != nil {
			return nil, err
		}
		argc, err := r.ReadInt()
		if err != nil {
			return nil, err
		}
		params := make([]int, argc)
		for i := range params {
			if params[i], err = r.ReadInt(); err != nil {
				return nil, err
			}
		}
		if code == 0 {
			continue
		}
		commands = append(commands, EventCommand{
			Code:   code,
			Indent: indent,
			Text:   text,
			Params: params,
		})
	}
	return commands, nil
}
