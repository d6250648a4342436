package translation

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// escaper covers the characters that cannot appear raw inside a quoted
// field. Newlines are handled by the continuation-line form instead.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\t", `\t`,
	"\r", `\r`,
)

// Encoder writes a store as a unit file.
type Encoder struct {
	w *bufio.Writer
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: bufio.NewWriter(w)}
}

// Encode writes the header record followed by every entry in store
// order, separated by blank lines, and flushes the writer. Write errors
// surface at the final flush.
func (e *Encoder) Encode(s *Store) error {
	first := true
	if s.Header() != "" {
		e.writeField("msgid", "")
		e.writeField("msgstr", s.Header())
		first = false
	}
	for _, entry := range s.Entries() {
		if !first {
			e.w.WriteByte('\n')
		}
		first = false
		e.writeEntry(entry)
	}
	if err := e.w.Flush(); err != nil {
		return fmt.Errorf("failed to write unit: %w", err)
	}
	return nil
}

func (e *Encoder) writeEntry(entry *Entry) {
	for _, location := range entry.Locations {
		fmt.Fprintf(e.w, "#. %s\n", location)
	}
	if entry.Fuzzy {
		e.w.WriteString("#, fuzzy\n")
	}
	if entry.Context != "" {
		e.writeField("msgctxt", entry.Context)
	}
	e.writeField("msgid", entry.Original)
	e.writeField("msgstr", entry.Translation)
}

// writeField emits one keyword line. Text containing newlines uses the
// continuation form: an empty quoted string on the keyword line, then
// one quoted line per text line with the newline escaped at the end.
func (e *Encoder) writeField(keyword, text string) {
	if !strings.Contains(text, "\n") {
		fmt.Fprintf(e.w, "%s \"%s\"\n", keyword, escaper.Replace(text))
		return
	}
	fmt.Fprintf(e.w, "%s \"\"\n", keyword)
	rest := text
	for rest != "" {
		line, tail, cut := strings.Cut(rest, "\n")
		if cut {
			fmt.Fprintf(e.w, "\"%s\\n\"\n", escaper.Replace(line))
		} else {
			fmt.Fprintf(e.w, "\"%s\"\n", escaper.Replace(line))
		}
		rest = tail
	}
}
