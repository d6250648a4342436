package translation

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Decoder parses a unit file back into a store.
type Decoder struct {
	scanner *bufio.Scanner
	logger  *zap.Logger
}

// NewDecoder returns a decoder reading from r. A nil logger silences the
// malformed-record warnings.
func NewDecoder(r io.Reader, logger *zap.Logger) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Decoder{scanner: scanner, logger: logger}
}

// Decode reads records until EOF. Records are separated by blank lines.
// A record that cannot be parsed is dropped with a warning and decoding
// resumes at the next record, only reader errors are fatal.
func (d *Decoder) Decode() (*Store, error) {
	store := NewStore()
	var record []string
	start := 0

	flush := func() {
		if len(record) == 0 {
			return
		}
		entry, err := parseRecord(record)
		record = nil
		if err != nil {
			d.logger.Warn("Dropping malformed record",
				zap.Int("line", start),
				zap.Error(err))
			return
		}
		if entry.Original == "" {
			// header record, keep the first one only
			if store.Header() == "" {
				store.SetHeader(entry.Translation)
			}
			return
		}
		stored := store.Add(*entry)
		if entry.HasTranslation() {
			stored.Translation = entry.Translation
			stored.Fuzzy = entry.Fuzzy
		}
	}

	line := 0
	for d.scanner.Scan() {
		line++
		text := d.scanner.Text()
		if strings.TrimSpace(text) == "" {
			flush()
			continue
		}
		if len(record) == 0 {
			start = line
		}
		record = append(record, text)
	}
	if err := d.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read unit: %w", err)
	}
	flush()
	return store, nil
}

// parseRecord turns the lines of one record into an entry. Comment lines
// come first, then msgctxt/msgid/msgstr fields, each optionally followed
// by quoted continuation lines.
func parseRecord(lines []string) (*Entry, error) {
	entry := &Entry{}
	i := 0
	for ; i < len(lines); i++ {
		line := lines[i]
		if !strings.HasPrefix(line, "#") {
			break
		}
		switch {
		case strings.HasPrefix(line, "#,"):
			if strings.Contains(line[2:], "fuzzy") {
				entry.Fuzzy = true
			}
		default:
			// "#." and any other comment kind both carry provenance
			entry.AddLocation(strings.TrimSpace(strings.TrimLeft(line, "#.:")))
		}
	}

	sawID := false
	for i < len(lines) {
		keyword, rest, ok := strings.Cut(lines[i], " ")
		if !ok || !isKeyword(keyword) {
			return nil, fmt.Errorf("expected msgctxt, msgid or msgstr, got %q", lines[i])
		}
		value, err := unquote(rest)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", keyword, err)
		}
		i++
		for i < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[i]), "\"") {
			more, err := unquote(lines[i])
			if err != nil {
				return nil, fmt.Errorf("%s continuation: %w", keyword, err)
			}
			value += more
			i++
		}
		switch keyword {
		case "msgctxt":
			entry.Context = value
		case "msgid":
			entry.Original = value
			sawID = true
		case "msgstr":
			entry.Translation = value
		}
	}
	if !sawID {
		return nil, fmt.Errorf("record without msgid")
	}
	return entry, nil
}

func isKeyword(s string) bool {
	return s == "msgctxt" || s == "msgid" || s == "msgstr"
}

// unquote strips the surrounding quotes and resolves escapes. Anything
// outside a well-formed quoted string is an error.
func unquote(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '"' {
		return "", fmt.Errorf("expected quoted text, got %q", s)
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			if i != len(s)-1 {
				return "", fmt.Errorf("unexpected text after closing quote in %q", s)
			}
			return b.String(), nil
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			break
		}
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			// \" and \\ resolve to the character itself, unknown
			// escapes are kept verbatim
			b.WriteByte(s[i])
		}
	}
	return "", fmt.Errorf("unterminated quoted text %q", s)
}
