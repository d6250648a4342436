package encoding

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// ErrUnsupported reports a codepage this tool cannot provide.
var ErrUnsupported = errors.New("unsupported encoding")

// codepages maps the Windows codepage numbers the RPG Maker community
// uses to their converters.
var codepages = map[string]xencoding.Encoding{
	"932":  japanese.ShiftJIS,
	"936":  simplifiedchinese.GBK,
	"949":  korean.EUCKR,
	"950":  traditionalchinese.Big5,
	"866":  charmap.CodePage866,
	"874":  charmap.Windows874,
	"1250": charmap.Windows1250,
	"1251": charmap.Windows1251,
	"1252": charmap.Windows1252,
	"1253": charmap.Windows1253,
	"1254": charmap.Windows1254,
	"1255": charmap.Windows1255,
	"1256": charmap.Windows1256,
	"1257": charmap.Windows1257,
	"1258": charmap.Windows1258,
}

// Decoder converts raw game strings from one legacy codepage to UTF-8.
type Decoder struct {
	name string
	enc  xencoding.Encoding
}

// NewDecoder resolves a codepage name. Accepted are "utf-8", the known
// Windows codepage numbers and IANA names. Unresolvable names return
// ErrUnsupported.
func NewDecoder(name string) (*Decoder, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	switch norm {
	case "":
		return nil, fmt.Errorf("%w: no encoding given", ErrUnsupported)
	case "utf-8", "utf8", "65001":
		return &Decoder{name: "utf-8"}, nil
	}
	if enc, ok := codepages[norm]; ok {
		return &Decoder{name: norm, enc: enc}, nil
	}
	if enc, err := ianaindex.IANA.Encoding(norm); err == nil && enc != nil {
		return &Decoder{name: norm, enc: enc}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, name)
}

// Name returns the resolved codepage name.
func (d *Decoder) Name() string {
	return d.name
}

// String converts raw bytes to UTF-8. Undecodable bytes become the
// replacement rune, conversion never fails.
func (d *Decoder) String(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	if d.enc == nil {
		if utf8.Valid(raw) {
			return string(raw)
		}
		return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	}
	out, err := d.enc.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.ToValidUTF8(string(raw), string(utf8.RuneError))
	}
	return string(out)
}
