package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"lcftrans/core/encoding"
	"lcftrans/core/rpg"
	"lcftrans/core/translation"
)

// Extractor collects user-visible text from decoded game trees.
type Extractor struct {
	dec    *encoding.Decoder
	logger *zap.Logger
}

// New wires an extractor for one resolved codepage.
func New(dec *encoding.Decoder, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{dec: dec, logger: logger}
}

func newStore() *translation.Store {
	s := translation.NewStore()
	s.SetHeader(translation.DefaultHeader)
	return s
}

// Database extracts the three database units from RPG_RT.ldb. A file
// that cannot be decoded yields empty stores.
func (x *Extractor) Database(path string) (terms, common, battle *translation.Store) {
	db, err := rpg.ReadDatabase(path)
	if err != nil {
		x.logger.Warn("Failed to decode database, its units stay empty",
			zap.String("file", path),
			zap.Error(err))
		return newStore(), newStore(), newStore()
	}
	return x.DatabaseStores(db)
}

// Map extracts one map unit from a .lmu file. A file that cannot be
// decoded yields an empty store.
func (x *Extractor) Map(path string) *translation.Store {
	m, err := rpg.ReadMap(path)
	if err != nil {
		x.logger.Warn("Failed to decode map, its unit stays empty",
			zap.String("file", path),
			zap.Error(err))
		return newStore()
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return x.MapStore(m, name)
}

// MapTree extracts the map name unit from RPG_RT.lmt. A file that
// cannot be decoded yields an empty store.
func (x *Extractor) MapTree(path string) *translation.Store {
	tree, err := rpg.ReadMapTree(path)
	if err != nil {
		x.logger.Warn("Failed to decode map tree, its unit stays empty",
			zap.String("file", path),
			zap.Error(err))
		return newStore()
	}
	return x.MapTreeStore(tree)
}

// add decodes raw text and inserts it unless blank.
func (x *Extractor) add(s *translation.Store, context string, raw []byte, location string) {
	text := x.dec.String(raw)
	if strings.TrimSpace(text) == "" {
		return
	}
	s.Add(translation.Entry{
		Original:  text,
		Context:   context,
		Locations: []string{location},
	})
}

// addText inserts already decoded text unless blank.
func (x *Extractor) addText(s *translation.Store, text, location string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	s.Add(translation.Entry{
		Original:  text,
		Locations: []string{location},
	})
}

// named renders "Kind 7 'label'" location prefixes, dropping the quoted
// part for unnamed objects.
func (x *Extractor) named(kind string, id int, rawName []byte) string {
	name := x.dec.String(rawName)
	if strings.TrimSpace(name) == "" {
		return fmt.Sprintf("%s %d", kind, id)
	}
	return fmt.Sprintf("%s %d '%s'", kind, id, name)
}
