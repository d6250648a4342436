package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lcftrans/core/translation"
)

// Extractor turns game files into entry stores. Implementations own the
// file decoding. A file that cannot be decoded yields empty stores, not
// an error, so the remaining units still process.
type Extractor interface {
	// Database extracts the three database units from RPG_RT.ldb.
	Database(path string) (terms, common, battle *translation.Store)
	// Map extracts one map unit from a .lmu file.
	Map(path string) *translation.Store
	// MapTree extracts the map name unit from RPG_RT.lmt.
	MapTree(path string) *translation.Store
}

// Pipeline drives extract, merge or match and write for every unit of a
// game directory.
type Pipeline struct {
	cfg       Config
	extractor Extractor
	logger    *zap.Logger
}

// NewPipeline wires a pipeline. The extractor may be nil for Match runs,
// which only read unit files.
func NewPipeline(cfg Config, extractor Extractor, logger *zap.Logger) *Pipeline {
	if cfg.Output == "" {
		cfg.Output = "."
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, extractor: extractor, logger: logger}
}

// Create extracts every unit of the game and writes fresh files to the
// output directory.
func (p *Pipeline) Create(layout *Layout) error {
	return p.run(layout, false)
}

// Update re-extracts every unit, merges the previously written files
// from the output directory back in and parks dropped terms in
// .stale.po companions.
func (p *Pipeline) Update(layout *Layout) error {
	return p.run(layout, true)
}

func (p *Pipeline) run(layout *Layout, update bool) error {
	var existing map[string]string
	if update {
		var err error
		if existing, err = listUnits(p.cfg.Output); err != nil {
			return err
		}
	} else if err := os.MkdirAll(p.cfg.Output, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrGameDir, err)
	}

	// the three database units share one decoded tree
	if layout.Database != "" {
		p.logger.Info("Parsing database", zap.String("file", layout.Database))
		terms, common, battle := p.extractor.Database(layout.Path(layout.Database))
		units := []Unit{
			{Name: UnitTerms, Category: CategoryTerms, Store: terms},
			{Name: UnitCommon, Category: CategoryCommon, Store: common},
			{Name: UnitBattle, Category: CategoryBattle, Store: battle},
		}
		for _, u := range units {
			if err := p.processUnit(u, existing, update, true); err != nil {
				return err
			}
		}
	}

	if layout.MapTree != "" {
		p.logger.Info("Parsing map tree", zap.String("file", layout.MapTree))
		u := Unit{
			Name:     UnitMapTree,
			Category: CategoryMapTree,
			Store:    p.extractor.MapTree(layout.Path(layout.MapTree)),
		}
		if err := p.processUnit(u, existing, update, false); err != nil {
			return err
		}
	}

	// map units are independent of each other
	g := new(errgroup.Group)
	g.SetLimit(p.cfg.Workers)
	for _, name := range layout.Maps {
		g.Go(func() error {
			p.logger.Info("Parsing map", zap.String("file", name))
			u := Unit{
				Name:     MapUnitName(name),
				Category: CategoryMap,
				Store:    p.extractor.Map(layout.Path(name)),
			}
			return p.processUnit(u, existing, update, false)
		})
	}
	return g.Wait()
}

// processUnit merges the previously written unit in when updating, then
// writes the unit and its stale companion. Empty units are skipped
// unless keepEmpty is set, the database units are always written.
func (p *Pipeline) processUnit(u Unit, existing map[string]string, update, keepEmpty bool) error {
	if u.Store.Len() == 0 && !keepEmpty {
		p.logger.Info("Skipped. No terms found.", zap.String("unit", u.Name))
		return nil
	}
	p.logger.Info("Extracted terms",
		zap.String("unit", u.Name),
		zap.Int("terms", u.Store.Len()))

	if update {
		if onDisk, ok := existing[strings.ToLower(u.Name)]; ok {
			previous, err := p.readStore(filepath.Join(p.cfg.Output, onDisk))
			if err != nil {
				return err
			}
			stale := u.Store.Merge(previous)
			if stale.Len() > 0 {
				p.logger.Info("Stale terms",
					zap.String("unit", u.Name),
					zap.Int("terms", stale.Len()))
				staleName := StaleUnitName(u.Name)
				if err := p.writeStore(filepath.Join(p.cfg.Output, staleName), stale); err != nil {
					return err
				}
			}
		}
	}
	return p.writeStore(filepath.Join(p.cfg.Output, u.Name), u.Store)
}

// Match pairs the unit files of dir with the same-named units of an
// already-localized extraction in matchDir and bootstraps translations
// from them. Results go to the output directory, source terms that were
// never used go to .unmatched.po companions.
func (p *Pipeline) Match(dir, matchDir string) error {
	dstUnits, err := listUnits(dir)
	if err != nil {
		return err
	}
	srcUnits, err := listUnits(matchDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(p.cfg.Output, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrGameDir, err)
	}

	names := make([]string, 0, len(srcUnits))
	for lower := range srcUnits {
		if IsCompanionUnit(lower) {
			continue
		}
		names = append(names, lower)
	}
	sort.Strings(names)

	// unit pairs touch disjoint files, so they fan out like map extraction
	opts := p.cfg.MatchOptions()
	g := new(errgroup.Group)
	g.SetLimit(p.cfg.Workers)
	for _, lower := range names {
		dstName, ok := dstUnits[lower]
		if !ok {
			continue
		}
		srcName := srcUnits[lower]
		g.Go(func() error {
			dst, err := p.readStore(filepath.Join(dir, dstName))
			if err != nil {
				return err
			}
			src, err := p.readStore(filepath.Join(matchDir, srcName))
			if err != nil {
				return err
			}

			unmatched, matched := dst.Match(src, opts)
			p.logger.Info("Matched unit",
				zap.String("unit", dstName),
				zap.Int("matched", matched),
				zap.Int("fuzzy", dst.Stats().Fuzzy),
				zap.Int("unmatched", unmatched.Len()))

			if unmatched.Len() > 0 {
				name := UnmatchedUnitName(dstName)
				if err := p.writeStore(filepath.Join(p.cfg.Output, name), unmatched); err != nil {
					return err
				}
			}
			return p.writeStore(filepath.Join(p.cfg.Output, dstName), dst)
		})
	}
	return g.Wait()
}

// listUnits maps the lowercased unit file names of a directory to their
// on-disk spelling. Pairing is case-insensitive because the files have
// usually traveled through Windows.
func listUnits(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGameDir, err)
	}
	units := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.EqualFold(filepath.Ext(name), ".po") {
			units[strings.ToLower(name)] = name
		}
	}
	return units, nil
}

func (p *Pipeline) readStore(path string) (*translation.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open unit: %w", err)
	}
	defer f.Close()
	store, err := translation.NewDecoder(f, p.logger.With(zap.String("unit", filepath.Base(path)))).Decode()
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (p *Pipeline) writeStore(path string, s *translation.Store) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create unit: %w", err)
	}
	if err := translation.NewEncoder(f).Encode(s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
