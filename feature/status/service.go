package status

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"lcftrans/core/project"
	"lcftrans/core/translation"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrUnitNotFound is returned when a requested unit file does not exist.
var ErrUnitNotFound = errors.New("unit not found")

// UnitStats summarizes the progress of one translation unit.
type UnitStats struct {
	Name       string  `json:"name"`
	Total      int     `json:"total"`
	Translated int     `json:"translated"`
	Fuzzy      int     `json:"fuzzy"`
	Stale      int     `json:"stale"`
	Unmatched  int     `json:"unmatched"`
	Percent    float64 `json:"percent"`
}

// Overview aggregates the progress of a whole translation directory.
type Overview struct {
	Directory   string      `json:"directory"`
	Units       []UnitStats `json:"units"`
	Total       int         `json:"total"`
	Translated  int         `json:"translated"`
	Fuzzy       int         `json:"fuzzy"`
	Stale       int         `json:"stale"`
	Percent     float64     `json:"percent"`
	GeneratedAt string      `json:"generated_at"`
}

// EntryDetail is one term of a unit as served by the API.
type EntryDetail struct {
	Context     string   `json:"context,omitempty"`
	Original    string   `json:"original"`
	Translation string   `json:"translation"`
	Fuzzy       bool     `json:"fuzzy,omitempty"`
	Locations   []string `json:"locations,omitempty"`
}

// UnitDetail is the full term listing of one unit.
type UnitDetail struct {
	UnitStats
	Entries []EntryDetail `json:"entries"`
}

// SearchResult is one match of a text search across all units.
type SearchResult struct {
	Unit        string   `json:"unit"`
	Context     string   `json:"context,omitempty"`
	Original    string   `json:"original"`
	Translation string   `json:"translation"`
	Fuzzy       bool     `json:"fuzzy,omitempty"`
	Locations   []string `json:"locations,omitempty"`
}

// snapshot holds the parsed state of a translation directory.
type snapshot struct {
	built time.Time
	ttl   time.Duration

	// names is the sorted list of live unit files.
	names []string
	// stores maps live unit names to their parsed entries.
	stores map[string]*translation.Store
	// stale and unmatched count companion terms per live unit.
	stale     map[string]int
	unmatched map[string]int
}

// isExpired returns true if this snapshot has expired based on its TTL.
func (s *snapshot) isExpired() bool {
	if s.ttl == 0 {
		return true // No caching
	}
	return time.Since(s.built) > s.ttl
}

// Service computes translation progress for a directory of units.
type Service struct {
	dir    string
	ttl    time.Duration
	logger *zap.Logger

	mu   sync.RWMutex
	snap *snapshot
	sf   singleflight.Group
}

// NewService creates a status service over the given unit directory.
func NewService(dir string, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{dir: dir, ttl: ttl, logger: logger}
}

// Overview returns the aggregated progress of every unit in the directory.
func (s *Service) Overview() (*Overview, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		Directory:   s.dir,
		GeneratedAt: time.Now().Format(time.RFC3339),
	}
	for _, name := range snap.names {
		us := snap.unitStats(name)
		ov.Units = append(ov.Units, us)
		ov.Total += us.Total
		ov.Translated += us.Translated
		ov.Fuzzy += us.Fuzzy
		ov.Stale += us.Stale
	}
	if ov.Total == 0 {
		ov.Percent = 100
	} else {
		ov.Percent = float64(ov.Translated) * 100 / float64(ov.Total)
	}
	return ov, nil
}

// Units returns the per-unit progress, sorted by unit name.
func (s *Service) Units() ([]UnitStats, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	units := make([]UnitStats, 0, len(snap.names))
	for _, name := range snap.names {
		units = append(units, snap.unitStats(name))
	}
	return units, nil
}

// Unit returns the full term listing of one unit. With untranslatedOnly
// set, entries that already carry a translation are omitted.
func (s *Service) Unit(name string, untranslatedOnly bool) (*UnitDetail, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	store, ok := snap.stores[name]
	if !ok {
		return nil, ErrUnitNotFound
	}

	detail := &UnitDetail{UnitStats: snap.unitStats(name)}
	for _, e := range store.Entries() {
		if untranslatedOnly && e.HasTranslation() {
			continue
		}
		detail.Entries = append(detail.Entries, EntryDetail{
			Context:     e.Context,
			Original:    e.Original,
			Translation: e.Translation,
			Fuzzy:       e.Fuzzy,
			Locations:   e.Locations,
		})
	}
	return detail, nil
}

// Search finds terms whose original or translation contains the query,
// case-insensitively. A limit of zero or less defaults to 50 results.
func (s *Service) Search(query string, limit int) ([]SearchResult, error) {
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 50
	}
	needle := strings.ToLower(query)

	var results []SearchResult
	for _, name := range snap.names {
		for _, e := range snap.stores[name].Entries() {
			if !strings.Contains(strings.ToLower(e.Original), needle) &&
				!strings.Contains(strings.ToLower(e.Translation), needle) {
				continue
			}
			results = append(results, SearchResult{
				Unit:        name,
				Context:     e.Context,
				Original:    e.Original,
				Translation: e.Translation,
				Fuzzy:       e.Fuzzy,
				Locations:   e.Locations,
			})
			if len(results) >= limit {
				return results, nil
			}
		}
	}
	return results, nil
}

// Invalidate drops the cached directory snapshot, forcing a rescan.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
}

// current retrieves the cached snapshot, or rebuilds it if it doesn't
// exist or has expired. Uses singleflight to prevent scan stampedes.
func (s *Service) current() (*snapshot, error) {
	// Fast path: check if snapshot exists and is fresh
	s.mu.RLock()
	snap := s.snap
	s.mu.RUnlock()

	if snap != nil && !snap.isExpired() {
		return snap, nil
	}

	// Slow path: rebuild using singleflight
	result, err, _ := s.sf.Do("scan", func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		s.mu.RLock()
		snap := s.snap
		s.mu.RUnlock()

		if snap != nil && !snap.isExpired() {
			return snap, nil
		}

		newSnap, err := s.scan()
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.snap = newSnap
		s.mu.Unlock()

		return newSnap, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*snapshot), nil
}

// scan parses every unit file in the directory into a fresh snapshot.
func (s *Service) scan() (*snapshot, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation directory: %w", err)
	}

	snap := &snapshot{
		built:     time.Now(),
		ttl:       s.ttl,
		stores:    make(map[string]*translation.Store),
		stale:     make(map[string]int),
		unmatched: make(map[string]int),
	}

	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.EqualFold(filepath.Ext(name), ".po") {
			continue
		}

		store, err := s.readUnit(name)
		if err != nil {
			s.logger.Warn("Skipping unreadable unit", zap.String("unit", name), zap.Error(err))
			continue
		}

		if project.IsCompanionUnit(name) {
			// Companions count against the unit they belong to.
			if base, ok := strings.CutSuffix(name, ".stale.po"); ok {
				snap.stale[base+".po"] += store.Len()
			} else if base, ok := strings.CutSuffix(name, ".unmatched.po"); ok {
				snap.unmatched[base+".po"] += store.Len()
			}
			continue
		}

		snap.stores[name] = store
		snap.names = append(snap.names, name)
	}

	sort.Strings(snap.names)
	return snap, nil
}

func (s *Service) readUnit(name string) (*translation.Store, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return translation.NewDecoder(f, s.logger).Decode()
}

// unitStats folds the store counters and the companion counts of one unit.
func (s *snapshot) unitStats(name string) UnitStats {
	st := s.stores[name].Stats()
	return UnitStats{
		Name:       name,
		Total:      st.Total,
		Translated: st.Translated,
		Fuzzy:      st.Fuzzy,
		Stale:      s.stale[name],
		Unmatched:  s.unmatched[name],
		Percent:    st.Percent(),
	}
}
