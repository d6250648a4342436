package memory

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"lcftrans/core/database"
	"lcftrans/core/translation"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service reads and writes the shared translation memory.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a memory service on top of an open connection.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Migrate creates or updates the memory table and verifies that the
// resulting schema carries every column the service relies on.
func (s *Service) Migrate() error {
	if err := s.db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate memory table: %w", err)
	}

	columns, err := database.GetTableColumns(s.db, Record{}.TableName())
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(columns))
	for _, col := range columns {
		present[col.Field] = true
	}
	for _, want := range []string{"hash", "context", "original", "translation", "unit"} {
		if !present[want] {
			return fmt.Errorf("memory table is missing column %s", want)
		}
	}
	return nil
}

// ImportResult sums up what an import run wrote.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// Import stores every translated entry of the store. Terms already in
// memory get their translation overwritten, the memory keeps the newest
// one. Open and fuzzy entries are skipped.
func (s *Service) Import(store *translation.Store, unit string) (ImportResult, error) {
	var res ImportResult
	var records []Record
	for _, e := range store.Entries() {
		if !e.HasTranslation() || e.Fuzzy {
			res.Skipped++
			continue
		}
		records = append(records, Record{
			Hash:        termHash(e.Context, e.Original, unit),
			Context:     e.Context,
			Original:    e.Original,
			Translation: e.Translation,
			Unit:        unit,
		})
	}
	if len(records) == 0 {
		return res, nil
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hash"}},
		DoUpdates: clause.AssignmentColumns([]string{"translation", "updated_at"}),
	}).CreateInBatches(records, 200).Error
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to import into memory: %w", err)
	}

	res.Imported = len(records)
	s.logger.Info("Memory import finished",
		zap.String("unit", unit),
		zap.Int("imported", res.Imported),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

// Export rebuilds a store from the memory, optionally limited to one
// source unit. When a term was remembered from several units the newest
// translation wins.
func (s *Service) Export(unit string) (*translation.Store, error) {
	q := s.db.Order("context, original, updated_at DESC")
	if unit != "" {
		q = q.Where("unit = ?", unit)
	}

	var records []Record
	if err := q.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to export memory: %w", err)
	}

	store := translation.NewStore()
	store.SetHeader(translation.DefaultHeader)
	for _, r := range records {
		store.Add(translation.Entry{
			Context:     r.Context,
			Original:    r.Original,
			Translation: r.Translation,
		})
	}
	return store, nil
}

// FillResult sums up what a fill run changed.
type FillResult struct {
	Exact int `json:"exact"`
	Fuzzy int `json:"fuzzy"`
}

// Fill translates open entries of the store from memory, in place.
// Exact matches pair context and original. With fuzzy enabled, entries
// still open fall back to a context-free lookup on the original text
// alone and get flagged for review.
func (s *Service) Fill(store *translation.Store, fuzzy bool) (FillResult, error) {
	var records []Record
	if err := s.db.Order("updated_at").Find(&records).Error; err != nil {
		return FillResult{}, fmt.Errorf("failed to load memory: %w", err)
	}

	// Newer records overwrite older ones in both lookup maps.
	exact := make(map[translation.Key]string, len(records))
	byOriginal := make(map[string]string)
	for _, r := range records {
		exact[translation.Key{Context: r.Context, Original: r.Original}] = r.Translation
		byOriginal[r.Original] = r.Translation
	}

	var res FillResult
	for _, e := range store.Entries() {
		if e.HasTranslation() {
			continue
		}
		if tr, ok := exact[e.Key()]; ok {
			e.Translation = tr
			e.Fuzzy = false
			res.Exact++
			continue
		}
		if !fuzzy {
			continue
		}
		if tr, ok := byOriginal[e.Original]; ok {
			e.Translation = tr
			e.Fuzzy = true
			res.Fuzzy++
		}
	}
	return res, nil
}

// Stats describes the size of the memory.
type Stats struct {
	Records int64 `json:"records"`
	Units   int64 `json:"units"`
}

// Status counts the stored records and distinct source units.
func (s *Service) Status() (Stats, error) {
	var st Stats
	if err := s.db.Model(&Record{}).Count(&st.Records).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to count memory: %w", err)
	}
	if err := s.db.Model(&Record{}).Distinct("unit").Count(&st.Units).Error; err != nil {
		return Stats{}, fmt.Errorf("failed to count units: %w", err)
	}
	return st, nil
}

// termHash builds the upsert identity of a record. Hashing keeps the
// unique index small, the term texts can be arbitrarily long.
func termHash(context, original, unit string) string {
	h := sha256.New()
	h.Write([]byte(context))
	h.Write([]byte{0})
	h.Write([]byte(original))
	h.Write([]byte{0})
	h.Write([]byte(unit))
	return hex.EncodeToString(h.Sum(nil))
}
