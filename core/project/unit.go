package project

import (
	"path/filepath"
	"strings"

	"lcftrans/core/translation"
)

// Category tags what part of the game a unit covers.
type Category string

const (
	CategoryTerms   Category = "terms"
	CategoryCommon  Category = "common"
	CategoryBattle  Category = "battle"
	CategoryMap     Category = "map"
	CategoryMapTree Category = "maptree"
)

// Unit pairs one entry store with the file it is written to.
type Unit struct {
	Name     string
	Category Category
	Store    *translation.Store
}

// Fixed unit file names. The database splits into three units so the
// vocabulary, the common events and the battle events can go to
// different translators.
const (
	UnitTerms   = "RPG_RT.ldb.po"
	UnitCommon  = "RPG_RT.ldb.common.po"
	UnitBattle  = "RPG_RT.ldb.battle.po"
	UnitMapTree = "RPG_RT.lmt.po"
)

// MapUnitName returns the unit file name for a map file, Map0042.lmu
// becomes Map0042.po.
func MapUnitName(mapFile string) string {
	return strings.TrimSuffix(mapFile, filepath.Ext(mapFile)) + ".po"
}

// StaleUnitName returns the companion file that keeps translations
// whose terms vanished upstream.
func StaleUnitName(unitName string) string {
	return strings.TrimSuffix(unitName, ".po") + ".stale.po"
}

// UnmatchedUnitName returns the companion file for source terms a match
// run could not place.
func UnmatchedUnitName(unitName string) string {
	return strings.TrimSuffix(unitName, ".po") + ".unmatched.po"
}

// IsCompanionUnit reports whether the file name is a stale or unmatched
// companion rather than a live unit.
func IsCompanionUnit(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".stale.po") || strings.HasSuffix(lower, ".unmatched.po")
}
