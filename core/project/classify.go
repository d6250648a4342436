package project

import "strings"

// FileKind classifies a game file by its name.
type FileKind int

const (
	KindUnknown FileKind = iota
	KindDatabase
	KindMapTree
	KindMap
)

func (k FileKind) String() string {
	switch k {
	case KindDatabase:
		return "database"
	case KindMapTree:
		return "maptree"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Canonical file names inside a game directory. Games are shipped from
// Windows, so matching is case-insensitive.
const (
	DatabaseFile = "RPG_RT.ldb"
	MapTreeFile  = "RPG_RT.lmt"
	INIFile      = "RPG_RT.ini"

	mapSuffix = ".lmu"
)

// Classify returns the kind of a game file name.
func Classify(name string) FileKind {
	lower := strings.ToLower(name)
	switch {
	case lower == strings.ToLower(DatabaseFile):
		return KindDatabase
	case lower == strings.ToLower(MapTreeFile):
		return KindMapTree
	case strings.HasSuffix(lower, mapSuffix):
		return KindMap
	default:
		return KindUnknown
	}
}
