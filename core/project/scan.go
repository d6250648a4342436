package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrGameDir wraps every failure to access a game, output or match
// directory. The command layer maps it to its own exit code.
var ErrGameDir = errors.New("cannot access directory")

// Layout is the classified content of a game directory. The fields hold
// the on-disk file names, empty when a file is absent.
type Layout struct {
	Dir      string
	Database string
	MapTree  string
	INI      string
	Maps     []string
}

// Scan reads a game directory and classifies its files. Map names come
// back sorted so every run processes them in the same order.
func Scan(dir string) (*Layout, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGameDir, err)
	}

	layout := &Layout{Dir: dir}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch Classify(name) {
		case KindDatabase:
			layout.Database = name
		case KindMapTree:
			layout.MapTree = name
		case KindMap:
			layout.Maps = append(layout.Maps, name)
		default:
			if strings.EqualFold(name, INIFile) {
				layout.INI = name
			}
		}
	}
	sort.Strings(layout.Maps)
	return layout, nil
}

// Path joins a file name of this layout with its directory.
func (l *Layout) Path(name string) string {
	return filepath.Join(l.Dir, name)
}
