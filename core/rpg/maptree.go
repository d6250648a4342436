package rpg

import (
	"fmt"
	"os"

	"lcftrans/core/lcf"
)

// MapTree is the decoded RPG_RT.lmt content, reduced to the node names.
type MapTree struct {
	Maps []MapInfo
}

// MapInfo is one node of the map tree. Node 0 is the tree root carrying
// the game title, not a real map.
type MapInfo struct {
	ID   int
	Name []byte
}

// ReadMapTree reads and decodes a map tree file.
func ReadMapTree(path string) (*MapTree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map tree: %w", err)
	}
	return DecodeMapTree(data)
}

// DecodeMapTree decodes map tree bytes. Unlike the other containers the
// node list follows the signature without an enclosing chunk.
func DecodeMapTree(data []byte) (*MapTree, error) {
	r := lcf.NewReader(data)
	sig, err := r.ReadSignature()
	if err != nil {
		return nil, err
	}
	if sig != lcf.SigMapTree {
		return nil, fmt.Errorf("unexpected signature %q, want %q", sig, lcf.SigMapTree)
	}

	tree := &MapTree{}
	err = readList(r, func(id int, record *lcf.Reader) error {
		info := MapInfo{ID: id}
		err := readFields(record, func(c lcf.Chunk) error {
			if c.ID == chunkName {
				info.Name = c.Data
			}
			return nil
		})
		tree.Maps = append(tree.Maps, info)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("nodes: %w", err)
	}
	// the node order, active node and party start data follow, nothing
	// user-visible in there
	return tree, nil
}
