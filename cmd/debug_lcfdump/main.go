package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"lcftrans/core/lcf"
)

// Well-known top-level sections of LcfDataBase containers. Map files
// and unknown tags just print their number.
var sectionNames = map[int]string{
	0x0B: "actors",
	0x0C: "skills",
	0x0D: "items",
	0x0E: "enemies",
	0x0F: "troops",
	0x10: "terrain",
	0x11: "attributes",
	0x12: "states",
	0x13: "animations",
	0x14: "tilesets",
	0x15: "terms",
	0x16: "system",
	0x17: "switches",
	0x18: "variables",
	0x19: "common events",
	0x1D: "battle commands",
	0x1E: "classes",
	0x20: "battler animations",
}

func main() {
	if len(os.Args) != 2 {
		fmt.Println("usage: debug_lcfdump FILE")
		os.Exit(2)
	}
	path := os.Args[1]

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}

	r := lcf.NewReader(data)
	sig, err := r.ReadSignature()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("File:      %s (%d bytes)\n", path, len(data))
	fmt.Printf("Signature: %s\n\n", sig)

	if sig == lcf.SigMapTree {
		// The tree has no top-level chunks, the node list follows the
		// signature directly
		dumpTree(r)
		return
	}
	if sig != lcf.SigDatabase && sig != lcf.SigMapUnit {
		fmt.Println("⚠️  Unknown signature, dumping as a flat chunk stream anyway")
	}
	dumpChunks(r, sig == lcf.SigDatabase)
}

func dumpChunks(r *lcf.Reader, named bool) {
	count := 0
	for {
		offset := r.Offset()
		c, ok, err := r.ReadChunk()
		if err != nil {
			log.Fatal(err)
		}
		if !ok {
			break
		}
		count++

		name := ""
		if named {
			if n, known := sectionNames[c.ID]; known {
				name = "  " + n
			}
		}
		fmt.Printf("0x%06X  chunk 0x%02X  %8d bytes%s\n", offset, c.ID, len(c.Data), name)
		if p := preview(c.Data); strings.Trim(p, ".") != "" {
			fmt.Printf("          | %s\n", p)
		}
	}
	fmt.Printf("\nTotal chunks: %d, trailing bytes: %d\n", count, r.Remaining())
}

func dumpTree(r *lcf.Reader) {
	count, err := r.ReadInt()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Nodes: %d\n", count)

	for i := 0; i < count; i++ {
		id, err := r.ReadInt()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("node %4d\n", id)
		for {
			c, ok, err := r.ReadChunk()
			if err != nil {
				log.Fatal(err)
			}
			if !ok {
				break
			}
			fmt.Printf("  chunk 0x%02X  %6d bytes  | %s\n", c.ID, len(c.Data), preview(c.Data))
		}
	}
	fmt.Printf("\nTrailing bytes: %d\n", r.Remaining())
}

// preview renders the first payload bytes, dots for everything that is
// not printable ASCII. Legacy codepage text still shows its gist.
func preview(data []byte) string {
	const max = 40
	n := len(data)
	if n > max {
		n = max
	}
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		b := data[i]
		if b >= 0x20 && b < 0x7F {
			buf[i] = b
		} else {
			buf[i] = '.'
		}
	}
	s := string(buf)
	if len(data) > max {
		s += "..."
	}
	return s
}
