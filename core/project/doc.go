// Package project drives the translation workflow over one game
// directory.
//
// Scan classifies the directory content into the database, the map tree
// and the map units. The Pipeline then runs one of three flows:
//
//   - Create extracts every unit and writes fresh files.
//   - Update re-extracts, merges the previously written files back in
//     and parks dropped terms in .stale.po companions.
//   - Match pairs the unit files against a second, already-localized
//     extraction and bootstraps translations from it.
//
// Text extraction itself is behind the Extractor interface so the
// pipeline stays independent of the game file decoding. Map units are
// independent of each other and fan out over a bounded worker group,
// the database units share one decoded tree and stay sequential.
//
// ErrGameDir wraps every directory access failure so the command layer
// can map it to its exit code.
package project
