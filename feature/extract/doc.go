// Package extract walks the decoded game trees and collects every
// user-visible string into translation stores.
//
// The database yields three stores: the vocabulary and named objects,
// the common event text and the battle event text. Map files yield one
// store each, the map tree one store of map names.
//
// Extraction owns the codepage conversion, entries always hold UTF-8.
// Message commands that continue over follow-up lines are joined into
// one multi-line entry so translators see the whole box at once. Blank
// strings never become entries. Every entry carries a location comment
// such as "Common Event 12 'Intro', Line 4" pointing back into the
// editor.
//
// A file that fails to decode is logged and yields empty stores, one
// broken asset must not stop the remaining units.
package extract
