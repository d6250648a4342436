// Package rpg decodes the RPG Maker 2000/2003 data files into typed
// trees, reduced to the parts that carry user-visible text.
//
// Three file kinds exist: the database (RPG_RT.ldb) with the named game
// objects, vocabulary and common events, the map tree (RPG_RT.lmt) with
// the map names, and one map unit (MapXXXX.lmu) per map with the placed
// events.
//
// All strings stay raw []byte in the game's legacy codepage. The files
// do not declare their encoding, so decoding to UTF-8 is deferred to
// extraction time where the resolved codepage is known. DetectEncoding
// helps resolving it by sampling the database text.
//
// Unknown tags are skipped, a database written by a newer editor build
// still decodes. The 2003 generation is recognized by the sections only
// that editor writes.
package rpg
