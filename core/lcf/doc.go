// Package lcf implements the low-level container format shared by the
// RPG Maker 2000/2003 data files.
//
// A container starts with a length-prefixed signature naming its kind,
// followed by a stream of chunks. Every chunk is a number tag, a byte
// length and the payload. Numbers use a big-endian base-128 encoding
// where the high bit of each byte flags a continuation. Chunk lists
// nested inside a payload end with a bare zero tag.
//
// The reader is tolerant by design: unknown chunk tags are cheap to
// skip because the length always travels with the chunk, so files
// written by newer editors still parse. Interpretation of the tags
// belongs to the rpg package.
package lcf
