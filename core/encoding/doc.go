// Package encoding resolves the legacy codepage of a game and converts
// its raw strings to UTF-8.
//
// The game files never declare their encoding. The usual sources, in
// order of trust, are an explicit setting, the Encoding key an EasyRPG
// port left in RPG_RT.ini, and finally the Detect heuristic over the
// database text. Codepages are accepted as Windows numbers ("932",
// "1251") or as IANA names ("Shift_JIS", "windows-1251").
//
// Conversion is best effort: bytes that do not decode become the
// replacement rune, a broken name is the only fatal condition and is
// reported as ErrUnsupported.
package encoding
