package encoding

import "unicode/utf8"

// Detect guesses the codepage of sampled game strings. The heuristic
// prefers UTF-8 when the bytes already validate with multibyte runes,
// then Shift JIS when every sample parses as it with at least one
// double-byte character, then separates Cyrillic from western single
// byte pages by the density of high bytes. Whole words of high bytes
// mean a non-Latin alphabet, sprinkled ones mean accents. Empty means
// there was nothing to judge.
func Detect(samples [][]byte) string {
	total := 0
	highBytes := 0
	validUTF8 := true
	multibyte := false
	for _, s := range samples {
		total += len(s)
		if !utf8.Valid(s) {
			validUTF8 = false
		} else if utf8.RuneCount(s) < len(s) {
			multibyte = true
		}
		for _, b := range s {
			if b >= 0x80 {
				highBytes++
			}
		}
	}
	if total == 0 {
		return ""
	}
	if validUTF8 && multibyte {
		return "utf-8"
	}
	// plain ASCII decodes the same under every single byte page
	if highBytes == 0 {
		return "1252"
	}

	pairs, strays := 0, 0
	for _, s := range samples {
		p, st := countShiftJIS(s)
		pairs += p
		strays += st
	}
	if strays == 0 && pairs > 0 {
		return "932"
	}
	if highBytes*2 >= total {
		return "1251"
	}
	return "1252"
}

// countShiftJIS walks one sample as Shift JIS, counting double-byte
// pairs and bytes that break the encoding.
func countShiftJIS(s []byte) (pairs, strays int) {
	for i := 0; i < len(s); {
		b := s[i]
		switch {
		case b < 0x80:
			i++
		case b >= 0xA1 && b <= 0xDF:
			// half-width katakana
			i++
		case (b >= 0x81 && b <= 0x9F) || (b >= 0xE0 && b <= 0xEF):
			if i+1 < len(s) && sjisTrail(s[i+1]) {
				pairs++
				i += 2
			} else {
				strays++
				i++
			}
		default:
			strays++
			i++
		}
	}
	return pairs, strays
}

func sjisTrail(b byte) bool {
	return (b >= 0x40 && b <= 0x7E) || (b >= 0x80 && b <= 0xFC)
}
