// Package status computes translation progress for a directory of units.
//
// It parses every unit file in the output directory, aggregates counts of
// translated, fuzzy and stale terms, and serves the result over HTTP and
// to the stats command.
//
// # Caching
//
// Directory scans are cached for the configured TTL and rebuilt behind a
// singleflight group, so concurrent requests share one scan. A TTL of zero
// disables caching and every request scans fresh.
//
// # Companion Units
//
// Files ending in .stale.po and .unmatched.po are not units of their own.
// Their term counts are attributed to the unit they accompany.
package status
