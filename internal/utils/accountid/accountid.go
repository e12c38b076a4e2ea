// Package accountid composes candidate account numbers. The layout folds the
// creation year and month into the middle digits so support staff can roughly
// eyeball an account's age:
//
//	prefix*1e7 + YYMM*1e3 + suffix  (prefix 10..99, suffix 0..9999)
//
// Suffixes above 999 carry into the date digits, so the date is approximate,
// not a strict field. Candidates are not guaranteed unique; the repository
// re-draws until a database check passes, and the primary-key constraint is
// the final backstop.
package accountid

import (
	"math/rand/v2"
	"time"
)

// Compose builds an account number from its parts. prefix must be in [10, 99]
// and suffix in [0, 9999]; callers should use Random unless testing.
func Compose(t time.Time, prefix, suffix int64) int64 {
	base := int64(t.Year()%100)*100 + int64(t.Month())
	return prefix*1e7 + base*1e3 + suffix
}

// Random draws a fresh candidate id for the given creation time.
func Random(t time.Time) int64 {
	prefix := 10 + rand.Int64N(90)
	suffix := rand.Int64N(10000)
	return Compose(t, prefix, suffix)
}
