package database

import (
	"math"
	"time"

	srs "github.com/example/wordsrs/internal/spaced_repetition"
)

// Rows written by older clients can lack scheduling fields or hold values
// outside the scheduler's bounds. Everything read from storage passes through
// sanitizeItem so the scheduler only ever sees well-formed items.
var bounds = srs.NewSM2(nil)

// sanitizeItem fills in missing scheduling fields and clamps out-of-range
// values. Review dates are left untouched: due selection treats a missing or
// corrupt date as due, which repairDate preserves.
func sanitizeItem(it *srs.Item) bool {
	changed := false

	if it.Interval < 1 {
		it.Interval = bounds.InitialInterval
		changed = true
	} else if it.Interval > bounds.MaxInterval {
		it.Interval = bounds.MaxInterval
		changed = true
	}

	switch {
	case it.EaseFactor == 0 || math.IsNaN(it.EaseFactor):
		it.EaseFactor = bounds.InitialEaseFactor
		changed = true
	case it.EaseFactor < bounds.MinEaseFactor:
		it.EaseFactor = bounds.MinEaseFactor
		changed = true
	case it.EaseFactor > bounds.MaxEaseFactor:
		it.EaseFactor = bounds.MaxEaseFactor
		changed = true
	}

	if it.Repetitions < 0 {
		it.Repetitions = 0
		changed = true
	}

	if !it.LearningStatus.IsValid() {
		it.LearningStatus = srs.StatusNew
		changed = true
	}
	return changed
}

// repairDate rewrites the review date in canonical form. A missing or
// unparseable date becomes today, so the word stays due.
func repairDate(it *srs.Item, today time.Time) bool {
	parsed, ok := srs.ParseReviewDate(it.NextReviewDate, today.Location())
	if !ok {
		parsed = srs.Midnight(today)
	}
	canonical := srs.FormatReviewDate(parsed)
	if canonical == it.NextReviewDate {
		return false
	}
	it.NextReviewDate = canonical
	return true
}
