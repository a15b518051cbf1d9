package spaced_repetition

import (
	"sort"
	"time"
)

// DueItems returns the items due for review on today's date, in input order.
// An item is due when its date is missing, when the date cannot be parsed,
// or when the date falls on or before today. Corrupt dates never hide an item.
// The result is never nil.
func DueItems[T Scheduled](items []T, today time.Time) []T {
	day := Midnight(today)
	due := make([]T, 0)
	for _, it := range items {
		if isDue(it.Schedule(), day) {
			due = append(due, it)
		}
	}
	return due
}

func isDue(it Item, day time.Time) bool {
	next, ok := ParseReviewDate(it.NextReviewDate, day.Location())
	if !ok {
		return true
	}
	return !Midnight(next.In(day.Location())).After(day)
}

// NewItems returns up to dailyGoal items that are not mastered, in input order.
// Words already in the learning cycle qualify as well as brand new ones.
// The result is never nil.
func NewItems[T Scheduled](items []T, dailyGoal int) []T {
	if dailyGoal <= 0 {
		return []T{}
	}
	eligible := make([]T, 0, min(dailyGoal, len(items)))
	for _, it := range items {
		switch it.Schedule().LearningStatus {
		case StatusNew, StatusLearning, StatusReviewing:
			eligible = append(eligible, it)
		}
		if len(eligible) == dailyGoal {
			break
		}
	}
	return eligible
}

// SessionItems returns today's study set: the due pool followed by the new pool.
// An item that is both due and eligible as new appears in both pools.
func SessionItems[T Scheduled](items []T, today time.Time, dailyGoal int) []T {
	due := DueItems(items, today)
	fresh := NewItems(items, dailyGoal)
	session := make([]T, 0, len(due)+len(fresh))
	session = append(session, due...)
	return append(session, fresh...)
}

// PrioritizeDue orders due items for callers that show only part of the pool:
//  1. Words that have never been reviewed (repetitions = 0)
//  2. Words with the lowest ease factor (hardest words)
//  3. Words with the earliest review date
//
// Items whose date cannot be parsed sort after dated ones within the same tier.
// The input slice is not modified.
func PrioritizeDue[T Scheduled](items []T, loc *time.Location) []T {
	sorted := make([]T, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Schedule(), sorted[j].Schedule()

		if (a.Repetitions == 0) != (b.Repetitions == 0) {
			return a.Repetitions == 0
		}
		if a.EaseFactor != b.EaseFactor {
			return a.EaseFactor < b.EaseFactor
		}

		da, okA := ParseReviewDate(a.NextReviewDate, loc)
		db, okB := ParseReviewDate(b.NextReviewDate, loc)
		switch {
		case okA && okB:
			return da.Before(db)
		case okA:
			return true
		default:
			return false
		}
	})
	return sorted
}
