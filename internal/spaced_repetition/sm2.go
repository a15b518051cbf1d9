package spaced_repetition

import (
	"math"
	"time"
)

// SM2 implements the SuperMemo-2 algorithm for spaced repetition.
// It holds configuration only; every method is a pure function of its
// arguments and the clock.
type SM2 struct {
	// Answers at or above this score count as a successful recall
	PassThreshold Quality
	// Bounds of the ease factor
	MinEaseFactor float64
	MaxEaseFactor float64
	// Ease factor of a freshly added word
	InitialEaseFactor float64
	// Interval of a freshly added or failed word, in days
	InitialInterval int
	// Maximum interval in days
	MaxInterval int
	// Mastery promotes well-known words to mastered. Nil disables it and
	// reviews only produce learning or reviewing.
	Mastery *MasteryRule

	clock Clock
}

// MasteryRule decides when a successful review marks a word as mastered.
type MasteryRule struct {
	// Repetition count reached by the review
	Repetitions int
	// Interval in days reached by the review
	Interval int
	// Lowest quality of the review itself
	MinQuality Quality
}

// DefaultMasteryRule returns the rule used when mastery tracking is enabled:
// five successful repetitions in a row, an interval of at least 30 days and
// a review answered with at most some hesitation.
func DefaultMasteryRule() *MasteryRule {
	return &MasteryRule{
		Repetitions: 5,
		Interval:    30,
		MinQuality:  QualityCorrectHesitation,
	}
}

func (m *MasteryRule) reached(r Review, quality Quality) bool {
	return r.Repetitions >= m.Repetitions && r.Interval >= m.Interval && quality >= m.MinQuality
}

// NewSM2 creates an SM2 with the default settings.
func NewSM2(clock Clock) *SM2 {
	if clock == nil {
		clock = SystemClock{}
	}
	return &SM2{
		PassThreshold:     QualityCorrectDifficult,
		MinEaseFactor:     1.3,
		MaxEaseFactor:     2.6,
		InitialEaseFactor: 2.5,
		InitialInterval:   1,
		MaxInterval:       365,
		clock:             clock,
	}
}

// Now returns the current time of the scheduler's clock.
func (sm *SM2) Now() time.Time {
	return sm.clock.Now()
}

// InitialState returns the scheduling fields of a word that has never been reviewed.
func (sm *SM2) InitialState() Item {
	return Item{
		Interval:       sm.InitialInterval,
		EaseFactor:     sm.InitialEaseFactor,
		Repetitions:    0,
		NextReviewDate: FormatReviewDate(safeDate(sm.clock.Now(), sm.InitialInterval)),
		LearningStatus: StatusNew,
	}
}

// ComputeNextReview applies one review with the given quality to the current
// schedule. The ease factor is updated on every review; a failed review
// resets the interval and the repetition count.
func (sm *SM2) ComputeNextReview(quality Quality, currentInterval int, currentEase float64, repetitions int) Review {
	q := float64(quality)
	newEase := currentEase + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	newEase = clampFloat(newEase, sm.MinEaseFactor, sm.MaxEaseFactor)

	var newInterval, newRepetitions int
	if quality < sm.PassThreshold {
		newInterval = sm.InitialInterval
		newRepetitions = 0
	} else {
		switch repetitions {
		case 0:
			newInterval = 1
		case 1:
			newInterval = 6
		default:
			newInterval = int(math.Round(float64(currentInterval) * newEase))
		}
		newRepetitions = repetitions + 1
	}
	newInterval = clampInt(newInterval, 1, sm.MaxInterval)

	return Review{
		Interval:       newInterval,
		EaseFactor:     newEase,
		Repetitions:    newRepetitions,
		NextReviewDate: safeDate(sm.clock.Now(), newInterval),
	}
}

// Process computes the storage update for one review of item.
func (sm *SM2) Process(item Item, quality Quality) Update {
	review := sm.ComputeNextReview(quality, item.Interval, item.EaseFactor, item.Repetitions)
	status := sm.StatusAfterReview(quality)
	if sm.Mastery != nil && status == StatusLearning && sm.Mastery.reached(review, quality) {
		status = StatusMastered
	}
	return Update{
		Interval:       review.Interval,
		EaseFactor:     review.EaseFactor,
		Repetitions:    review.Repetitions,
		NextReviewDate: FormatReviewDate(review.NextReviewDate),
		LearningStatus: status,
		LastReviewedAt: sm.clock.Now(),
	}
}

// StatusAfterReview labels a word after a review: learning on success,
// reviewing on failure.
func (sm *SM2) StatusAfterReview(quality Quality) LearningStatus {
	if quality >= sm.PassThreshold {
		return StatusLearning
	}
	return StatusReviewing
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
