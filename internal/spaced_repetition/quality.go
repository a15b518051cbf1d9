package spaced_repetition

import "time"

// Quality is the recall score of a single review event.
// Scores of 3 and above count as a successful recall. Automatic scoring of a
// fast answer on a hard word yields 6.
type Quality int

const (
	// Complete blackout, unable to recall
	QualityBlackout Quality = 0
	// Incorrect response but remembered upon seeing the correct answer
	QualityIncorrect Quality = 1
	// Incorrect response but the correct answer felt familiar
	QualityIncorrectFamiliar Quality = 2
	// Correct response but required significant effort
	QualityCorrectDifficult Quality = 3
	// Correct response after some hesitation
	QualityCorrectHesitation Quality = 4
	// Perfect response with no hesitation
	QualityPerfect Quality = 5
)

const (
	slowAnswer   = 10 * time.Second
	mediumAnswer = 5 * time.Second
)

// CalculateQuality derives a recall score from an answer.
// Wrong answers score 0 no matter how fast they were.
func CalculateQuality(isCorrect bool, responseTime time.Duration, difficulty Difficulty) Quality {
	if !isCorrect {
		return QualityBlackout
	}

	var base Quality
	switch {
	case responseTime > slowAnswer:
		base = QualityCorrectDifficult
	case responseTime > mediumAnswer:
		base = QualityCorrectHesitation
	default:
		base = QualityPerfect
	}

	if difficulty == DifficultyHard {
		base++
	}
	return base
}

// QualityFromRating maps a 1-5 self rating onto a quality score.
// Out-of-range ratings are clamped.
func QualityFromRating(level int) Quality {
	if level < 1 {
		level = 1
	}
	if level > 5 {
		level = 5
	}
	return Quality(level)
}
