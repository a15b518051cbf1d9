package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateQuality(t *testing.T) {
	tests := []struct {
		name       string
		correct    bool
		response   time.Duration
		difficulty Difficulty
		want       Quality
	}{
		{"wrong answer", false, time.Second, DifficultyEasy, 0},
		{"wrong hard answer", false, time.Second, DifficultyHard, 0},
		{"fast easy", true, time.Second, DifficultyEasy, 5},
		{"medium pace easy", true, 8 * time.Second, DifficultyEasy, 4},
		{"fast hard", true, time.Second, DifficultyHard, 6},
		{"slow medium", true, 12 * time.Second, DifficultyMedium, 3},
		{"slow hard", true, 12 * time.Second, DifficultyHard, 4},
		{"instant", true, 0, DifficultyMedium, 5},
		{"exactly 5s", true, 5000 * time.Millisecond, DifficultyEasy, 5},
		{"just over 5s", true, 5001 * time.Millisecond, DifficultyEasy, 4},
		{"exactly 10s", true, 10000 * time.Millisecond, DifficultyEasy, 4},
		{"just over 10s", true, 10001 * time.Millisecond, DifficultyEasy, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateQuality(tt.correct, tt.response, tt.difficulty)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQualityFromRating(t *testing.T) {
	assert.Equal(t, Quality(1), QualityFromRating(-3))
	assert.Equal(t, Quality(1), QualityFromRating(0))
	assert.Equal(t, Quality(3), QualityFromRating(3))
	assert.Equal(t, Quality(5), QualityFromRating(5))
	assert.Equal(t, Quality(5), QualityFromRating(9))
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("")
	assert.NoError(t, err)
	assert.Equal(t, DifficultyMedium, d)

	d, err = ParseDifficulty("hard")
	assert.NoError(t, err)
	assert.Equal(t, DifficultyHard, d)

	_, err = ParseDifficulty("brutal")
	assert.Error(t, err)
}

func TestParseLearningStatus(t *testing.T) {
	for _, s := range []LearningStatus{StatusNew, StatusLearning, StatusReviewing, StatusMastered} {
		got, err := ParseLearningStatus(s.String())
		assert.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseLearningStatus("forgotten")
	assert.Error(t, err)
}
