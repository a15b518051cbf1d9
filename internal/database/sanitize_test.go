package database

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	srs "github.com/example/wordsrs/internal/spaced_repetition"
)

func TestSanitizeItem(t *testing.T) {
	tests := []struct {
		name    string
		in      srs.Item
		want    srs.Item
		changed bool
	}{
		{
			name:    "well formed",
			in:      srs.Item{Interval: 6, EaseFactor: 2.2, Repetitions: 2, LearningStatus: srs.StatusLearning, NextReviewDate: "x"},
			want:    srs.Item{Interval: 6, EaseFactor: 2.2, Repetitions: 2, LearningStatus: srs.StatusLearning, NextReviewDate: "x"},
			changed: false,
		},
		{
			name:    "zero values",
			in:      srs.Item{},
			want:    srs.Item{Interval: 1, EaseFactor: 2.5, LearningStatus: srs.StatusNew},
			changed: true,
		},
		{
			name:    "out of range",
			in:      srs.Item{Interval: 900, EaseFactor: 1.1, Repetitions: -1, LearningStatus: "archived"},
			want:    srs.Item{Interval: 365, EaseFactor: 1.3, LearningStatus: srs.StatusNew},
			changed: true,
		},
		{
			name:    "nan ease",
			in:      srs.Item{Interval: 3, EaseFactor: math.NaN(), Repetitions: 1, LearningStatus: srs.StatusReviewing},
			want:    srs.Item{Interval: 3, EaseFactor: 2.5, Repetitions: 1, LearningStatus: srs.StatusReviewing},
			changed: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := tt.in
			assert.Equal(t, tt.changed, sanitizeItem(&it))
			assert.Equal(t, tt.want, it)
		})
	}
}

func TestRepairDate(t *testing.T) {
	jst := time.FixedZone("JST", 9*3600)
	today := time.Date(2025, 6, 15, 7, 0, 0, 0, jst)

	it := srs.Item{NextReviewDate: ""}
	assert.True(t, repairDate(&it, today))
	assert.Equal(t, "2025-06-15T00:00:00+09:00", it.NextReviewDate)

	it = srs.Item{NextReviewDate: "31/12/2025"}
	assert.True(t, repairDate(&it, today))
	assert.Equal(t, "2025-06-15T00:00:00+09:00", it.NextReviewDate)

	it = srs.Item{NextReviewDate: "2025-06-20"}
	assert.True(t, repairDate(&it, today))
	assert.Equal(t, "2025-06-20T00:00:00+09:00", it.NextReviewDate)

	it = srs.Item{NextReviewDate: "2025-06-20T08:00:00Z"}
	assert.False(t, repairDate(&it, today))
}
