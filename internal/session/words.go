package session

import (
	"context"
	"fmt"

	"github.com/example/wordsrs/internal/database"
	srs "github.com/example/wordsrs/internal/spaced_repetition"
	"github.com/example/wordsrs/pkg/models"
)

// ListWords returns the user's words, newest first. An empty status lists
// every word.
func (s *Service) ListWords(ctx context.Context, userID string, status srs.LearningStatus) ([]models.Word, error) {
	words, err := s.words.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return words, nil
	}

	matched := make([]models.Word, 0, len(words))
	for _, w := range words {
		if w.LearningStatus == status {
			matched = append(matched, w)
		}
	}
	return matched, nil
}

// SearchWords finds the user's words whose text or meaning contains q.
func (s *Service) SearchWords(ctx context.Context, userID, q string, limit int) ([]models.Word, error) {
	words, err := s.words.Search(ctx, userID, q, limit)
	if err != nil {
		return nil, err
	}
	if words == nil {
		words = []models.Word{}
	}
	return words, nil
}

// History returns the reviews of one of the user's words, most recent first.
func (s *Service) History(ctx context.Context, userID string, wordID int64) ([]models.ReviewLog, error) {
	if _, err := s.ownedWord(ctx, userID, wordID); err != nil {
		return nil, err
	}
	logs, err := s.reviews.ListByWord(ctx, wordID)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []models.ReviewLog{}
	}
	return logs, nil
}

// DeleteWord removes one of the user's words together with its history.
func (s *Service) DeleteWord(ctx context.Context, userID string, wordID int64) error {
	unlock := s.locks.Lock(wordID)
	defer unlock()

	if _, err := s.ownedWord(ctx, userID, wordID); err != nil {
		return err
	}
	if err := s.words.Delete(ctx, wordID); err != nil {
		return err
	}
	s.log.Info("deleted word", "user_id", userID, "word_id", wordID)
	return nil
}

func (s *Service) ownedWord(ctx context.Context, userID string, wordID int64) (*models.Word, error) {
	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		return nil, err
	}
	if word.UserID != userID {
		return nil, fmt.Errorf("word %d of user %s: %w", wordID, userID, database.ErrNotFound)
	}
	return word, nil
}
