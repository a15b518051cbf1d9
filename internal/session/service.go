// Package session runs study sessions on top of the scheduler: it picks the
// words to study today, records answers and keeps the user's progress.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jmoiron/sqlx"

	"github.com/example/wordsrs/internal/database"
	srs "github.com/example/wordsrs/internal/spaced_repetition"
	"github.com/example/wordsrs/pkg/models"
)

// XPPerQualityPoint is the experience awarded per quality point of a review.
const XPPerQualityPoint = 10

var (
	// ErrWordExists is returned when adding a word the user already has.
	ErrWordExists = errors.New("word already exists")
	// ErrEmptyWord is returned when a word has no text.
	ErrEmptyWord = errors.New("word must not be empty")
)

// Options configures a Service.
type Options struct {
	// Clock drives scheduling; defaults to the system clock in Location.
	Clock srs.Clock
	// Location decides where a calendar day starts. Defaults to time.Local.
	Location *time.Location
	// DefaultDailyGoal is assigned to users created by EnsureUser.
	DefaultDailyGoal int
	// Mastery enables the mastered label; nil leaves it off.
	Mastery *srs.MasteryRule
	Logger  *log.Logger
}

// stores groups the repositories over one database handle.
type stores struct {
	words   *database.WordRepository
	users   *database.UserRepository
	configs *database.UserConfigRepository
	reviews *database.ReviewLogRepository
	stats   *database.StatisticsRepository
}

func newStores(q sqlx.ExtContext, logger *log.Logger) stores {
	return stores{
		words:   database.NewWordRepository(q, logger),
		users:   database.NewUserRepository(q),
		configs: database.NewUserConfigRepository(q),
		reviews: database.NewReviewLogRepository(q),
		stats:   database.NewStatisticsRepository(q),
	}
}

// Service is the learning session orchestrator.
type Service struct {
	stores
	db *database.DB

	sm          *srs.SM2
	loc         *time.Location
	defaultGoal int
	log         *log.Logger
	locks       keyedMutex
}

// New creates a Service backed by db.
func New(db *database.DB, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Clock == nil {
		opts.Clock = srs.SystemClock{Location: opts.Location}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	sm := srs.NewSM2(opts.Clock)
	sm.Mastery = opts.Mastery

	return &Service{
		stores:      newStores(db, opts.Logger),
		db:          db,
		sm:          sm,
		loc:         opts.Location,
		defaultGoal: opts.DefaultDailyGoal,
		log:         opts.Logger,
	}
}

// Session is the study set for one day.
type Session struct {
	Date      string `json:"date"`
	DailyGoal int    `json:"daily_goal"`
	// ReviewedToday counts the reviews already done today.
	ReviewedToday int           `json:"reviewed_today"`
	Due           []models.Word `json:"due"`
	New           []models.Word `json:"new"`
	// Items is Due followed by New. A word can appear in both pools.
	Items []models.Word `json:"items"`
}

// Answer is a quiz answer for one word.
type Answer struct {
	IsCorrect    bool
	ResponseTime time.Duration
}

// Result describes the effect of one review.
type Result struct {
	Word     models.Word `json:"word"`
	Quality  srs.Quality `json:"quality"`
	XPEarned int         `json:"xp_earned"`
	XP       int         `json:"xp"`
	Level    int         `json:"level"`
	Streak   int         `json:"streak"`
}

// WordInput is the content of a word as entered by a user.
type WordInput struct {
	Word       string
	Meaning    string
	Example    string
	Difficulty string
}

func (s *Service) now() time.Time {
	return s.sm.Now().In(s.loc)
}

func (s *Service) today() string {
	return s.now().Format(database.DateLayout)
}

// EnsureUser returns the user, creating it with the default daily goal if needed.
func (s *Service) EnsureUser(ctx context.Context, userID, displayName string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	user = &models.User{
		ID:          userID,
		DisplayName: displayName,
		DailyGoal:   s.defaultGoal,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.log.Info("created user", "user_id", userID)
	return user, nil
}

// SetDailyGoal changes how many new words the user studies per day.
func (s *Service) SetDailyGoal(ctx context.Context, userID string, goal int) error {
	return s.users.UpdateDailyGoal(ctx, userID, goal)
}

// SetMaxDailyReviews caps the due pool of a session. Zero removes the cap.
func (s *Service) SetMaxDailyReviews(ctx context.Context, userID string, limit int) error {
	cfg, err := s.configs.Get(ctx, userID)
	if err != nil {
		return err
	}
	cfg.MaxDailyReviews = limit
	return s.configs.Save(ctx, cfg)
}

// SetActive pauses or resumes a user. Paused users are skipped by RepairAll.
func (s *Service) SetActive(ctx context.Context, userID string, active bool) error {
	cfg, err := s.configs.Get(ctx, userID)
	if err != nil {
		return err
	}
	cfg.IsActive = active
	return s.configs.Save(ctx, cfg)
}

// Settings returns the session settings of a user.
func (s *Service) Settings(ctx context.Context, userID string) (*models.UserConfig, error) {
	return s.configs.Get(ctx, userID)
}

// AddWord stores a new word in its initial schedule.
func (s *Service) AddWord(ctx context.Context, userID string, in WordInput) (*models.Word, error) {
	text, difficulty, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}

	_, err = s.words.FindByText(ctx, userID, text)
	if err == nil {
		return nil, fmt.Errorf("%q: %w", text, ErrWordExists)
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}
	return s.createWord(ctx, userID, text, difficulty, in)
}

// UpsertWord adds the word, or updates the content of an existing word with
// the same text. An existing word keeps its schedule. It reports whether a
// word was created.
func (s *Service) UpsertWord(ctx context.Context, userID string, in WordInput) (*models.Word, bool, error) {
	text, difficulty, err := normalizeInput(in)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.words.FindByText(ctx, userID, text)
	if errors.Is(err, database.ErrNotFound) {
		word, err := s.createWord(ctx, userID, text, difficulty, in)
		return word, err == nil, err
	}
	if err != nil {
		return nil, false, err
	}

	if in.Meaning == existing.Meaning && in.Example == existing.Example && difficulty == existing.Difficulty {
		return existing, false, nil
	}
	existing.Meaning = in.Meaning
	existing.Example = in.Example
	existing.Difficulty = difficulty
	if err := s.words.UpdateContent(ctx, existing); err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func normalizeInput(in WordInput) (string, srs.Difficulty, error) {
	text := strings.TrimSpace(in.Word)
	if text == "" {
		return "", "", ErrEmptyWord
	}
	difficulty, err := srs.ParseDifficulty(strings.ToLower(strings.TrimSpace(in.Difficulty)))
	if err != nil {
		return "", "", err
	}
	return text, difficulty, nil
}

func (s *Service) createWord(ctx context.Context, userID, text string, difficulty srs.Difficulty, in WordInput) (*models.Word, error) {
	word := &models.Word{
		UserID:     userID,
		Word:       text,
		Meaning:    in.Meaning,
		Example:    in.Example,
		Difficulty: difficulty,
		CreatedAt:  s.now().UTC(),
		Item:       s.sm.InitialState(),
	}
	if err := s.words.Create(ctx, word); err != nil {
		return nil, err
	}
	return word, nil
}

// Today assembles the user's study session. When the user caps daily reviews,
// the due pool is ordered by priority and cut to what is left of the cap
// after today's reviews.
func (s *Service) Today(ctx context.Context, userID string) (*Session, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	cfg, err := s.configs.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	words, err := s.words.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	reviewed, err := s.reviews.CountByUserSince(ctx, userID, srs.Midnight(now))
	if err != nil {
		return nil, err
	}
	session := &Session{
		Date:          now.Format(database.DateLayout),
		DailyGoal:     user.DailyGoal,
		ReviewedToday: reviewed,
		Due:           srs.DueItems(words, now),
		New:           srs.NewItems(words, user.DailyGoal),
	}

	limit := max(cfg.MaxDailyReviews-reviewed, 0)
	if cfg.MaxDailyReviews > 0 && len(session.Due) > limit {
		session.Due = srs.PrioritizeDue(session.Due, s.loc)[:limit]
		session.Items = append(append([]models.Word{}, session.Due...), session.New...)
	} else {
		session.Items = srs.SessionItems(words, now, user.DailyGoal)
	}

	s.log.Debug("assembled session", "user_id", userID, "due", len(session.Due), "new", len(session.New))
	return session, nil
}

// SubmitAnswer records a quiz answer. Quality is derived from correctness,
// response time and the word's difficulty.
func (s *Service) SubmitAnswer(ctx context.Context, userID string, wordID int64, a Answer) (*Result, error) {
	return s.submit(ctx, userID, wordID, func(w *models.Word) (srs.Quality, bool) {
		return srs.CalculateQuality(a.IsCorrect, a.ResponseTime, w.Difficulty), a.IsCorrect
	}, a.ResponseTime)
}

// SubmitRating records a self-assessed review on a 1 to 5 scale.
// Ratings outside the scale are clamped.
func (s *Service) SubmitRating(ctx context.Context, userID string, wordID int64, level int) (*Result, error) {
	return s.submit(ctx, userID, wordID, func(*models.Word) (srs.Quality, bool) {
		q := srs.QualityFromRating(level)
		return q, q >= s.sm.PassThreshold
	}, 0)
}

// submit records one review. The schedule update, the review log, the daily
// stats and the user's progress are written in one transaction.
func (s *Service) submit(ctx context.Context, userID string, wordID int64, grade func(*models.Word) (srs.Quality, bool), responseTime time.Duration) (*Result, error) {
	unlock := s.locks.Lock(wordID)
	defer unlock()

	var result *Result
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		result, err = s.record(ctx, newStores(tx, s.log), userID, wordID, grade, responseTime)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("recorded review",
		"user_id", userID, "word_id", wordID, "quality", int(result.Quality),
		"interval", result.Word.Interval, "next", result.Word.NextReviewDate)
	return result, nil
}

func (s *Service) record(ctx context.Context, st stores, userID string, wordID int64, grade func(*models.Word) (srs.Quality, bool), responseTime time.Duration) (*Result, error) {
	word, err := st.words.GetByID(ctx, wordID)
	if err != nil {
		return nil, err
	}
	if word.UserID != userID {
		return nil, fmt.Errorf("word %d of user %s: %w", wordID, userID, database.ErrNotFound)
	}

	quality, correct := grade(word)
	update := s.sm.Process(word.Item, quality)

	version, err := st.words.UpdateSchedule(ctx, word.ID, word.Version, update)
	if err != nil {
		return nil, err
	}
	learned := word.LearningStatus == srs.StatusNew && update.LearningStatus == srs.StatusLearning

	word.Item = update.Apply(word.Item)
	word.Version = version
	word.ReviewCount++
	reviewedAt := update.LastReviewedAt
	word.LastReviewedAt = &reviewedAt

	err = st.reviews.Create(ctx, &models.ReviewLog{
		UserID:         userID,
		WordID:         word.ID,
		Quality:        int(quality),
		IsCorrect:      correct,
		ResponseTimeMs: responseTime.Milliseconds(),
		Interval:       update.Interval,
		EaseFactor:     update.EaseFactor,
		ReviewedAt:     reviewedAt,
	})
	if err != nil {
		return nil, err
	}

	xp := int(quality) * XPPerQualityPoint
	delta := models.DailyStats{
		UserID:         userID,
		Date:           s.today(),
		WordsReviewed:  1,
		TotalQuestions: 1,
		XPEarned:       xp,
	}
	if correct {
		delta.CorrectAnswers = 1
	}
	if learned {
		delta.WordsLearned = 1
	}
	if err := st.stats.AddDaily(ctx, delta); err != nil {
		return nil, err
	}

	user, err := st.users.AddXP(ctx, userID, xp)
	if err != nil {
		return nil, err
	}
	streak, err := st.users.RecordStudyDay(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}

	return &Result{
		Word:     *word,
		Quality:  quality,
		XPEarned: xp,
		XP:       user.XP,
		Level:    user.Level,
		Streak:   streak,
	}, nil
}

// Repair rewrites the legacy rows of one user in a single transaction.
// See database.WordRepository.Repair.
func (s *Service) Repair(ctx context.Context, userID string) (int, error) {
	var n int
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		n, err = newStores(tx, s.log).words.Repair(ctx, userID, s.now())
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("repair for user %s: %w", userID, err)
	}
	if n > 0 {
		s.log.Info("repaired words", "user_id", userID, "count", n)
	}
	return n, nil
}

// RepairAll repairs every active user. A failing user is logged and skipped;
// the first such error is returned after all users were tried.
func (s *Service) RepairAll(ctx context.Context) (int, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	var firstErr error
	total := 0
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		cfg, err := s.configs.Get(ctx, user.ID)
		if err != nil {
			return total, err
		}
		if !cfg.IsActive {
			continue
		}

		n, err := s.Repair(ctx, user.ID)
		if err != nil {
			s.log.Error("repair failed", "user_id", user.ID, "err", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		total += n
	}
	return total, firstErr
}
