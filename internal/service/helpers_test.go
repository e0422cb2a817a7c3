package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"gridiron_backend/internal/model"
	"gridiron_backend/internal/repository"
	"gridiron_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db          *gorm.DB
	quizRepo    *repository.QuizRepository
	attemptRepo *repository.QuizAttemptRepository
	iq          *FootballIQService
	quizzes     *QuizService
	board       *fakeLeaderboard
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), nil)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	quizRepo := repository.NewQuizRepository(db)
	attemptRepo := repository.NewQuizAttemptRepository(db)
	progressRepo := repository.NewIQProgressRepository(db)
	board := &fakeLeaderboard{scores: map[string]map[uint]int{}}

	return &testEnv{
		db:          db,
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		iq:          NewFootballIQService(quizRepo, attemptRepo, progressRepo, board, db),
		quizzes:     NewQuizService(quizRepo, attemptRepo, db),
		board:       board,
	}
}

func intPtr(v int) *int { return &v }

// createQuiz 建一个带 n 道题的测验，每题正确选项为 "a"
func (e *testEnv) createQuiz(t *testing.T, position string, passingScore, n int) (*model.Quiz, []model.Question) {
	t.Helper()
	ctx := context.Background()
	quiz, err := e.quizzes.CreateQuiz(ctx, 1, QuizRequest{
		Title:        fmt.Sprintf("%s quiz", position),
		Position:     position,
		PassingScore: intPtr(passingScore),
	})
	require.NoError(t, err)

	questions := make([]model.Question, 0, n)
	for i := 0; i < n; i++ {
		q, err := e.quizzes.AddQuestion(ctx, quiz.ID, QuestionRequest{
			Prompt: fmt.Sprintf("question %d", i+1),
			Options: []model.QuestionOption{
				{ID: "a", Text: "right"},
				{ID: "b", Text: "wrong"},
			},
			CorrectOptionID: "a",
			SortOrder:       i,
		})
		require.NoError(t, err)
		questions = append(questions, *q)
	}
	return quiz, questions
}

// answersWithCorrect 前 correct 道选 a，其余选 b
func answersWithCorrect(questions []model.Question, correct int) []model.AttemptAnswer {
	answers := make([]model.AttemptAnswer, len(questions))
	for i, q := range questions {
		opt := "b"
		if i < correct {
			opt = "a"
		}
		answers[i] = model.AttemptAnswer{QuestionID: q.ID, SelectedOptionID: opt, TimeSpent: 5}
	}
	return answers
}

func (e *testEnv) complete(t *testing.T, athleteID, quizID uint, answers []model.AttemptAnswer) *model.QuizAttempt {
	t.Helper()
	ctx := context.Background()
	attempt, err := e.iq.StartAttempt(ctx, athleteID, quizID)
	require.NoError(t, err)
	done, err := e.iq.CompleteAttempt(ctx, attempt.ID, answers, 60)
	require.NoError(t, err)
	return done
}

// fixedClock 每次调用前进 step
type fixedClock struct {
	mu   sync.Mutex
	t    time.Time
	step time.Duration
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

type fakeLeaderboard struct {
	mu     sync.Mutex
	scores map[string]map[uint]int
	err    error
}

func (f *fakeLeaderboard) UpdateAverage(_ context.Context, position string, athleteID uint, avg int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.scores[position] == nil {
		f.scores[position] = map[uint]int{}
	}
	f.scores[position][athleteID] = avg
	return nil
}

func (f *fakeLeaderboard) TopByPosition(_ context.Context, position string, limit int64) ([]repository.LeaderboardEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []repository.LeaderboardEntry
	for id, avg := range f.scores[position] {
		out = append(out, repository.LeaderboardEntry{AthleteID: id, AverageScore: avg})
	}
	return out, nil
}
