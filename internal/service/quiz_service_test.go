package service

import (
	"context"
	"testing"

	"gridiron_backend/internal/model"
	"gridiron_backend/internal/repository"
	"gridiron_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuiz_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  QuizRequest
	}{
		{"blank title", QuizRequest{Title: "  ", Position: "quarterback"}},
		{"unknown position", QuizRequest{Title: "Reads", Position: "water_boy"}},
		{"unknown difficulty", QuizRequest{Title: "Reads", Position: "quarterback", Difficulty: "insane"}},
		{"passing score too high", QuizRequest{Title: "Reads", Position: "quarterback", PassingScore: intPtr(101)}},
		{"negative time limit", QuizRequest{Title: "Reads", Position: "quarterback", TimeLimit: -5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.quizzes.CreateQuiz(ctx, 1, tt.req)
			assert.ErrorIs(t, err, util.ErrInvalidQuiz)
		})
	}
}

func TestCreateQuiz_Defaults(t *testing.T) {
	env := newTestEnv(t)
	quiz, err := env.quizzes.CreateQuiz(context.Background(), 9, QuizRequest{Title: "Blitz Pickup", Position: "running_back"})
	require.NoError(t, err)

	assert.Equal(t, model.DefaultPassingScore, quiz.PassingScore)
	assert.Equal(t, model.DifficultyBeginner, quiz.Difficulty)
	assert.True(t, quiz.IsActive)
	assert.Equal(t, uint(9), quiz.CreatedBy)
}

func TestCreateQuiz_ZeroPassingScoreIsKept(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz, err := env.quizzes.CreateQuiz(ctx, 1, QuizRequest{Title: "Warmup", Position: "kicker", PassingScore: intPtr(0)})
	require.NoError(t, err)

	got, err := env.quizzes.GetQuiz(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.PassingScore)
}

func TestListQuizzes_FiltersAndOrder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inactive := false

	mk := func(title, position, difficulty string, sort int, active *bool) {
		_, err := env.quizzes.CreateQuiz(ctx, 1, QuizRequest{
			Title: title, Position: position, Difficulty: difficulty, SortOrder: sort, IsActive: active,
		})
		require.NoError(t, err)
	}
	mk("QB 2", "quarterback", "advanced", 2, nil)
	mk("QB 1", "quarterback", "beginner", 1, nil)
	mk("QB hidden", "quarterback", "beginner", 0, &inactive)
	mk("LB 1", "linebacker", "beginner", 1, nil)

	quizzes, total, err := env.quizzes.ListQuizzes(ctx, repository.QuizFilter{Position: "quarterback", ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, quizzes, 2)
	assert.Equal(t, "QB 1", quizzes[0].Title)
	assert.Equal(t, "QB 2", quizzes[1].Title)

	quizzes, total, err = env.quizzes.ListQuizzes(ctx, repository.QuizFilter{Difficulty: "beginner"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, quizzes, 3)

	quizzes, total, err = env.quizzes.ListQuizzes(ctx, repository.QuizFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, quizzes, 1)
}

func TestAddQuestion_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz, _ := env.createQuiz(t, "safety", 70, 0)

	_, err := env.quizzes.AddQuestion(ctx, quiz.ID, QuestionRequest{
		Prompt:          "Which safety rotates down?",
		Options:         []model.QuestionOption{{ID: "a", Text: "Strong"}, {ID: "b", Text: "Free"}},
		CorrectOptionID: "c",
	})
	assert.ErrorIs(t, err, util.ErrInvalidQuestion)

	_, err = env.quizzes.AddQuestion(ctx, quiz.ID, QuestionRequest{
		Prompt:          "dup",
		Options:         []model.QuestionOption{{ID: "a"}, {ID: "a"}},
		CorrectOptionID: "a",
	})
	assert.ErrorIs(t, err, util.ErrInvalidQuestion)

	_, err = env.quizzes.AddQuestion(ctx, 31337, QuestionRequest{
		Prompt:          "orphan",
		Options:         []model.QuestionOption{{ID: "a"}, {ID: "b"}},
		CorrectOptionID: "a",
	})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestQuestions_OrderUpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz, questions := env.createQuiz(t, "cornerback", 70, 3)

	got, err := env.quizzes.GetQuiz(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, got.Questions, 3)
	assert.Equal(t, questions[0].ID, got.Questions[0].ID)
	assert.Equal(t, "a", got.Questions[0].CorrectOptionID)
	assert.Len(t, got.Questions[0].Options, 2)

	updated, err := env.quizzes.UpdateQuestion(ctx, quiz.ID, questions[0].ID, QuestionRequest{
		Prompt:          "Press or off?",
		Options:         []model.QuestionOption{{ID: "a", Text: "Press"}, {ID: "b", Text: "Off"}},
		CorrectOptionID: "b",
		SortOrder:       10,
	})
	require.NoError(t, err)
	assert.Equal(t, "b", updated.CorrectOptionID)

	list, err := env.quizzes.ListQuestions(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Equal(t, questions[0].ID, list[len(list)-1].ID)

	require.NoError(t, env.quizzes.DeleteQuestion(ctx, quiz.ID, questions[1].ID))
	assert.ErrorIs(t, env.quizzes.DeleteQuestion(ctx, quiz.ID, questions[1].ID), util.ErrQuestionNotFound)

	list, err = env.quizzes.ListQuestions(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeleteQuiz_Cascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz, questions := env.createQuiz(t, "quarterback", 70, 2)
	done := env.complete(t, 40, quiz.ID, answersWithCorrect(questions, 2))

	require.NoError(t, env.quizzes.DeleteQuiz(ctx, quiz.ID))

	_, err := env.quizzes.GetQuiz(ctx, quiz.ID)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
	_, err = env.iq.GetAttempt(ctx, done.ID)
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
	remaining, err := env.quizRepo.ListQuestions(ctx, quiz.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// 进度记录不随测验删除
	progress, err := env.iq.GetProgress(ctx, 40, "quarterback")
	require.NoError(t, err)
	assert.Len(t, progress, 1)

	assert.ErrorIs(t, env.quizzes.DeleteQuiz(ctx, quiz.ID), util.ErrQuizNotFound)
}

func TestUpdateQuiz(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	quiz, _ := env.createQuiz(t, "linebacker", 70, 0)

	updated, err := env.quizzes.UpdateQuiz(ctx, quiz.ID, QuizRequest{Title: "Run Fits 201", Position: "linebacker", Difficulty: "intermediate", PassingScore: intPtr(80)})
	require.NoError(t, err)
	assert.Equal(t, "Run Fits 201", updated.Title)
	assert.Equal(t, 80, updated.PassingScore)
	assert.True(t, updated.IsActive)

	_, err = env.quizzes.UpdateQuiz(ctx, 999, QuizRequest{Title: "x", Position: "linebacker"})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}
