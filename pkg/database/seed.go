package database

import (
	"gridiron_backend/internal/model"

	"gorm.io/gorm"
)

type seedQuiz struct {
	quiz      model.Quiz
	questions []model.Question
}

func opts(texts ...string) []model.QuestionOption {
	ids := []string{"a", "b", "c", "d"}
	out := make([]model.QuestionOption, len(texts))
	for i, t := range texts {
		out[i] = model.QuestionOption{ID: ids[i], Text: t}
	}
	return out
}

var defaultQuizzes = []seedQuiz{
	{
		quiz: model.Quiz{
			Title:        "Cover 2 Reads",
			Description:  "Identify Cover 2 pre-snap and pick the right read.",
			Position:     "quarterback",
			Difficulty:   model.DifficultyBeginner,
			Category:     "coverage_recognition",
			PassingScore: model.DefaultPassingScore,
			IsActive:     true,
			SortOrder:    1,
		},
		questions: []model.Question{
			{Prompt: "Two deep safeties split the field. Where is the soft spot against Cover 2?", Options: opts("Flat", "Hole between corner and safety", "Middle of the field underneath", "Directly at the safety"), CorrectOptionID: "b", Explanation: "The honey hole sits behind the squatting corner and in front of the safety.", SortOrder: 1},
			{Prompt: "Which route concept is built to beat Cover 2?", Options: opts("Smash", "Four verticals vs. single high", "Slant-flat vs. press", "Screen"), CorrectOptionID: "a", Explanation: "Smash high-lows the corner.", SortOrder: 2},
			{Prompt: "The corner bails at the snap instead of squatting. What coverage is likely?", Options: opts("Cover 2", "Cover 3", "Cover 0", "Cover 1 press"), CorrectOptionID: "b", SortOrder: 3},
		},
	},
	{
		quiz: model.Quiz{
			Title:        "Run Fits 101",
			Description:  "Gap responsibility for second-level defenders.",
			Position:     "linebacker",
			Difficulty:   model.DifficultyBeginner,
			Category:     "run_defense",
			PassingScore: model.DefaultPassingScore,
			IsActive:     true,
			SortOrder:    1,
		},
		questions: []model.Question{
			{Prompt: "Your key is the guard. He pulls to the right. What do you do?", Options: opts("Stay home", "Scrape over the top with him", "Blitz the A gap", "Drop into coverage"), CorrectOptionID: "b", SortOrder: 1},
			{Prompt: "In a 4-3 over front, which gap does the Mike usually own?", Options: opts("A gap", "C gap", "D gap", "None"), CorrectOptionID: "a", SortOrder: 2},
		},
	},
}

// SeedQuizzes 空库时写入默认测验
func SeedQuizzes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Quiz{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, s := range defaultQuizzes {
			quiz := s.quiz
			if err := tx.Create(&quiz).Error; err != nil {
				return err
			}
			for _, q := range s.questions {
				question := q
				question.QuizID = quiz.ID
				if err := tx.Create(&question).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
