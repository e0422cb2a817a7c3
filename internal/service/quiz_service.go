package service

import (
	"context"
	"fmt"
	"strings"

	"gridiron_backend/internal/model"
	"gridiron_backend/internal/repository"
	"gridiron_backend/internal/util"
	"gridiron_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.QuizAttemptRepository
	DB          *gorm.DB
}

func NewQuizService(quizRepo *repository.QuizRepository, attemptRepo *repository.QuizAttemptRepository, db *gorm.DB) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		DB:          db,
	}
}

type QuizRequest struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description"`
	Position     string `json:"position" binding:"required"`
	Difficulty   string `json:"difficulty"`
	Category     string `json:"category"`
	PassingScore *int   `json:"passingScore"`
	TimeLimit    int    `json:"timeLimit"`
	IsActive     *bool  `json:"isActive"`
	SortOrder    int    `json:"sortOrder"`
}

type QuestionRequest struct {
	Prompt          string                 `json:"prompt" binding:"required"`
	Options         []model.QuestionOption `json:"options" binding:"required"`
	CorrectOptionID string                 `json:"correctOptionId" binding:"required"`
	Explanation     string                 `json:"explanation"`
	SortOrder       int                    `json:"sortOrder"`
}

func (req QuizRequest) apply(quiz *model.Quiz) error {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", util.ErrInvalidQuiz)
	}
	if !util.IsValidPosition(req.Position) {
		return fmt.Errorf("%w: unknown position %q", util.ErrInvalidQuiz, req.Position)
	}
	difficulty := model.QuizDifficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = model.DifficultyBeginner
	}
	if !difficulty.Valid() {
		return fmt.Errorf("%w: unknown difficulty %q", util.ErrInvalidQuiz, req.Difficulty)
	}
	passing := model.DefaultPassingScore
	if req.PassingScore != nil {
		passing = *req.PassingScore
	}
	if passing < 0 || passing > 100 {
		return fmt.Errorf("%w: passingScore must be between 0 and 100", util.ErrInvalidQuiz)
	}
	if req.TimeLimit < 0 {
		return fmt.Errorf("%w: timeLimit must not be negative", util.ErrInvalidQuiz)
	}

	quiz.Title = title
	quiz.Description = req.Description
	quiz.Position = req.Position
	quiz.Difficulty = difficulty
	quiz.Category = req.Category
	quiz.PassingScore = passing
	quiz.TimeLimit = req.TimeLimit
	quiz.SortOrder = req.SortOrder
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}
	return nil
}

func (req QuestionRequest) apply(q *model.Question) error {
	if strings.TrimSpace(req.Prompt) == "" {
		return fmt.Errorf("%w: prompt is required", util.ErrInvalidQuestion)
	}
	if len(req.Options) < 2 {
		return fmt.Errorf("%w: at least two options are required", util.ErrInvalidQuestion)
	}
	seen := make(map[string]bool, len(req.Options))
	for _, o := range req.Options {
		if o.ID == "" {
			return fmt.Errorf("%w: option id is required", util.ErrInvalidQuestion)
		}
		if seen[o.ID] {
			return fmt.Errorf("%w: duplicate option id %q", util.ErrInvalidQuestion, o.ID)
		}
		seen[o.ID] = true
	}
	if !seen[req.CorrectOptionID] {
		return fmt.Errorf("%w: correctOptionId %q is not one of the options", util.ErrInvalidQuestion, req.CorrectOptionID)
	}

	q.Prompt = req.Prompt
	q.Options = req.Options
	q.CorrectOptionID = req.CorrectOptionID
	q.Explanation = req.Explanation
	q.SortOrder = req.SortOrder
	return nil
}

func (s *QuizService) CreateQuiz(ctx context.Context, creatorID uint, req QuizRequest) (*model.Quiz, error) {
	quiz := &model.Quiz{CreatedBy: creatorID, IsActive: true}
	if err := req.apply(quiz); err != nil {
		return nil, err
	}
	if err := s.QuizRepo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	logger.Log.Info("quiz created",
		zap.Uint("quizId", quiz.ID),
		zap.String("position", quiz.Position),
		zap.Uint("creatorId", creatorID),
	)
	return quiz, nil
}

func (s *QuizService) UpdateQuiz(ctx context.Context, quizID uint, req QuizRequest) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if err := req.apply(quiz); err != nil {
		return nil, err
	}
	if err := s.QuizRepo.Update(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// GetQuiz 返回测验及按顺序排列的题目
func (s *QuizService) GetQuiz(ctx context.Context, quizID uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	questions, err := s.QuizRepo.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions
	return quiz, nil
}

func (s *QuizService) ListQuizzes(ctx context.Context, filter repository.QuizFilter) ([]model.Quiz, int64, error) {
	return s.QuizRepo.List(ctx, filter)
}

// DeleteQuiz 级联删除题目和作答记录；进度记录保留
func (s *QuizService) DeleteQuiz(ctx context.Context, quizID uint) error {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		quizzes := s.QuizRepo.WithTx(tx)
		if err := quizzes.Delete(ctx, quizID); err != nil {
			return err
		}
		if err := quizzes.DeleteQuestionsByQuizID(ctx, quizID); err != nil {
			return err
		}
		return s.AttemptRepo.WithTx(tx).DeleteByQuizID(ctx, quizID)
	})
	if err != nil {
		return err
	}
	logger.Log.Info("quiz deleted", zap.Uint("quizId", quizID))
	return nil
}

func (s *QuizService) AddQuestion(ctx context.Context, quizID uint, req QuestionRequest) (*model.Question, error) {
	if _, err := s.QuizRepo.FindByID(ctx, quizID); err != nil {
		return nil, err
	}
	q := &model.Question{QuizID: quizID}
	if err := req.apply(q); err != nil {
		return nil, err
	}
	if err := s.QuizRepo.CreateQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuizService) UpdateQuestion(ctx context.Context, quizID, questionID uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.QuizRepo.FindQuestion(ctx, quizID, questionID)
	if err != nil {
		return nil, err
	}
	if err := req.apply(q); err != nil {
		return nil, err
	}
	if err := s.QuizRepo.UpdateQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuizService) DeleteQuestion(ctx context.Context, quizID, questionID uint) error {
	return s.QuizRepo.DeleteQuestion(ctx, quizID, questionID)
}

func (s *QuizService) ListQuestions(ctx context.Context, quizID uint) ([]model.Question, error) {
	if _, err := s.QuizRepo.FindByID(ctx, quizID); err != nil {
		return nil, err
	}
	return s.QuizRepo.ListQuestions(ctx, quizID)
}
