package repository

import (
	"context"
	"errors"

	"gridiron_backend/internal/model"
	"gridiron_backend/internal/util"

	"gorm.io/gorm"
)

type QuizFilter struct {
	Position   string
	Difficulty string
	Category   string
	ActiveOnly bool
	Page       int
	Limit      int
}

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) WithTx(tx *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: tx}
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Create(quiz).Error
}

func (r *QuizRepository) Update(ctx context.Context, quiz *model.Quiz) error {
	return r.DB.WithContext(ctx).Save(quiz).Error
}

func (r *QuizRepository) FindByID(ctx context.Context, id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	if err := r.DB.WithContext(ctx).First(&quiz, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) List(ctx context.Context, f QuizFilter) ([]model.Quiz, int64, error) {
	q := r.DB.WithContext(ctx).Model(&model.Quiz{})
	if f.Position != "" {
		q = q.Where("position = ?", f.Position)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * f.Limit).Limit(f.Limit)
	}

	var quizzes []model.Quiz
	err := q.Order("sort_order ASC, id ASC").Find(&quizzes).Error
	return quizzes, total, err
}

// Delete 只删除测验本身，题目和作答记录的级联由 service 在事务中处理
func (r *QuizRepository) Delete(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&model.Quiz{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrQuizNotFound
	}
	return nil
}

func (r *QuizRepository) CreateQuestion(ctx context.Context, question *model.Question) error {
	return r.DB.WithContext(ctx).Create(question).Error
}

func (r *QuizRepository) UpdateQuestion(ctx context.Context, question *model.Question) error {
	return r.DB.WithContext(ctx).Save(question).Error
}

func (r *QuizRepository) FindQuestion(ctx context.Context, quizID, questionID uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.WithContext(ctx).Where("quiz_id = ?", quizID).First(&q, questionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepository) ListQuestions(ctx context.Context, quizID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("sort_order ASC, id ASC").
		Find(&questions).Error
	return questions, err
}

func (r *QuizRepository) DeleteQuestion(ctx context.Context, quizID, questionID uint) error {
	res := r.DB.WithContext(ctx).Where("quiz_id = ?", quizID).Delete(&model.Question{}, questionID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrQuestionNotFound
	}
	return nil
}

func (r *QuizRepository) DeleteQuestionsByQuizID(ctx context.Context, quizID uint) error {
	return r.DB.WithContext(ctx).Where("quiz_id = ?", quizID).Delete(&model.Question{}).Error
}
