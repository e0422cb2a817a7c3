package repository

import (
	"context"
	"errors"
	"time"

	"gridiron_backend/internal/model"
	"gridiron_backend/internal/util"

	"gorm.io/gorm"
)

type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

func (r *QuizAttemptRepository) WithTx(tx *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: tx}
}

func (r *QuizAttemptRepository) Create(ctx context.Context, attempt *model.QuizAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

func (r *QuizAttemptRepository) FindByID(ctx context.Context, id uint) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	if err := r.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Complete 仅当记录仍处于 started 状态时写入结果（CAS），
// 重复提交或已被清理为 abandoned 的记录返回 ErrAttemptNotInProgress
func (r *QuizAttemptRepository) Complete(ctx context.Context, attempt *model.QuizAttempt) error {
	res := r.DB.WithContext(ctx).
		Model(attempt).
		Where("status = ?", model.AttemptStarted).
		Select("status", "completed_at", "score", "time_spent", "iq_level", "is_passed", "answers").
		Updates(attempt)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrAttemptNotInProgress
	}
	return nil
}

func (r *QuizAttemptRepository) ListByAthlete(ctx context.Context, athleteID, quizID uint) ([]model.QuizAttempt, error) {
	q := r.DB.WithContext(ctx).Where("athlete_id = ?", athleteID)
	if quizID > 0 {
		q = q.Where("quiz_id = ?", quizID)
	}
	var attempts []model.QuizAttempt
	err := q.Order("started_at DESC, id DESC").Find(&attempts).Error
	return attempts, err
}

// MarkAbandoned 把 cutoff 之前开始且仍未完成的记录标记为 abandoned
func (r *QuizAttemptRepository) MarkAbandoned(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).
		Model(&model.QuizAttempt{}).
		Where("status = ? AND started_at < ?", model.AttemptStarted, cutoff).
		Update("status", model.AttemptAbandoned)
	return res.RowsAffected, res.Error
}

func (r *QuizAttemptRepository) DeleteByQuizID(ctx context.Context, quizID uint) error {
	return r.DB.WithContext(ctx).Where("quiz_id = ?", quizID).Delete(&model.QuizAttempt{}).Error
}
