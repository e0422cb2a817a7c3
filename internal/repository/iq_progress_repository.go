package repository

import (
	"context"
	"errors"

	"gridiron_backend/internal/model"
	"gridiron_backend/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type IQProgressRepository struct {
	DB *gorm.DB
}

func NewIQProgressRepository(db *gorm.DB) *IQProgressRepository {
	return &IQProgressRepository{DB: db}
}

func (r *IQProgressRepository) WithTx(tx *gorm.DB) *IQProgressRepository {
	return &IQProgressRepository{DB: tx}
}

// FindForUpdate 在事务内读取并锁定 (athlete, position) 记录。
// sqlite 不支持 FOR UPDATE，依赖单连接串行化。
func (r *IQProgressRepository) FindForUpdate(ctx context.Context, athleteID uint, position string) (*model.IQProgress, error) {
	q := r.DB.WithContext(ctx).Where("athlete_id = ? AND position = ?", athleteID, position)
	if r.DB.Dialector.Name() != util.DriverSQLite {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p model.IQProgress
	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *IQProgressRepository) Save(ctx context.Context, p *model.IQProgress) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *IQProgressRepository) FindByID(ctx context.Context, id uint) (*model.IQProgress, error) {
	var p model.IQProgress
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *IQProgressRepository) ListByAthlete(ctx context.Context, athleteID uint, position string) ([]model.IQProgress, error) {
	q := r.DB.WithContext(ctx).Where("athlete_id = ?", athleteID)
	if position != "" {
		q = q.Where("position = ?", position)
	}
	var records []model.IQProgress
	err := q.Order("position ASC").Find(&records).Error
	return records, err
}
