package repositoryImp

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"vivero/entities"
	"vivero/pkg/apperror"
	"vivero/pkg/nursery/repository"
	"vivero/pkg/validation"
)

type nurseryRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.NurseryRepository { return &nurseryRepo{db} }

func (r *nurseryRepo) Create(ctx context.Context, n *entities.Nursery) error {
	return apperror.FromDB("create nursery", r.db.WithContext(ctx).Omit("Farm", "Labors").Create(n).Error)
}

func (r *nurseryRepo) FindByCode(ctx context.Context, code string) (*entities.Nursery, error) {
	var n entities.Nursery
	err := r.db.WithContext(ctx).Preload("Farm").Preload("Farm.Producer").Where("code = ?", code).First(&n).Error
	if err != nil {
		return nil, apperror.FromDB(fmt.Sprintf("nursery %q", code), err)
	}
	return &n, nil
}

func (r *nurseryRepo) Labors(ctx context.Context, nurseryID uint, from, to *time.Time) ([]entities.Labor, error) {
	q := r.db.WithContext(ctx).Where("nursery_id = ?", nurseryID)
	if from != nil {
		q = q.Where("date >= ?", entities.DateOnly(*from))
	}
	if to != nil {
		q = q.Where("date <= ?", entities.DateOnly(*to))
	}
	var out []entities.Labor
	if err := q.Order("date ASC, labor_id ASC").Find(&out).Error; err != nil {
		return nil, apperror.FromDB("list labors of nursery", err)
	}
	return out, nil
}

func (r *nurseryRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Nursery{}, "nursery_id = ?", id)
	if res.Error != nil {
		return apperror.FromDB("delete nursery", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.FromDB(fmt.Sprintf("delete nursery %d", id), gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *nurseryRepo) CodeTaken(ctx context.Context, code string, excludeID uint) (bool, error) {
	free, err := validation.Unique(ctx, r.db, &entities.Nursery{}, "code", code, "nursery_id", excludeID)
	return !free, err
}

func (r *nurseryRepo) FarmExists(ctx context.Context, farmID uint) (bool, error) {
	return validation.Exists(ctx, r.db, &entities.Farm{}, "farm_id", farmID)
}
