package repositoryImp

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vivero/entities"
	"vivero/pkg/apperror"
	"vivero/pkg/farm/repository"
	"vivero/pkg/validation"
)

type farmRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FarmRepository { return &farmRepo{db} }

func (r *farmRepo) Create(ctx context.Context, f *entities.Farm) error {
	return apperror.FromDB("create farm", r.db.WithContext(ctx).Omit("Producer", "Nurseries").Create(f).Error)
}

func (r *farmRepo) FindByCadastral(ctx context.Context, cadastral string) (*entities.Farm, error) {
	var f entities.Farm
	err := r.db.WithContext(ctx).Preload("Producer").Where("cadastral_number = ?", cadastral).First(&f).Error
	if err != nil {
		return nil, apperror.FromDB(fmt.Sprintf("farm %q", cadastral), err)
	}
	return &f, nil
}

func (r *farmRepo) List(ctx context.Context) ([]entities.Farm, error) {
	var out []entities.Farm
	if err := r.db.WithContext(ctx).Preload("Producer").Order("cadastral_number ASC").Find(&out).Error; err != nil {
		return nil, apperror.FromDB("list farms", err)
	}
	return out, nil
}

func (r *farmRepo) Nurseries(ctx context.Context, farmID uint) ([]entities.Nursery, error) {
	var out []entities.Nursery
	if err := r.db.WithContext(ctx).Where("farm_id = ?", farmID).Order("code ASC").Find(&out).Error; err != nil {
		return nil, apperror.FromDB("list nurseries of farm", err)
	}
	return out, nil
}

func (r *farmRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Farm{}, "farm_id = ?", id)
	if res.Error != nil {
		return apperror.FromDB("delete farm", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.FromDB(fmt.Sprintf("delete farm %d", id), gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *farmRepo) CadastralTaken(ctx context.Context, cadastral string, excludeID uint) (bool, error) {
	free, err := validation.Unique(ctx, r.db, &entities.Farm{}, "cadastral_number", cadastral, "farm_id", excludeID)
	return !free, err
}

func (r *farmRepo) ProducerExists(ctx context.Context, producerID uint) (bool, error) {
	return validation.Exists(ctx, r.db, &entities.Producer{}, "producer_id", producerID)
}
