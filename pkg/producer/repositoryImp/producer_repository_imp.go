package repositoryImp

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vivero/entities"
	"vivero/pkg/apperror"
	"vivero/pkg/producer/repository"
	"vivero/pkg/validation"
)

type producerRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ProducerRepository { return &producerRepo{db} }

func (r *producerRepo) Create(ctx context.Context, p *entities.Producer) error {
	return apperror.FromDB("create producer", r.db.WithContext(ctx).Omit("Farms").Create(p).Error)
}

func (r *producerRepo) Update(ctx context.Context, p *entities.Producer) error {
	return apperror.FromDB("update producer", r.db.WithContext(ctx).Omit("Farms").Save(p).Error)
}

func (r *producerRepo) FindByID(ctx context.Context, id uint) (*entities.Producer, error) {
	var p entities.Producer
	if err := r.db.WithContext(ctx).First(&p, "producer_id = ?", id).Error; err != nil {
		return nil, apperror.FromDB(fmt.Sprintf("producer %d", id), err)
	}
	return &p, nil
}

func (r *producerRepo) FindByDocument(ctx context.Context, doc string) (*entities.Producer, error) {
	var p entities.Producer
	if err := r.db.WithContext(ctx).Where("identity_document = ?", doc).First(&p).Error; err != nil {
		return nil, apperror.FromDB(fmt.Sprintf("producer %q", doc), err)
	}
	return &p, nil
}

func (r *producerRepo) List(ctx context.Context) ([]entities.Producer, error) {
	var out []entities.Producer
	if err := r.db.WithContext(ctx).Order("last_name ASC, first_name ASC").Find(&out).Error; err != nil {
		return nil, apperror.FromDB("list producers", err)
	}
	return out, nil
}

func (r *producerRepo) Farms(ctx context.Context, producerID uint) ([]entities.Farm, error) {
	var out []entities.Farm
	if err := r.db.WithContext(ctx).Where("producer_id = ?", producerID).Order("cadastral_number ASC").Find(&out).Error; err != nil {
		return nil, apperror.FromDB("list farms of producer", err)
	}
	return out, nil
}

func (r *producerRepo) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Producer{}, "producer_id = ?", id)
	if res.Error != nil {
		return apperror.FromDB("delete producer", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.FromDB(fmt.Sprintf("delete producer %d", id), gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *producerRepo) DocumentTaken(ctx context.Context, doc string, excludeID uint) (bool, error) {
	free, err := validation.Unique(ctx, r.db, &entities.Producer{}, "identity_document", doc, "producer_id", excludeID)
	return !free, err
}
