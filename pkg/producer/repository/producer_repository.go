package repository

import (
	"context"

	"vivero/entities"
)

type ProducerRepository interface {
	Create(ctx context.Context, p *entities.Producer) error
	Update(ctx context.Context, p *entities.Producer) error
	FindByID(ctx context.Context, id uint) (*entities.Producer, error)
	FindByDocument(ctx context.Context, doc string) (*entities.Producer, error)
	List(ctx context.Context) ([]entities.Producer, error)
	Farms(ctx context.Context, producerID uint) ([]entities.Farm, error)
	Delete(ctx context.Context, id uint) error
	DocumentTaken(ctx context.Context, doc string, excludeID uint) (bool, error)
}
