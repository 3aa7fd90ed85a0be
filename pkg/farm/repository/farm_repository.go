package repository

import (
	"context"

	"vivero/entities"
)

type FarmRepository interface {
	Create(ctx context.Context, f *entities.Farm) error
	FindByCadastral(ctx context.Context, cadastral string) (*entities.Farm, error)
	List(ctx context.Context) ([]entities.Farm, error)
	Nurseries(ctx context.Context, farmID uint) ([]entities.Nursery, error)
	Delete(ctx context.Context, id uint) error
	CadastralTaken(ctx context.Context, cadastral string, excludeID uint) (bool, error)
	ProducerExists(ctx context.Context, producerID uint) (bool, error)
}
