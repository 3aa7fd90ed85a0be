package service

import (
	"context"

	"vivero/entities"
)

type FarmService interface {
	Validate(ctx context.Context, f *entities.Farm) error
	Create(ctx context.Context, f *entities.Farm) error
	ValidateAndCreate(ctx context.Context, f *entities.Farm) error
	// GetByCadastral returns the farm with its owning Producer loaded.
	GetByCadastral(ctx context.Context, cadastral string) (*entities.Farm, error)
	List(ctx context.Context) ([]entities.Farm, error)
	Nurseries(ctx context.Context, cadastral string) ([]entities.Nursery, error)
	Delete(ctx context.Context, cadastral string) error
}
