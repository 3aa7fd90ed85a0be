package repository

import (
	"context"

	"vivero/entities"
)

// CatalogRepository stores one control-product catalog; T is the model type.
type CatalogRepository[T any] interface {
	Create(ctx context.Context, p *T) error
	FindByRegistryID(ctx context.Context, registryID string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, registryID string) error
	Labors(ctx context.Context, registryID string) ([]entities.Labor, error)
	// Upsert inserts ps in one transaction, updating rows whose registry id
	// is already stored. It returns how many were new.
	Upsert(ctx context.Context, ps []T) (created int, err error)
	RegistryTaken(ctx context.Context, registryID string, excludeID uint) (bool, error)
}
