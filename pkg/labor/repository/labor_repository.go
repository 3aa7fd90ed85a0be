package repository

import (
	"context"

	"vivero/entities"
)

// ProductRef is a catalog entry already loaded from its table.
type ProductRef struct {
	Kind  entities.ProductKind
	Model any // *entities.FungusControlProduct, *entities.PestControlProduct, ...
}

type LaborRepository interface {
	Create(ctx context.Context, l *entities.Labor) error
	// CreateWithProducts stores l and links every product in one transaction.
	CreateWithProducts(ctx context.Context, l *entities.Labor, products []ProductRef) error
	Update(ctx context.Context, l *entities.Labor) error
	FindByID(ctx context.Context, id uint) (*entities.Labor, error)
	Delete(ctx context.Context, id uint) error
	FindProduct(ctx context.Context, kind entities.ProductKind, registryID string) (ProductRef, error)
	Attach(ctx context.Context, laborID uint, p ProductRef) error
	Detach(ctx context.Context, laborID uint, p ProductRef) error
	NurseryExists(ctx context.Context, nurseryID uint) (bool, error)
	NurseryIDByCode(ctx context.Context, code string) (uint, error)
}
