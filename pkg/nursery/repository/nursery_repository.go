package repository

import (
	"context"
	"time"

	"vivero/entities"
)

type NurseryRepository interface {
	Create(ctx context.Context, n *entities.Nursery) error
	FindByCode(ctx context.Context, code string) (*entities.Nursery, error)
	// Labors lists labors of the nursery ordered by date; nil bounds are open.
	Labors(ctx context.Context, nurseryID uint, from, to *time.Time) ([]entities.Labor, error)
	Delete(ctx context.Context, id uint) error
	CodeTaken(ctx context.Context, code string, excludeID uint) (bool, error)
	FarmExists(ctx context.Context, farmID uint) (bool, error)
}
