package service

import (
	"context"
	"time"

	"vivero/entities"
)

type NurseryService interface {
	Validate(ctx context.Context, n *entities.Nursery) error
	// Create writes directly; a duplicate code surfaces as *apperror.IntegrityError.
	Create(ctx context.Context, n *entities.Nursery) error
	ValidateAndCreate(ctx context.Context, n *entities.Nursery) error
	GetByCode(ctx context.Context, code string) (*entities.Nursery, error)
	Labors(ctx context.Context, code string, from, to *time.Time) ([]entities.Labor, error)
	Delete(ctx context.Context, code string) error
}
