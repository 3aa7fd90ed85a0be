package service

import (
	"context"

	"vivero/entities"
)

type LaborService interface {
	Validate(ctx context.Context, l *entities.Labor) error
	Create(ctx context.Context, l *entities.Labor) error
	ValidateAndCreate(ctx context.Context, l *entities.Labor) error
	// Record coerces the date string, resolves nursery and products, validates
	// everything and stores the labor with its products in one transaction.
	Record(ctx context.Context, in LaborInput) (*entities.Labor, error)
	Get(ctx context.Context, id uint) (*entities.Labor, error)
	Patch(ctx context.Context, id uint, p LaborPatch) (*entities.Labor, error)
	AddProduct(ctx context.Context, laborID uint, ref ProductRef) error
	RemoveProduct(ctx context.Context, laborID uint, ref ProductRef) error
	Delete(ctx context.Context, id uint) error
}

type ProductRef struct {
	Kind       entities.ProductKind `json:"kind"`
	RegistryID string               `json:"registry_id"`
}

type LaborInput struct {
	NurseryID   uint         `json:"nursery_id"`
	NurseryCode string       `json:"nursery_code"`
	Date        string       `json:"date"` // YYYY-MM-DD
	Description string       `json:"description"`
	Products    []ProductRef `json:"products"`
}

type LaborPatch struct {
	Date        *string `json:"date"`
	Description *string `json:"description"`
}
