package service

import (
	"context"

	"vivero/entities"
)

type ProducerService interface {
	// Validate is the pre-save check; it returns *apperror.ValidationError.
	Validate(ctx context.Context, p *entities.Producer) error
	// Create writes directly; constraint violations surface as *apperror.IntegrityError.
	Create(ctx context.Context, p *entities.Producer) error
	ValidateAndCreate(ctx context.Context, p *entities.Producer) error
	GetByDocument(ctx context.Context, doc string) (*entities.Producer, error)
	List(ctx context.Context) ([]entities.Producer, error)
	UpdateContact(ctx context.Context, doc string, patch ProducerPatch) (*entities.Producer, error)
	Delete(ctx context.Context, doc string) error
	Farms(ctx context.Context, doc string) ([]entities.Farm, error)
}

type ProducerPatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
}
