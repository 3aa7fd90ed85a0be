package serviceImp

import (
	"context"

	"vivero/entities"
	"vivero/pkg/logger"
	repo "vivero/pkg/producer/repository"
	"vivero/pkg/producer/service"
	"vivero/pkg/validation"
)

type producerSvc struct {
	r repo.ProducerRepository
	v *validation.Validator
}

func NewProducerService(r repo.ProducerRepository, v *validation.Validator) service.ProducerService {
	return &producerSvc{r: r, v: v}
}

func (s *producerSvc) Validate(ctx context.Context, p *entities.Producer) error {
	ve, err := s.v.Struct("producer", p)
	if err != nil {
		return err
	}
	if p.IdentityDocument != "" {
		taken, err := s.r.DocumentTaken(ctx, p.IdentityDocument, p.ProducerID)
		if err != nil {
			return err
		}
		if taken {
			ve.Add("identity_document", "producer with this identity document already exists")
		}
	}
	return ve.OrNil()
}

func (s *producerSvc) Create(ctx context.Context, p *entities.Producer) error {
	if err := s.r.Create(ctx, p); err != nil {
		return err
	}
	logger.L().Info("producer.created", "producer_id", p.ProducerID, "identity_document", p.IdentityDocument)
	return nil
}

func (s *producerSvc) ValidateAndCreate(ctx context.Context, p *entities.Producer) error {
	if err := s.Validate(ctx, p); err != nil {
		return err
	}
	return s.Create(ctx, p)
}

func (s *producerSvc) GetByDocument(ctx context.Context, doc string) (*entities.Producer, error) {
	return s.r.FindByDocument(ctx, doc)
}

func (s *producerSvc) List(ctx context.Context) ([]entities.Producer, error) {
	return s.r.List(ctx)
}

func (s *producerSvc) UpdateContact(ctx context.Context, doc string, p service.ProducerPatch) (*entities.Producer, error) {
	cur, err := s.r.FindByDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	if p.FirstName != nil {
		cur.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		cur.LastName = *p.LastName
	}
	if p.Phone != nil {
		cur.Phone = *p.Phone
	}
	if p.Email != nil {
		cur.Email = *p.Email
	}
	if err := s.Validate(ctx, cur); err != nil {
		return nil, err
	}
	return cur, s.r.Update(ctx, cur)
}

func (s *producerSvc) Delete(ctx context.Context, doc string) error {
	cur, err := s.r.FindByDocument(ctx, doc)
	if err != nil {
		return err
	}
	if err := s.r.Delete(ctx, cur.ProducerID); err != nil {
		return err
	}
	logger.L().Info("producer.deleted", "producer_id", cur.ProducerID, "identity_document", doc)
	return nil
}

func (s *producerSvc) Farms(ctx context.Context, doc string) ([]entities.Farm, error) {
	cur, err := s.r.FindByDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	return s.r.Farms(ctx, cur.ProducerID)
}
