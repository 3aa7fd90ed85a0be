package serviceImp

import (
	"context"

	"vivero/entities"
	repo "vivero/pkg/farm/repository"
	"vivero/pkg/farm/service"
	"vivero/pkg/logger"
	"vivero/pkg/validation"
)

type farmSvc struct {
	r repo.FarmRepository
	v *validation.Validator
}

func NewFarmService(r repo.FarmRepository, v *validation.Validator) service.FarmService {
	return &farmSvc{r: r, v: v}
}

func (s *farmSvc) Validate(ctx context.Context, f *entities.Farm) error {
	ve, err := s.v.Struct("farm", f)
	if err != nil {
		return err
	}
	if f.CadastralNumber != "" {
		taken, err := s.r.CadastralTaken(ctx, f.CadastralNumber, f.FarmID)
		if err != nil {
			return err
		}
		if taken {
			ve.Add("cadastral_number", "farm with this cadastral number already exists")
		}
	}
	if f.ProducerID != 0 {
		ok, err := s.r.ProducerExists(ctx, f.ProducerID)
		if err != nil {
			return err
		}
		if !ok {
			ve.Add("producer_id", "producer does not exist")
		}
	}
	return ve.OrNil()
}

func (s *farmSvc) Create(ctx context.Context, f *entities.Farm) error {
	if err := s.r.Create(ctx, f); err != nil {
		return err
	}
	logger.L().Info("farm.created", "farm_id", f.FarmID, "cadastral_number", f.CadastralNumber, "producer_id", f.ProducerID)
	return nil
}

func (s *farmSvc) ValidateAndCreate(ctx context.Context, f *entities.Farm) error {
	if err := s.Validate(ctx, f); err != nil {
		return err
	}
	return s.Create(ctx, f)
}

func (s *farmSvc) GetByCadastral(ctx context.Context, cadastral string) (*entities.Farm, error) {
	return s.r.FindByCadastral(ctx, cadastral)
}

func (s *farmSvc) List(ctx context.Context) ([]entities.Farm, error) { return s.r.List(ctx) }

func (s *farmSvc) Nurseries(ctx context.Context, cadastral string) ([]entities.Nursery, error) {
	f, err := s.r.FindByCadastral(ctx, cadastral)
	if err != nil {
		return nil, err
	}
	return s.r.Nurseries(ctx, f.FarmID)
}

func (s *farmSvc) Delete(ctx context.Context, cadastral string) error {
	f, err := s.r.FindByCadastral(ctx, cadastral)
	if err != nil {
		return err
	}
	if err := s.r.Delete(ctx, f.FarmID); err != nil {
		return err
	}
	logger.L().Info("farm.deleted", "farm_id", f.FarmID, "cadastral_number", cadastral)
	return nil
}
