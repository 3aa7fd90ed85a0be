package serviceImp

import (
	"context"
	"time"

	"vivero/entities"
	"vivero/pkg/logger"
	repo "vivero/pkg/nursery/repository"
	"vivero/pkg/nursery/service"
	"vivero/pkg/validation"
)

type nurserySvc struct {
	r repo.NurseryRepository
	v *validation.Validator
}

func NewNurseryService(r repo.NurseryRepository, v *validation.Validator) service.NurseryService {
	return &nurserySvc{r: r, v: v}
}

func (s *nurserySvc) Validate(ctx context.Context, n *entities.Nursery) error {
	ve, err := s.v.Struct("nursery", n)
	if err != nil {
		return err
	}
	if n.Code != "" {
		taken, err := s.r.CodeTaken(ctx, n.Code, n.NurseryID)
		if err != nil {
			return err
		}
		if taken {
			ve.Add("code", "nursery with this code already exists")
		}
	}
	if n.FarmID != 0 {
		ok, err := s.r.FarmExists(ctx, n.FarmID)
		if err != nil {
			return err
		}
		if !ok {
			ve.Add("farm_id", "farm does not exist")
		}
	}
	return ve.OrNil()
}

func (s *nurserySvc) Create(ctx context.Context, n *entities.Nursery) error {
	if err := s.r.Create(ctx, n); err != nil {
		return err
	}
	logger.L().Info("nursery.created", "nursery_id", n.NurseryID, "code", n.Code, "farm_id", n.FarmID)
	return nil
}

func (s *nurserySvc) ValidateAndCreate(ctx context.Context, n *entities.Nursery) error {
	if err := s.Validate(ctx, n); err != nil {
		return err
	}
	return s.Create(ctx, n)
}

func (s *nurserySvc) GetByCode(ctx context.Context, code string) (*entities.Nursery, error) {
	return s.r.FindByCode(ctx, code)
}

func (s *nurserySvc) Labors(ctx context.Context, code string, from, to *time.Time) ([]entities.Labor, error) {
	n, err := s.r.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.r.Labors(ctx, n.NurseryID, from, to)
}

func (s *nurserySvc) Delete(ctx context.Context, code string) error {
	n, err := s.r.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	if err := s.r.Delete(ctx, n.NurseryID); err != nil {
		return err
	}
	logger.L().Info("nursery.deleted", "nursery_id", n.NurseryID, "code", code)
	return nil
}
