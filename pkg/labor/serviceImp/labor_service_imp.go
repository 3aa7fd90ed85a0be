package serviceImp

import (
	"context"
	"errors"
	"fmt"

	"vivero/entities"
	"vivero/pkg/apperror"
	repo "vivero/pkg/labor/repository"
	"vivero/pkg/labor/service"
	"vivero/pkg/logger"
	"vivero/pkg/validation"
)

type laborSvc struct {
	r repo.LaborRepository
	v *validation.Validator
}

func NewLaborService(r repo.LaborRepository, v *validation.Validator) service.LaborService {
	return &laborSvc{r: r, v: v}
}

func (s *laborSvc) Validate(ctx context.Context, l *entities.Labor) error {
	ve := apperror.NewValidation("labor")
	if err := s.check(ctx, l, ve); err != nil {
		return err
	}
	return ve.OrNil()
}

// check adds struct and nursery errors to ve, skipping fields ve already reports.
// A nursery_code problem stands in for nursery_id.
func (s *laborSvc) check(ctx context.Context, l *entities.Labor, ve *apperror.ValidationError) error {
	fields, err := s.v.Struct("labor", l)
	if err != nil {
		return err
	}
	for f, msgs := range fields.Fields {
		if _, seen := ve.Fields[f]; seen {
			continue
		}
		if _, byCode := ve.Fields["nursery_code"]; byCode && f == "nursery_id" {
			continue
		}
		for _, m := range msgs {
			ve.Add(f, m)
		}
	}
	if l.NurseryID != 0 {
		ok, err := s.r.NurseryExists(ctx, l.NurseryID)
		if err != nil {
			return err
		}
		if !ok {
			ve.Add("nursery_id", "nursery does not exist")
		}
	}
	return nil
}

func (s *laborSvc) Create(ctx context.Context, l *entities.Labor) error {
	if err := s.r.Create(ctx, l); err != nil {
		return err
	}
	logger.L().Info("labor.created", "labor_id", l.LaborID, "nursery_id", l.NurseryID, "date", entities.FormatDate(l.Date))
	return nil
}

func (s *laborSvc) ValidateAndCreate(ctx context.Context, l *entities.Labor) error {
	if err := s.Validate(ctx, l); err != nil {
		return err
	}
	return s.Create(ctx, l)
}

func (s *laborSvc) Record(ctx context.Context, in service.LaborInput) (*entities.Labor, error) {
	ve := apperror.NewValidation("labor")
	l := &entities.Labor{NurseryID: in.NurseryID, Description: in.Description}

	if in.Date != "" {
		d, err := entities.ParseDate(in.Date)
		if err != nil {
			ve.Add("date", err.Error())
		} else {
			l.Date = d
		}
	}
	if l.NurseryID == 0 && in.NurseryCode != "" {
		id, err := s.r.NurseryIDByCode(ctx, in.NurseryCode)
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			ve.Add("nursery_code", fmt.Sprintf("nursery %q does not exist", in.NurseryCode))
		case err != nil:
			return nil, err
		default:
			l.NurseryID = id
		}
	}
	if err := s.check(ctx, l, ve); err != nil {
		return nil, err
	}

	products := make([]repo.ProductRef, 0, len(in.Products))
	for _, ref := range in.Products {
		p, problem, err := s.resolve(ctx, ref)
		if err != nil {
			return nil, err
		}
		if problem != "" {
			ve.Add("products", problem)
			continue
		}
		products = append(products, p)
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}

	if err := s.r.CreateWithProducts(ctx, l, products); err != nil {
		return nil, err
	}
	logger.L().Info("labor.recorded", "labor_id", l.LaborID, "nursery_id", l.NurseryID, "products", len(products))
	return s.r.FindByID(ctx, l.LaborID)
}

// resolve loads the referenced catalog entry. An unknown kind or registry id
// comes back as problem, to be reported as a validation message.
func (s *laborSvc) resolve(ctx context.Context, ref service.ProductRef) (p repo.ProductRef, problem string, err error) {
	if _, err := entities.ParseProductKind(string(ref.Kind)); err != nil {
		return p, err.Error(), nil
	}
	p, err = s.r.FindProduct(ctx, ref.Kind, ref.RegistryID)
	if errors.Is(err, apperror.ErrNotFound) {
		return p, fmt.Sprintf("%s product %q does not exist", ref.Kind, ref.RegistryID), nil
	}
	return p, "", err
}

func (s *laborSvc) resolveOrFail(ctx context.Context, ref service.ProductRef) (repo.ProductRef, error) {
	p, problem, err := s.resolve(ctx, ref)
	if err != nil {
		return p, err
	}
	if problem != "" {
		ve := apperror.NewValidation("labor")
		ve.Add("products", problem)
		return p, ve
	}
	return p, nil
}

func (s *laborSvc) Get(ctx context.Context, id uint) (*entities.Labor, error) {
	return s.r.FindByID(ctx, id)
}

func (s *laborSvc) Patch(ctx context.Context, id uint, p service.LaborPatch) (*entities.Labor, error) {
	cur, err := s.r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ve := apperror.NewValidation("labor")
	if p.Date != nil {
		d, err := entities.ParseDate(*p.Date)
		if err != nil {
			ve.Add("date", err.Error())
		} else {
			cur.Date = d
		}
	}
	if p.Description != nil {
		cur.Description = *p.Description
	}
	if err := s.check(ctx, cur, ve); err != nil {
		return nil, err
	}
	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	if err := s.r.Update(ctx, cur); err != nil {
		return nil, err
	}
	return s.r.FindByID(ctx, id)
}

func (s *laborSvc) AddProduct(ctx context.Context, laborID uint, ref service.ProductRef) error {
	if _, err := s.r.FindByID(ctx, laborID); err != nil {
		return err
	}
	p, err := s.resolveOrFail(ctx, ref)
	if err != nil {
		return err
	}
	if err := s.r.Attach(ctx, laborID, p); err != nil {
		return err
	}
	logger.L().Info("labor.product_added", "labor_id", laborID, "kind", ref.Kind, "registry_id", ref.RegistryID)
	return nil
}

func (s *laborSvc) RemoveProduct(ctx context.Context, laborID uint, ref service.ProductRef) error {
	if _, err := s.r.FindByID(ctx, laborID); err != nil {
		return err
	}
	p, err := s.resolveOrFail(ctx, ref)
	if err != nil {
		return err
	}
	return s.r.Detach(ctx, laborID, p)
}

func (s *laborSvc) Delete(ctx context.Context, id uint) error {
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Info("labor.deleted", "labor_id", id)
	return nil
}
