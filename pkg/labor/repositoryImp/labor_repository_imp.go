package repositoryImp

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"vivero/entities"
	"vivero/pkg/apperror"
	"vivero/pkg/labor/repository"
	"vivero/pkg/validation"
)

var productAssociations = []string{"FungusProducts", "PestProducts", "FertilizerProducts"}

type laborRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LaborRepository { return &laborRepo{db} }

func (r *laborRepo) Create(ctx context.Context, l *entities.Labor) error {
	err := r.db.WithContext(ctx).Omit(append([]string{"Nursery"}, productAssociations...)...).Create(l).Error
	return apperror.FromDB("create labor", err)
}

func (r *laborRepo) CreateWithProducts(ctx context.Context, l *entities.Labor, products []repository.ProductRef) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(append([]string{"Nursery"}, productAssociations...)...).Create(l).Error; err != nil {
			return apperror.FromDB("create labor", err)
		}
		for _, p := range products {
			if err := attach(tx, l.LaborID, p); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *laborRepo) Update(ctx context.Context, l *entities.Labor) error {
	err := r.db.WithContext(ctx).Model(&entities.Labor{LaborID: l.LaborID}).
		Updates(map[string]any{"date": entities.DateOnly(l.Date), "description": l.Description}).Error
	return apperror.FromDB("update labor", err)
}

func (r *laborRepo) FindByID(ctx context.Context, id uint) (*entities.Labor, error) {
	var l entities.Labor
	q := r.db.WithContext(ctx).Preload("Nursery")
	for _, a := range productAssociations {
		q = q.Preload(a)
	}
	if err := q.First(&l, "labor_id = ?", id).Error; err != nil {
		return nil, apperror.FromDB(fmt.Sprintf("labor %d", id), err)
	}
	return &l, nil
}

func (r *laborRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l := &entities.Labor{LaborID: id}
		for _, a := range productAssociations {
			if err := tx.Model(l).Association(a).Clear(); err != nil {
				return apperror.FromDB("clear labor products", err)
			}
		}
		res := tx.Delete(&entities.Labor{}, "labor_id = ?", id)
		if res.Error != nil {
			return apperror.FromDB("delete labor", res.Error)
		}
		if res.RowsAffected == 0 {
			return apperror.FromDB(fmt.Sprintf("delete labor %d", id), gorm.ErrRecordNotFound)
		}
		return nil
	})
}

func (r *laborRepo) FindProduct(ctx context.Context, kind entities.ProductKind, registryID string) (repository.ProductRef, error) {
	m, err := entities.NewProductModel(kind)
	if err != nil {
		return repository.ProductRef{}, err
	}
	if err := r.db.WithContext(ctx).Where("registry_id = ?", registryID).First(m).Error; err != nil {
		return repository.ProductRef{}, apperror.FromDB(fmt.Sprintf("%s product %q", kind, registryID), err)
	}
	return repository.ProductRef{Kind: kind, Model: m}, nil
}

func (r *laborRepo) Attach(ctx context.Context, laborID uint, p repository.ProductRef) error {
	return attach(r.db.WithContext(ctx), laborID, p)
}

func (r *laborRepo) Detach(ctx context.Context, laborID uint, p repository.ProductRef) error {
	assoc, err := entities.ProductAssociation(p.Kind)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).Model(&entities.Labor{LaborID: laborID}).Association(assoc).Delete(p.Model)
	return apperror.FromDB("detach product", err)
}

func (r *laborRepo) NurseryExists(ctx context.Context, nurseryID uint) (bool, error) {
	return validation.Exists(ctx, r.db, &entities.Nursery{}, "nursery_id", nurseryID)
}

func (r *laborRepo) NurseryIDByCode(ctx context.Context, code string) (uint, error) {
	var n entities.Nursery
	if err := r.db.WithContext(ctx).Select("nursery_id").Where("code = ?", code).First(&n).Error; err != nil {
		return 0, apperror.FromDB(fmt.Sprintf("nursery %q", code), err)
	}
	return n.NurseryID, nil
}

// attach links an existing product to the labor; linking twice is a no-op.
func attach(db *gorm.DB, laborID uint, p repository.ProductRef) error {
	assoc, err := entities.ProductAssociation(p.Kind)
	if err != nil {
		return err
	}
	err = db.Model(&entities.Labor{LaborID: laborID}).Association(assoc).Append(p.Model)
	return apperror.FromDB("attach product", err)
}
