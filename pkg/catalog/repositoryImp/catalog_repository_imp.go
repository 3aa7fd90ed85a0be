package repositoryImp

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vivero/entities"
	"vivero/pkg/apperror"
	"vivero/pkg/catalog/repository"
	"vivero/pkg/validation"
)

type catalogRepo[T any, PT entities.Product[T]] struct {
	db   *gorm.DB
	kind entities.ProductKind
}

func New[T any, PT entities.Product[T]](db *gorm.DB, kind entities.ProductKind) repository.CatalogRepository[T] {
	return &catalogRepo[T, PT]{db: db, kind: kind}
}

func (r *catalogRepo[T, PT]) Create(ctx context.Context, p *T) error {
	return apperror.FromDB(fmt.Sprintf("create %s product", r.kind), r.db.WithContext(ctx).Omit("Labors").Create(p).Error)
}

func (r *catalogRepo[T, PT]) FindByRegistryID(ctx context.Context, registryID string) (*T, error) {
	return r.find(r.db.WithContext(ctx), registryID)
}

func (r *catalogRepo[T, PT]) find(db *gorm.DB, registryID string) (*T, error) {
	var p T
	if err := db.Where("registry_id = ?", registryID).First(&p).Error; err != nil {
		return nil, apperror.FromDB(fmt.Sprintf("%s product %q", r.kind, registryID), err)
	}
	return &p, nil
}

func (r *catalogRepo[T, PT]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.db.WithContext(ctx).Order("product_name ASC, registry_id ASC").Find(&out).Error; err != nil {
		return nil, apperror.FromDB(fmt.Sprintf("list %s products", r.kind), err)
	}
	return out, nil
}

// Delete clears the join rows before removing the product; labors stay.
func (r *catalogRepo[T, PT]) Delete(ctx context.Context, registryID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := r.find(tx, registryID)
		if err != nil {
			return err
		}
		if err := tx.Model(p).Association("Labors").Clear(); err != nil {
			return apperror.FromDB("unlink labors", err)
		}
		return apperror.FromDB(fmt.Sprintf("delete %s product", r.kind), tx.Delete(p).Error)
	})
}

func (r *catalogRepo[T, PT]) Labors(ctx context.Context, registryID string) ([]entities.Labor, error) {
	db := r.db.WithContext(ctx)
	p, err := r.find(db, registryID)
	if err != nil {
		return nil, err
	}
	var out []entities.Labor
	if err := db.Model(p).Association("Labors").Find(&out); err != nil {
		return nil, apperror.FromDB("labors of product", err)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].LaborID < out[j].LaborID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (r *catalogRepo[T, PT]) Upsert(ctx context.Context, ps []T) (int, error) {
	if len(ps) == 0 {
		return 0, nil
	}
	created := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make([]string, len(ps))
		for i := range ps {
			ids[i] = PT(&ps[i]).Base().RegistryID
		}
		var stored int64
		if err := tx.Model(new(T)).Where("registry_id IN ?", ids).Count(&stored).Error; err != nil {
			return apperror.FromDB("count stored products", err)
		}
		created = len(ps) - int(stored)
		err := tx.Omit("Labors").Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "registry_id"}},
			DoUpdates: clause.AssignmentColumns(r.updatable(tx)),
		}).Create(&ps).Error
		return apperror.FromDB(fmt.Sprintf("import %s products", r.kind), err)
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// updatable lists every stored column except the key, registry id and created_at.
func (r *catalogRepo[T, PT]) updatable(tx *gorm.DB) []string {
	stmt := &gorm.Statement{DB: tx}
	if err := stmt.Parse(new(T)); err != nil {
		return []string{"product_name", "application_frequency", "value", "withdrawal_period", "updated_at"}
	}
	var cols []string
	for _, f := range stmt.Schema.Fields {
		switch f.DBName {
		case "", "product_id", "registry_id", "created_at":
			continue
		}
		cols = append(cols, f.DBName)
	}
	return cols
}

func (r *catalogRepo[T, PT]) RegistryTaken(ctx context.Context, registryID string, excludeID uint) (bool, error) {
	free, err := validation.Unique(ctx, r.db, new(T), "registry_id", registryID, "product_id", excludeID)
	return !free, err
}
