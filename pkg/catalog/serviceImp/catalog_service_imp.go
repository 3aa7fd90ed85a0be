package serviceImp

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vivero/entities"
	"vivero/pkg/apperror"
	"vivero/pkg/catalog/importer"
	repo "vivero/pkg/catalog/repository"
	"vivero/pkg/catalog/repositoryImp"
	"vivero/pkg/catalog/service"
	"vivero/pkg/logger"
	"vivero/pkg/validation"
)

type catalogSvc[T any, PT entities.Product[T]] struct {
	kind  entities.ProductKind
	r     repo.CatalogRepository[T]
	v     *validation.Validator
	build func(importer.Row) T
}

func newCatalog[T any, PT entities.Product[T]](kind entities.ProductKind, r repo.CatalogRepository[T], v *validation.Validator, build func(importer.Row) T) *catalogSvc[T, PT] {
	return &catalogSvc[T, PT]{kind: kind, r: r, v: v, build: build}
}

func NewFungusService(r repo.CatalogRepository[entities.FungusControlProduct], v *validation.Validator) service.CatalogService[entities.FungusControlProduct] {
	return newCatalog[entities.FungusControlProduct](entities.KindFungus, r, v, func(row importer.Row) entities.FungusControlProduct {
		return entities.FungusControlProduct{ControlProduct: row.Product, FungusName: row.Target}
	})
}

func NewPestService(r repo.CatalogRepository[entities.PestControlProduct], v *validation.Validator) service.CatalogService[entities.PestControlProduct] {
	return newCatalog[entities.PestControlProduct](entities.KindPest, r, v, func(row importer.Row) entities.PestControlProduct {
		return entities.PestControlProduct{ControlProduct: row.Product, PestName: row.Target}
	})
}

func NewFertilizerService(r repo.CatalogRepository[entities.FertilizerControlProduct], v *validation.Validator) service.CatalogService[entities.FertilizerControlProduct] {
	return newCatalog[entities.FertilizerControlProduct](entities.KindFertilizer, r, v, func(row importer.Row) entities.FertilizerControlProduct {
		return entities.FertilizerControlProduct{ControlProduct: row.Product}
	})
}

// Services bundles the three catalogs over one database.
type Services struct {
	Fungus     service.CatalogService[entities.FungusControlProduct]
	Pest       service.CatalogService[entities.PestControlProduct]
	Fertilizer service.CatalogService[entities.FertilizerControlProduct]
}

func NewServices(db *gorm.DB, v *validation.Validator) Services {
	return Services{
		Fungus:     NewFungusService(repositoryImp.New[entities.FungusControlProduct](db, entities.KindFungus), v),
		Pest:       NewPestService(repositoryImp.New[entities.PestControlProduct](db, entities.KindPest), v),
		Fertilizer: NewFertilizerService(repositoryImp.New[entities.FertilizerControlProduct](db, entities.KindFertilizer), v),
	}
}

// Importer returns the catalog importer for kind k.
func (s Services) Importer(k entities.ProductKind) (service.Importer, error) {
	switch k {
	case entities.KindFungus:
		return s.Fungus, nil
	case entities.KindPest:
		return s.Pest, nil
	case entities.KindFertilizer:
		return s.Fertilizer, nil
	}
	return nil, fmt.Errorf("unknown product kind %q", k)
}

func (s *catalogSvc[T, PT]) Kind() entities.ProductKind { return s.kind }

func (s *catalogSvc[T, PT]) entity() string { return string(s.kind) + "_control_product" }

// fields runs struct rules only.
func (s *catalogSvc[T, PT]) fields(p *T) (*apperror.ValidationError, error) {
	ve, err := s.v.Struct(s.entity(), p)
	if err != nil {
		return nil, err
	}
	v := PT(p).Base().Value
	switch {
	case v.IsNegative():
		ve.Add("value", "ensure this value is greater than or equal to 0")
	case !v.Equal(v.Round(valueScale)):
		ve.Add("value", fmt.Sprintf("ensure there are no more than %d decimal places", valueScale))
	case v.GreaterThanOrEqual(maxValue):
		ve.Add("value", fmt.Sprintf("ensure there are no more than %d digits before the decimal point", valuePrecision-valueScale))
	}
	return ve, nil
}

// value is stored as decimal(10,2)
const (
	valuePrecision = 10
	valueScale     = 2
)

var maxValue = decimal.New(1, valuePrecision-valueScale)

func (s *catalogSvc[T, PT]) Validate(ctx context.Context, p *T) error {
	ve, err := s.fields(p)
	if err != nil {
		return err
	}
	base := PT(p).Base()
	if base.RegistryID != "" {
		taken, err := s.r.RegistryTaken(ctx, base.RegistryID, base.ProductID)
		if err != nil {
			return err
		}
		if taken {
			ve.Add("registry_id", fmt.Sprintf("%s product with this registry id already exists", s.kind))
		}
	}
	return ve.OrNil()
}

func (s *catalogSvc[T, PT]) Create(ctx context.Context, p *T) error {
	if err := s.r.Create(ctx, p); err != nil {
		return err
	}
	base := PT(p).Base()
	logger.L().Info("catalog.created", "kind", s.kind, "product_id", base.ProductID, "registry_id", base.RegistryID)
	return nil
}

func (s *catalogSvc[T, PT]) ValidateAndCreate(ctx context.Context, p *T) error {
	if err := s.Validate(ctx, p); err != nil {
		return err
	}
	return s.Create(ctx, p)
}

func (s *catalogSvc[T, PT]) Get(ctx context.Context, registryID string) (*T, error) {
	return s.r.FindByRegistryID(ctx, registryID)
}

func (s *catalogSvc[T, PT]) List(ctx context.Context) ([]T, error) {
	return s.r.List(ctx)
}

func (s *catalogSvc[T, PT]) Delete(ctx context.Context, registryID string) error {
	if err := s.r.Delete(ctx, registryID); err != nil {
		return err
	}
	logger.L().Info("catalog.deleted", "kind", s.kind, "registry_id", registryID)
	return nil
}

func (s *catalogSvc[T, PT]) Labors(ctx context.Context, registryID string) ([]entities.Labor, error) {
	return s.r.Labors(ctx, registryID)
}

func (s *catalogSvc[T, PT]) Import(ctx context.Context, rows []importer.Row) (service.ImportResult, error) {
	res := service.ImportResult{Kind: s.kind, Rows: len(rows)}
	ve := apperror.NewValidation("import")
	if len(rows) == 0 {
		ve.Add("_", "file has no product rows")
		return res, ve
	}

	seen := map[string]int{}
	products := make([]T, 0, len(rows))
	for _, row := range rows {
		field := fmt.Sprintf("row %d", row.Line)
		p := s.build(row)
		fe, err := s.fields(&p)
		if err != nil {
			return res, err
		}
		for name, msgs := range fe.Fields {
			for _, m := range msgs {
				ve.Add(field, name+": "+m)
			}
		}
		id := row.Product.RegistryID
		if first, dup := seen[id]; dup && id != "" {
			ve.Add(field, fmt.Sprintf("registry_id: %q repeats row %d", id, first))
		} else {
			seen[id] = row.Line
		}
		products = append(products, p)
	}
	if err := ve.OrNil(); err != nil {
		logger.L().Warn("catalog.import_rejected", "kind", s.kind, "rows", len(rows), "problems", len(ve.Fields))
		return res, err
	}

	created, err := s.r.Upsert(ctx, products)
	if err != nil {
		return res, err
	}
	res.Created = created
	res.Updated = len(products) - created
	logger.L().Info("catalog.imported", "kind", s.kind, "rows", res.Rows, "created", res.Created, "updated", res.Updated)
	return res, nil
}

func (s *catalogSvc[T, PT]) ImportFrom(ctx context.Context, f importer.Format, r io.Reader) (service.ImportResult, error) {
	rows, err := importer.Parse(f, r)
	if err != nil {
		return service.ImportResult{Kind: s.kind}, err
	}
	return s.Import(ctx, rows)
}
