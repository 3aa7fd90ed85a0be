package service

import (
	"context"
	"io"

	"vivero/entities"
	"vivero/pkg/catalog/importer"
)

// CatalogService serves one control-product catalog.
type CatalogService[T any] interface {
	Importer
	Validate(ctx context.Context, p *T) error
	Create(ctx context.Context, p *T) error
	ValidateAndCreate(ctx context.Context, p *T) error
	Get(ctx context.Context, registryID string) (*T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, registryID string) error
	Labors(ctx context.Context, registryID string) ([]entities.Labor, error)
	// Import validates every row and stores none of them if any row fails.
	Import(ctx context.Context, rows []importer.Row) (ImportResult, error)
}

// Importer is the kind-agnostic part used by the CLI and the upload endpoint.
type Importer interface {
	Kind() entities.ProductKind
	ImportFrom(ctx context.Context, f importer.Format, r io.Reader) (ImportResult, error)
}

type ImportResult struct {
	Kind    entities.ProductKind `json:"kind"`
	Rows    int                  `json:"rows"`
	Created int                  `json:"created"`
	Updated int                  `json:"updated"`
}
