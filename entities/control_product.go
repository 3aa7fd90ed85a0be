package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ProductKind string

const (
	KindFungus     ProductKind = "fungus"
	KindPest       ProductKind = "pest"
	KindFertilizer ProductKind = "fertilizer"
)

func ParseProductKind(s string) (ProductKind, error) {
	switch k := ProductKind(s); k {
	case KindFungus, KindPest, KindFertilizer:
		return k, nil
	}
	return "", fmt.Errorf("unknown product kind %q (fungus|pest|fertilizer)", s)
}

// ControlProduct holds the columns shared by the three catalogs.
// ApplicationFrequency and WithdrawalPeriod are in days.
type ControlProduct struct {
	ProductID            uint            `gorm:"primaryKey" json:"product_id"`
	RegistryID           string          `gorm:"size:50;uniqueIndex;not null" json:"registry_id" validate:"required,max=50"`
	ProductName          string          `gorm:"size:200;not null" json:"product_name" validate:"required,max=200"`
	ApplicationFrequency int             `gorm:"not null;default:0" json:"application_frequency" validate:"gte=0"`
	Value                decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"value"`
	WithdrawalPeriod     int             `gorm:"not null;default:0" json:"withdrawal_period" validate:"gte=0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *ControlProduct) Base() *ControlProduct { return p }

func (p ControlProduct) String() string {
	return fmt.Sprintf("%s (%s)", p.ProductName, p.RegistryID)
}

type FungusControlProduct struct {
	ControlProduct
	FungusName string `gorm:"size:200;not null" json:"fungus_name" validate:"required,max=200"`

	Labors []Labor `gorm:"many2many:labor_fungus_products;joinForeignKey:ProductID;joinReferences:LaborID;constraint:OnDelete:CASCADE" json:"labors,omitempty" validate:"-"`
}

type PestControlProduct struct {
	ControlProduct
	PestName string `gorm:"size:200;not null" json:"pest_name" validate:"required,max=200"`

	Labors []Labor `gorm:"many2many:labor_pest_products;joinForeignKey:ProductID;joinReferences:LaborID;constraint:OnDelete:CASCADE" json:"labors,omitempty" validate:"-"`
}

type FertilizerControlProduct struct {
	ControlProduct

	Labors []Labor `gorm:"many2many:labor_fertilizer_products;joinForeignKey:ProductID;joinReferences:LaborID;constraint:OnDelete:CASCADE" json:"labors,omitempty" validate:"-"`
}

// NewProductModel returns an empty model pointer for the catalog of kind k.
func NewProductModel(k ProductKind) (any, error) {
	switch k {
	case KindFungus:
		return &FungusControlProduct{}, nil
	case KindPest:
		return &PestControlProduct{}, nil
	case KindFertilizer:
		return &FertilizerControlProduct{}, nil
	}
	return nil, fmt.Errorf("unknown product kind %q", k)
}

// Product is satisfied by pointers to the three catalog models.
type Product[T any] interface {
	*T
	Base() *ControlProduct
}
