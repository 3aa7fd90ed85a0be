package entities

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Labor is one recorded work event on a nursery.
type Labor struct {
	LaborID     uint      `gorm:"primaryKey" json:"labor_id"`
	Date        time.Time `gorm:"type:date;not null;index" json:"date" validate:"required"`
	Description string    `gorm:"type:text;not null" json:"description" validate:"required,max=500"`

	NurseryID uint     `gorm:"not null;index" json:"nursery_id" validate:"required"`
	Nursery   *Nursery `gorm:"constraint:OnDelete:CASCADE" json:"nursery,omitempty" validate:"-"`

	FungusProducts     []FungusControlProduct     `gorm:"many2many:labor_fungus_products;joinForeignKey:LaborID;joinReferences:ProductID;constraint:OnDelete:CASCADE" json:"fungus_products,omitempty" validate:"-"`
	PestProducts       []PestControlProduct       `gorm:"many2many:labor_pest_products;joinForeignKey:LaborID;joinReferences:ProductID;constraint:OnDelete:CASCADE" json:"pest_products,omitempty" validate:"-"`
	FertilizerProducts []FertilizerControlProduct `gorm:"many2many:labor_fertilizer_products;joinForeignKey:LaborID;joinReferences:ProductID;constraint:OnDelete:CASCADE" json:"fertilizer_products,omitempty" validate:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l Labor) String() string {
	return fmt.Sprintf("Labor %s en %s", l.Description, FormatDate(l.Date))
}

// BeforeSave keeps only the calendar day so range filters compare cleanly.
func (l *Labor) BeforeSave(*gorm.DB) error {
	if !l.Date.IsZero() {
		l.Date = DateOnly(l.Date)
	}
	return nil
}

// ProductAssociation returns the Labor association name holding products of kind k.
func ProductAssociation(k ProductKind) (string, error) {
	switch k {
	case KindFungus:
		return "FungusProducts", nil
	case KindPest:
		return "PestProducts", nil
	case KindFertilizer:
		return "FertilizerProducts", nil
	}
	return "", fmt.Errorf("unknown product kind %q", k)
}
