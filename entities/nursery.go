package entities

import (
	"fmt"
	"time"
)

// Nursery is a cultivation unit inside a farm. Code is unique across all farms.
type Nursery struct {
	NurseryID uint   `gorm:"primaryKey" json:"nursery_id"`
	Code      string `gorm:"size:50;uniqueIndex;not null" json:"code" validate:"required,max=50"`
	CropType  string `gorm:"size:100;not null" json:"crop_type" validate:"required,max=100"`

	FarmID uint  `gorm:"not null;index" json:"farm_id" validate:"required"`
	Farm   *Farm `gorm:"constraint:OnDelete:CASCADE" json:"farm,omitempty" validate:"-"`

	Labors []Labor `gorm:"foreignKey:NurseryID;constraint:OnDelete:CASCADE" json:"labors,omitempty" validate:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (n Nursery) String() string {
	return fmt.Sprintf("Vivero %s - %s", n.Code, n.CropType)
}
