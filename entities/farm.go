package entities

import (
	"fmt"
	"time"
)

type Farm struct {
	FarmID          uint   `gorm:"primaryKey" json:"farm_id"`
	CadastralNumber string `gorm:"size:50;uniqueIndex;not null" json:"cadastral_number" validate:"required,max=50"`
	Municipality    string `gorm:"size:100;not null" json:"municipality" validate:"required,max=100"`

	ProducerID uint      `gorm:"not null;index" json:"producer_id" validate:"required"`
	Producer   *Producer `gorm:"constraint:OnDelete:CASCADE" json:"producer,omitempty" validate:"-"`

	Nurseries []Nursery `gorm:"foreignKey:FarmID;constraint:OnDelete:CASCADE" json:"nurseries,omitempty" validate:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f Farm) String() string {
	return fmt.Sprintf("Finca %s - %s", f.CadastralNumber, f.Municipality)
}
