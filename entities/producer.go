package entities

import "time"

// Producer is the person who owns one or more farms.
type Producer struct {
	ProducerID       uint   `gorm:"primaryKey" json:"producer_id"`
	IdentityDocument string `gorm:"size:20;uniqueIndex;not null" json:"identity_document" validate:"required,max=20"`
	FirstName        string `gorm:"size:100;not null" json:"first_name" validate:"required,max=100"`
	LastName         string `gorm:"size:100;not null" json:"last_name" validate:"required,max=100"`
	Phone            string `gorm:"size:20" json:"phone" validate:"omitempty,max=20"`
	Email            string `gorm:"size:254" json:"email" validate:"omitempty,email,max=254"`

	Farms []Farm `gorm:"foreignKey:ProducerID;constraint:OnDelete:CASCADE" json:"farms,omitempty" validate:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p Producer) String() string { return p.FirstName + " " + p.LastName }
