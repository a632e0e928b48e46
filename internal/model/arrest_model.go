package model

import (
	"time"

	"github.com/google/uuid"
)

type Arrest struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CitizenId uuid.UUID `gorm:"type:uuid;not null;index"`
	Citizen   Citizen   `gorm:"foreignKey:CitizenId;constraint:OnDelete:CASCADE"`
	OfficerId uuid.UUID `gorm:"type:uuid;not null;index"`
	Officer   Officer   `gorm:"foreignKey:OfficerId"`
	Charges   string    `gorm:"type:text;not null"`
	Notes     string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(20);not null;default:'open'"` // open | processed | released
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Arrest) TableName() string {
	return "arrests"
}
