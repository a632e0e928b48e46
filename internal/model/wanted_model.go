package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WantedEntry struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CitizenId   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Citizen     Citizen        `gorm:"foreignKey:CitizenId;constraint:OnDelete:CASCADE"`
	Reason      string         `gorm:"type:text;not null"`
	DangerLevel int            `gorm:"not null;default:1"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (WantedEntry) TableName() string {
	return "wanted_entries"
}
