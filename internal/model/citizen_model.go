package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Citizen struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	FirstName   string         `gorm:"type:varchar(100);not null;index:idx_citizens_name,priority:1"`
	LastName    string         `gorm:"type:varchar(100);not null;index:idx_citizens_name,priority:2"`
	DateOfBirth string         `gorm:"type:varchar(20)"`
	Phone       string         `gorm:"type:varchar(30);index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Citizen) TableName() string {
	return "citizens"
}
