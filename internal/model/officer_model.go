package model

import (
	"time"

	"github.com/google/uuid"
)

type Officer struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Callsign  string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(150);not null;index"`
	Rank      string    `gorm:"type:varchar(50)"`
	Badge     string    `gorm:"type:varchar(20);index"`
	Active    bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Officer) TableName() string {
	return "officers"
}
