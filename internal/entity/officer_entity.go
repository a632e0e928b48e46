package entity

import (
	"time"

	"github.com/google/uuid"
)

type Officer struct {
	Id        uuid.UUID
	Callsign  string
	Name      string
	Rank      string
	Badge     string
	Active    bool
	CreatedAt time.Time
}
