package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ArrestStatusOpen      = "open"
	ArrestStatusProcessed = "processed"
	ArrestStatusReleased  = "released"
)

type Arrest struct {
	Id          uuid.UUID
	CitizenId   uuid.UUID
	CitizenName string // filled when parties are preloaded
	OfficerId   uuid.UUID
	OfficerName string
	Charges     string
	Notes       string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
