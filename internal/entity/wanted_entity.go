package entity

import (
	"time"

	"github.com/google/uuid"
)

type WantedEntry struct {
	Id          uuid.UUID
	CitizenId   uuid.UUID
	CitizenName string
	Reason      string
	DangerLevel int
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
