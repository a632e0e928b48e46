package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateArrestRequest struct {
	CitizenId uuid.UUID `json:"citizen_id" validate:"required"`
	OfficerId uuid.UUID `json:"officer_id" validate:"required"`
	Charges   string    `json:"charges" validate:"required,max=2000"`
	Notes     string    `json:"notes" validate:"max=4000"`
	Events    []string  `json:"events" validate:"omitempty,dive,required,max=64"`
}

type UpdateArrestRequest struct {
	Id      uuid.UUID
	Charges *string  `json:"charges" validate:"omitempty,max=2000"`
	Notes   *string  `json:"notes" validate:"omitempty,max=4000"`
	Status  *string  `json:"status" validate:"omitempty,oneof=open processed released"`
	Events  []string `json:"events" validate:"omitempty,dive,required,max=64"`
}

type ArrestRow struct {
	Id          uuid.UUID  `json:"id"`
	CitizenId   uuid.UUID  `json:"citizen_id"`
	CitizenName string     `json:"citizen_name"`
	OfficerId   uuid.UUID  `json:"officer_id"`
	OfficerName string     `json:"officer_name"`
	Charges     string     `json:"charges"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type CreateWantedRequest struct {
	CitizenId   uuid.UUID `json:"citizen_id" validate:"required"`
	Reason      string    `json:"reason" validate:"required,max=2000"`
	DangerLevel int       `json:"danger_level" validate:"min=1,max=5"`
	Events      []string  `json:"events" validate:"omitempty,dive,required,max=64"`
}

type UpdateWantedRequest struct {
	Id          uuid.UUID
	Reason      *string  `json:"reason" validate:"omitempty,max=2000"`
	DangerLevel *int     `json:"danger_level" validate:"omitempty,min=1,max=5"`
	Events      []string `json:"events" validate:"omitempty,dive,required,max=64"`
}

type WantedRow struct {
	Id          uuid.UUID  `json:"id"`
	CitizenId   uuid.UUID  `json:"citizen_id"`
	CitizenName string     `json:"citizen_name"`
	Reason      string     `json:"reason"`
	DangerLevel int        `json:"danger_level"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

type UpdateCitizenRequest struct {
	Id          uuid.UUID
	FirstName   *string  `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName    *string  `json:"last_name" validate:"omitempty,max=100"`
	DateOfBirth *string  `json:"date_of_birth" validate:"omitempty,max=20"`
	Phone       *string  `json:"phone" validate:"omitempty,max=30"`
	Events      []string `json:"events" validate:"omitempty,dive,required,max=64"`
}

type RecordMutationResponse struct {
	Id     uuid.UUID `json:"id"`
	Events []string  `json:"events"`
}

// PublishMutationMessage is the payload queued after a record changes.
type PublishMutationMessage struct {
	Events []string  `json:"events"`
	Source string    `json:"source"`
	At     time.Time `json:"at"`
}
