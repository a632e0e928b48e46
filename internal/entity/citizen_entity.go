package entity

import (
	"time"

	"github.com/google/uuid"
)

type Citizen struct {
	Id          uuid.UUID
	FirstName   string
	LastName    string
	DateOfBirth string
	Phone       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func (c *Citizen) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
