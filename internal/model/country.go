package model

import "github.com/google/uuid"

// Country represents the country row referenced by a contact record.
type Country struct {
	ID          uuid.UUID
	CountryCode string
	CountryName string
}

// InitMeta initializes the country metadata.
func (c *Country) InitMeta() {
	c.ID = uuid.New()
}
