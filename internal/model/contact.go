package model

import "github.com/google/uuid"

// Contact represents the contact details of a registrant. Address, cell phone
// and the emergency fields are optional and may be empty.
type Contact struct {
	ID             uuid.UUID
	Address        string
	CountryID      uuid.UUID
	Phone          string
	CellPhone      string
	EmergencyName  string
	EmergencyPhone string
}

// InitMeta initializes the contact metadata.
func (c *Contact) InitMeta() {
	c.ID = uuid.New()
}
