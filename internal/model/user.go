package model

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered user. Email and DocumentNumber are unique
// business keys. Password stores a bcrypt hash, never the plain text.
// DocumentType duplicates the document type name so the listing can be
// served without a join.
type User struct {
	ID             uuid.UUID
	Name           string
	Lastname       string
	Email          string
	Password       string
	DocumentNumber string
	DocumentType   string
	DocumentTypeID uuid.UUID
	ContactID      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// InitMeta initializes the user metadata including ID and timestamps.
func (u *User) InitMeta() {
	u.ID = uuid.New()
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
}
