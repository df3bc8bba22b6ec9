package model

import "github.com/google/uuid"

// DocumentType represents an identity document record. Document holds the
// document number; Name holds the document kind (DNI, passport, ...).
type DocumentType struct {
	ID       uuid.UUID
	Name     string
	Document string
}

// InitMeta initializes the document type metadata.
func (d *DocumentType) InitMeta() {
	d.ID = uuid.New()
}
