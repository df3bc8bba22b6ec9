package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smonzon/registration-service/internal/model"
)

// ContactRepository persists contact rows.
type ContactRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

// NewContactRepository creates a new ContactRepository instance.
func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// getExecutor returns the active executor (transaction if exists, otherwise db)
func (r *ContactRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

// Create inserts a new contact row. CountryID must already reference a
// committed or same-transaction country row.
func (r *ContactRepository) Create(ctx context.Context, contact *model.Contact) (*model.Contact, error) {
	contact.InitMeta()

	query := `INSERT INTO contacts (id, address, country_id, phone, cell_phone, emergency_name, emergency_phone)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	stmt, err := r.getExecutor().PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, contact.ID, contact.Address, contact.CountryID, contact.Phone, contact.CellPhone, contact.EmergencyName, contact.EmergencyPhone)
	if err != nil {
		return nil, fmt.Errorf("failed to insert contact: %w", err)
	}

	return contact, nil
}
