package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smonzon/registration-service/internal/model"
)

// CountryRepository persists country rows.
type CountryRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

// NewCountryRepository creates a new CountryRepository instance.
func NewCountryRepository(db *sql.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

// getExecutor returns the active executor (transaction if exists, otherwise db)
func (r *CountryRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

// Create inserts a new country row and generates its id.
func (r *CountryRepository) Create(ctx context.Context, country *model.Country) (*model.Country, error) {
	country.InitMeta()

	query := `INSERT INTO countries (id, country_code, country_name)
	          VALUES ($1, $2, $3)`

	stmt, err := r.getExecutor().PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, country.ID, country.CountryCode, country.CountryName)
	if err != nil {
		return nil, fmt.Errorf("failed to insert country: %w", err)
	}

	return country, nil
}
