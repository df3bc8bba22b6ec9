package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smonzon/registration-service/internal/model"
)

// DocumentTypeRepository persists document type rows.
type DocumentTypeRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

// NewDocumentTypeRepository creates a new DocumentTypeRepository instance.
func NewDocumentTypeRepository(db *sql.DB) *DocumentTypeRepository {
	return &DocumentTypeRepository{db: db}
}

// getExecutor returns the active executor (transaction if exists, otherwise db)
func (r *DocumentTypeRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

// Create inserts a new document type row and generates its id.
func (r *DocumentTypeRepository) Create(ctx context.Context, docType *model.DocumentType) (*model.DocumentType, error) {
	docType.InitMeta()

	query := `INSERT INTO document_types (id, name, document)
	          VALUES ($1, $2, $3)`

	stmt, err := r.getExecutor().PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, docType.ID, docType.Name, docType.Document)
	if err != nil {
		return nil, fmt.Errorf("failed to insert document type: %w", err)
	}

	return docType, nil
}
