package sql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/smonzon/registration-service/internal/model"
	"github.com/smonzon/registration-service/internal/repository"
)

// UserRepository persists and queries user rows.
type UserRepository struct {
	db  *sql.DB
	txn *sql.Tx
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// getExecutor returns the active executor (transaction if exists, otherwise db)
func (r *UserRepository) getExecutor() dbExecutor {
	if r.txn != nil {
		return r.txn
	}
	return r.db
}

// Create inserts a new user row. A unique violation on email or
// document_number is reported as a repository.UniqueConstraintError so the
// caller can treat it as a duplicate registration rather than a plain
// insert failure.
func (r *UserRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	user.InitMeta()

	query := `INSERT INTO users (id, name, lastname, email, password, document_number, document_type, document_type_id, contact_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	stmt, err := r.getExecutor().PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, user.ID, user.Name, user.Lastname, user.Email, user.Password,
		user.DocumentNumber, user.DocumentType, user.DocumentTypeID, user.ContactID, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqUniqueViolationErrCode {
			return nil, &repository.UniqueConstraintError{Detail: pqErr.Detail}
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

// FindDuplicates returns every user whose email or document number matches
// one of the given values. An error here must surface to the caller; it is
// never the same as "no duplicates".
func (r *UserRepository) FindDuplicates(ctx context.Context, email, documentNumber string) ([]*model.User, error) {
	query := `SELECT id, name, lastname, email, password, document_number, document_type, document_type_id, contact_id, created_at, updated_at
	          FROM users WHERE email = $1 OR document_number = $2`

	stmt, err := r.getExecutor().PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, email, documentNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// List retrieves users ordered by created_at descending, applying the
// optional filters and cursor pagination of the query.
func (r *UserRepository) List(ctx context.Context, query repository.Query) ([]*model.User, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT id, name, lastname, email, password, document_number, document_type, document_type_id, contact_id, created_at, updated_at FROM users WHERE 1=1`)

	var args []interface{}
	argIndex := 1

	for field, value := range query.Values {
		switch field {
		case repository.EmailField:
			queryBuilder.WriteString(fmt.Sprintf(" AND email = $%d", argIndex))
			args = append(args, value)
			argIndex++
		case repository.DocumentNumberField:
			queryBuilder.WriteString(fmt.Sprintf(" AND document_number = $%d", argIndex))
			args = append(args, value)
			argIndex++
		}
	}

	if query.Paginator != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", argIndex, argIndex+1))
		args = append(args, query.Paginator.LastCreatedAt, query.Paginator.LastID)
		argIndex += 2
	}

	// Order by created_at DESC, id DESC for consistent pagination
	queryBuilder.WriteString(" ORDER BY created_at DESC, id DESC")

	limit := query.Limit
	if limit <= 0 {
		limit = repository.DefaultPaginationLimit
	}
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argIndex))
	args = append(args, limit)

	stmt, err := r.getExecutor().PrepareContext(ctx, queryBuilder.String())
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func scanUsers(rows *sql.Rows) ([]*model.User, error) {
	var users []*model.User
	for rows.Next() {
		var user model.User
		err := rows.Scan(&user.ID, &user.Name, &user.Lastname, &user.Email, &user.Password,
			&user.DocumentNumber, &user.DocumentType, &user.DocumentTypeID, &user.ContactID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return users, nil
}
