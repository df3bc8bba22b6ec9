package repository

import (
	"errors"
	"log/slog"
)

const (
	IDField             QueryField = "id"
	EmailField          QueryField = "email"
	DocumentNumberField QueryField = "document_number"
	CreatedAtField      QueryField = "created_at"
)

// Query carries filter values and pagination state for listing queries.
type Query struct {
	Values map[QueryField]string

	Limit int

	Paginator *Paginator
}

type QueryField string

func NewQuery() *Query {
	return &Query{
		Values: map[QueryField]string{},
	}
}

func (q *Query) With(field QueryField, val string) *Query {
	q.Values[field] = val
	return q
}

// ApplyPagination sets the query limit and decodes the page token into a
// paginator. An empty token means the first page.
func (q *Query) ApplyPagination(limit int32, token string) error {
	queryLimit := DefaultPaginationLimit
	if limit > 0 {
		queryLimit = min(maxPaginationLimit, int(limit))
	}
	q.Limit = queryLimit

	if token == "" {
		return nil
	}

	paginator, err := DecodePageToken(token)
	if err != nil {
		slog.Error("failed to decode page token", slog.Any("err", err), slog.String("token", token))
		return errors.New("invalid page token")
	}
	q.Paginator = paginator
	return nil
}
