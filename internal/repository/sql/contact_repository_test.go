package sql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/smonzon/registration-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountryRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewCountryRepository(db)

	mock.ExpectPrepare("INSERT INTO countries").
		ExpectExec().
		WithArgs(sqlmock.AnyArg(), "CO", "Colombia").
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.Create(context.Background(), &model.Country{
		CountryCode: "CO",
		CountryName: "Colombia",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewContactRepository(db)
	countryID := uuid.New()

	mock.ExpectPrepare("INSERT INTO contacts").
		ExpectExec().
		WithArgs(sqlmock.AnyArg(), "Calle 1", countryID, "555-0100", "555-0101", "Luis", "555-0102").
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.Create(context.Background(), &model.Contact{
		Address:        "Calle 1",
		CountryID:      countryID,
		Phone:          "555-0100",
		CellPhone:      "555-0101",
		EmergencyName:  "Luis",
		EmergencyPhone: "555-0102",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentTypeRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDocumentTypeRepository(db)

	mock.ExpectPrepare("INSERT INTO document_types").
		ExpectExec().
		WithArgs(sqlmock.AnyArg(), "passport", "AB123456").
		WillReturnResult(sqlmock.NewResult(1, 1))

	created, err := repo.Create(context.Background(), &model.DocumentType{
		Name:     "passport",
		Document: "AB123456",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
