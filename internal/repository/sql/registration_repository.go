package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/smonzon/registration-service/internal/model"
	"github.com/smonzon/registration-service/internal/repository"
)

// RegistrationRepository writes the four rows of one registration, plus its
// outbox event, in a single transaction. Any failing step rolls back the
// earlier inserts of the same submission and is reported as a
// repository.StepError naming the step that stopped the chain.
type RegistrationRepository struct {
	db *sql.DB
}

// NewRegistrationRepository creates a new RegistrationRepository.
func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// CreateRegistration inserts country, contact, document type and user in
// dependency order, wiring the generated ids into the dependent rows, and
// stores the outbox event built by eventFn from the inserted user. The
// steps are strictly sequential; the first failure ends the chain.
func (tr *RegistrationRepository) CreateRegistration(
	ctx context.Context,
	country *model.Country,
	contact *model.Contact,
	docType *model.DocumentType,
	user *model.User,
	eventFn func(*model.User) (*model.Event, error),
) (*model.User, error) {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	countryRepo := &CountryRepository{db: tr.db, txn: tx}
	contactRepo := &ContactRepository{db: tr.db, txn: tx}
	docTypeRepo := &DocumentTypeRepository{db: tr.db, txn: tx}
	userRepo := &UserRepository{db: tr.db, txn: tx}
	eventRepo := &EventRepository{db: tr.db, txn: tx}

	createdCountry, err := countryRepo.Create(ctx, country)
	if err != nil {
		return nil, rollback(tx, repository.StepCountry, err)
	}

	contact.CountryID = createdCountry.ID
	createdContact, err := contactRepo.Create(ctx, contact)
	if err != nil {
		return nil, rollback(tx, repository.StepContact, err)
	}

	createdDocType, err := docTypeRepo.Create(ctx, docType)
	if err != nil {
		return nil, rollback(tx, repository.StepDocumentType, err)
	}

	user.ContactID = createdContact.ID
	user.DocumentTypeID = createdDocType.ID
	createdUser, err := userRepo.Create(ctx, user)
	if err != nil {
		return nil, rollback(tx, repository.StepUser, err)
	}

	event, err := eventFn(createdUser)
	if err != nil {
		return nil, rollback(tx, repository.StepEvent, err)
	}
	if _, err := eventRepo.Create(ctx, event); err != nil {
		return nil, rollback(tx, repository.StepEvent, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return createdUser, nil
}

func rollback(tx *sql.Tx, step repository.Step, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		return fmt.Errorf("failed to rollback transaction: %w (original error: %v)", rbErr, err)
	}
	return &repository.StepError{Step: step, Err: err}
}
