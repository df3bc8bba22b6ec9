package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/smonzon/registration-service/internal/metrics"
	"github.com/smonzon/registration-service/internal/model"
	"github.com/smonzon/registration-service/internal/repository"
	reposql "github.com/smonzon/registration-service/internal/repository/sql"
	"github.com/smonzon/registration-service/internal/sqs"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrDuplicateRegistration is returned when a user with the same email or
	// document number already exists. No rows are written in that case.
	ErrDuplicateRegistration = errors.New("a user with this email or document number already exists")

	// ErrDuplicateCheck is returned when the duplicate check itself fails. It
	// is never collapsed into "no duplicate found".
	ErrDuplicateCheck = errors.New("duplicate check failed")

	// ErrCountryInsert, ErrContactInsert, ErrDocumentInsert and ErrUserInsert
	// name the insert that stopped the registration chain. All rows of the
	// failed submission are rolled back.
	ErrCountryInsert  = errors.New("failed to create country record")
	ErrContactInsert  = errors.New("failed to create contact record")
	ErrDocumentInsert = errors.New("failed to create document type record")
	ErrUserInsert     = errors.New("failed to create user record")
)

// RegistrationInput is the validated registration payload. Field validation
// (required fields, minimum lengths, email format) happens at the HTTP
// binding layer before this struct is built.
type RegistrationInput struct {
	Name           string
	LastName       string
	Email          string
	Password       string
	DocumentType   string
	DocumentNumber string
	Address        string
	CountryCode    string
	CountryName    string
	Phone          string
	CellPhone      string
	EmergencyName  string
	EmergencyPhone string
}

// UserStore is the read side of the users table used by the workflow.
type UserStore interface {
	FindDuplicates(ctx context.Context, email, documentNumber string) ([]*model.User, error)
	List(ctx context.Context, query repository.Query) ([]*model.User, error)
}

// RegistrationStore writes one registration atomically.
type RegistrationStore interface {
	CreateRegistration(ctx context.Context, country *model.Country, contact *model.Contact,
		docType *model.DocumentType, user *model.User,
		eventFn func(*model.User) (*model.Event, error)) (*model.User, error)
}

// RegistrationService orchestrates the registration workflow: duplicate
// check, then the four-row insert chain plus an outbox event in a single
// transaction. No step is retried; a resubmission restarts from the check.
type RegistrationService struct {
	users         UserStore
	registrations RegistrationStore
}

// NewRegistrationService creates a RegistrationService backed by the given stores.
func NewRegistrationService(users UserStore, registrations RegistrationStore) *RegistrationService {
	return &RegistrationService{
		users:         users,
		registrations: registrations,
	}
}

// Register persists one new registrant. On success it returns the created
// user with the generated ids wired into ContactID and DocumentTypeID.
func (rs *RegistrationService) Register(ctx context.Context, input RegistrationInput) (*model.User, error) {
	existing, err := rs.users.FindDuplicates(ctx, input.Email, input.DocumentNumber)
	if err != nil {
		metrics.RegistrationsFailed.Inc()
		return nil, fmt.Errorf("%w: %v", ErrDuplicateCheck, err)
	}
	if len(existing) > 0 {
		metrics.DuplicateRegistrations.Inc()
		return nil, ErrDuplicateRegistration
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		metrics.RegistrationsFailed.Inc()
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	country := &model.Country{
		CountryCode: input.CountryCode,
		CountryName: input.CountryName,
	}
	contact := &model.Contact{
		Address:        input.Address,
		Phone:          input.Phone,
		CellPhone:      input.CellPhone,
		EmergencyName:  input.EmergencyName,
		EmergencyPhone: input.EmergencyPhone,
	}
	docType := &model.DocumentType{
		Name:     input.DocumentType,
		Document: input.DocumentNumber,
	}
	user := &model.User{
		Name:           input.Name,
		Lastname:       input.LastName,
		Email:          input.Email,
		Password:       string(hashed),
		DocumentNumber: input.DocumentNumber,
		DocumentType:   input.DocumentType,
	}

	created, err := rs.registrations.CreateRegistration(ctx, country, contact, docType, user, registeredEvent)
	if err != nil {
		return nil, rs.mapStoreError(err)
	}

	metrics.RegistrationsCreated.Inc()
	return created, nil
}

// ListUsers retrieves registered users newest first.
func (rs *RegistrationService) ListUsers(ctx context.Context, query repository.Query) ([]*model.User, error) {
	return rs.users.List(ctx, query)
}

func registeredEvent(user *model.User) (*model.Event, error) {
	return reposql.NewEvent(model.EventTypeUserRegistered, sqs.UserMessage{
		Action: "registered",
		UserID: user.ID.String(),
		Email:  user.Email,
		Name:   user.Name,
	})
}

func (rs *RegistrationService) mapStoreError(err error) error {
	// A unique violation on the user insert means another submission won the
	// race after our check passed; report it as a duplicate, not a failure.
	var uniqueErr *repository.UniqueConstraintError
	if errors.As(err, &uniqueErr) {
		metrics.DuplicateRegistrations.Inc()
		return fmt.Errorf("%w: %v", ErrDuplicateRegistration, uniqueErr.Detail)
	}

	metrics.RegistrationsFailed.Inc()

	var stepErr *repository.StepError
	if errors.As(err, &stepErr) {
		switch stepErr.Step {
		case repository.StepCountry:
			return fmt.Errorf("%w: %v", ErrCountryInsert, stepErr.Err)
		case repository.StepContact:
			return fmt.Errorf("%w: %v", ErrContactInsert, stepErr.Err)
		case repository.StepDocumentType:
			return fmt.Errorf("%w: %v", ErrDocumentInsert, stepErr.Err)
		case repository.StepUser, repository.StepEvent:
			return fmt.Errorf("%w: %v", ErrUserInsert, stepErr.Err)
		}
	}
	return err
}
