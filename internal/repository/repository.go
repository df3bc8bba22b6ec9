package repository

// Step identifies which insert of the registration chain a store error
// belongs to.
type Step string

const (
	StepCountry      Step = "country"
	StepContact      Step = "contact"
	StepDocumentType Step = "document_type"
	StepUser         Step = "user"
	StepEvent        Step = "event"
)

// StepError reports the failing insert of a registration write. The whole
// transaction is rolled back when it is returned; Step only tells the caller
// where the chain stopped.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return "registration " + string(e.Step) + " insert failed: " + e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// UniqueConstraintError represents a database unique constraint violation error.
type UniqueConstraintError struct {
	Detail string
}

func (u *UniqueConstraintError) Error() string {
	return "resource must be unique: " + u.Detail
}
