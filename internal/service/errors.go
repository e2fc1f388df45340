package service

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner is returned when a mutation targets a record owned by
	// someone else.
	ErrNotOwner = errors.New("read-only: you cannot edit another user's account")
	// ErrNotVisible is returned when the viewer's relationship to the owner
	// does not allow reading the record.
	ErrNotVisible = errors.New("profile not visible")
)

// ValidationError reports rejected input. Handlers render it as a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErr(msg string) error { return &ValidationError{Msg: msg} }

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
