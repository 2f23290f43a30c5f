package models

import (
	"errors"
)

var (
	ErrGeneral              = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound     = errors.New("there is no")
	ErrReferenceInvalid     = errors.New("a resource ID you specified does not identify an existing resource")
	ErrEmailInUse           = errors.New("a user with this email address already exists")
	ErrBudgetMonthNotUnique = errors.New("you can only have one budget per month")
)

// ValidationError is returned when a resource fails its field validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
