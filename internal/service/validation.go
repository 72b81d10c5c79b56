package service

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cloudstore/internal/domain"
)

// AsValidationError converts ozzo-validation results into a
// domain.ValidationError carrying per-field reasons. nil stays nil.
func AsValidationError(err error) error {
	if err == nil {
		return nil
	}

	var internal validation.InternalError
	if errors.As(err, &internal) {
		return err
	}

	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		fields := make(map[string]string, len(fieldErrs))
		for field, fieldErr := range fieldErrs {
			if fieldErr != nil {
				fields[field] = fieldErr.Error()
			}
		}
		return &domain.ValidationError{Fields: fields}
	}

	return &domain.ValidationError{Message: err.Error()}
}
