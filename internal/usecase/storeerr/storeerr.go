// Package storeerr translates repository errors for the usecases.
package storeerr

import (
	"errors"

	"smartlenderup-backend/internal/domain/apperr"

	"gorm.io/gorm"
)

// Map turns a missing row into notFound and any other store failure into an
// apperr.ErrRemoteCall. Domain and validation errors pass through unchanged.
func Map(err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	if errors.Is(err, apperr.ErrRemoteCall) {
		return err
	}
	if _, ok := apperr.AsValidation(err); ok {
		return err
	}
	return apperr.Remote(err)
}

// IsDuplicate reports a unique index violation.
func IsDuplicate(err error) bool { return errors.Is(err, gorm.ErrDuplicatedKey) }

// IsNotFound reports a missing row.
func IsNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
