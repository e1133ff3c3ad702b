package service

import (
	"errors"
	"fmt"
	"strings"

	"go-dairy-admin/pkg/validator"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrStockNotFound     = errors.New("stock record not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrDuplicateProduct  = errors.New("product name already exists")
	ErrInsufficientStock = errors.New("insufficient stock remaining")

	ErrInvalidInput = errors.New("validation failed")
	ErrInvalidLine  = errors.New("invalid sale line")
	ErrInvalidRange = errors.New("invalid report range")
	ErrInvalidDate  = errors.New("invalid date")
)

// ValidationError wraps one of the sentinel errors above with a readable detail.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// validationFailed turns validator output into a ValidationError, nil when there is none.
func validationFailed(errs []*validator.ErrorResponse) error {
	if len(errs) == 0 {
		return nil
	}
	details := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := fmt.Sprintf("field '%s' failed on tag '%s'", e.FailedField, e.Tag)
		if e.Value != "" {
			msg += fmt.Sprintf(" (%s)", e.Value)
		}
		details = append(details, msg)
	}
	return &ValidationError{Err: ErrInvalidInput, Details: strings.Join(details, "; ")}
}

// notFound maps gorm's missing-row error onto a domain sentinel.
func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
