package httperr

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// --------------------------------------------------
// Core workflow error taxonomy
// --------------------------------------------------

// NotFoundError always names the missing entity (car, customer, user,
// contract, document).
type NotFoundError struct {
	Entity  string
	Message string
}

func (e NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Entity)
}

func ErrNotFound(entity, message string) error {
	return NotFoundError{Entity: entity, Message: message}
}

// ForbiddenError marks an ownership violation on a mutating call.
type ForbiddenError struct {
	Message string
}

func (e ForbiddenError) Error() string {
	return e.Message
}

func ErrForbidden(message string) error {
	return ForbiddenError{Message: message}
}

// ValidationError carries a stable code plus a human message.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func ErrValidation(code, message string) error {
	return ValidationError{Code: code, Message: message}
}

// ErrTransactionConsistency means a post-write re-read inside the same
// transaction returned nothing. That is a bug-class condition, surfaced
// as a 500 and never blamed on the caller.
var ErrTransactionConsistency = errors.New("transaction re-read returned no contract")

// WriteError maps a use-case error onto the HTTP response.
func WriteError(c *gin.Context, err error) {
	var nf NotFoundError
	var fb ForbiddenError
	var ve ValidationError
	var be BusinessError

	switch {
	case errors.As(err, &nf):
		NotFound(c, nf.Entity+"_not_found", nf.Error())
	case errors.As(err, &fb):
		Forbidden(c, "forbidden", fb.Message)
	case errors.As(err, &ve):
		BadRequest(c, ve.Code, ve.Message)
	case errors.As(err, &be):
		BadRequest(c, be.Code, be.Code)
	case errors.Is(err, ErrTransactionConsistency):
		Internal(c, "transaction_failed", "계약 정보를 찾을 수 없습니다")
	default:
		Internal(c, "internal_error", "internal error")
	}
}
