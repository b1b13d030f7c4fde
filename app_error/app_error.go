package app_error

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Kind classifies the validation failures the services can report.
type Kind string

const (
	KindNotFound            Kind = "not_found"
	KindInvalidRange        Kind = "invalid_range"
	KindDuplicateDayNumber  Kind = "duplicate_day_number"
	KindDuplicatePosition   Kind = "duplicate_position"
	KindConstraintViolation Kind = "constraint_violation"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) HTTPStatus() int {
	if e.Kind == KindNotFound {
		return 404
	}
	return 400
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidRange(format string, args ...any) error {
	return &Error{Kind: KindInvalidRange, Message: fmt.Sprintf(format, args...)}
}

func DuplicateDayNumber(format string, args ...any) error {
	return &Error{Kind: KindDuplicateDayNumber, Message: fmt.Sprintf(format, args...)}
}

func DuplicatePosition(format string, args ...any) error {
	return &Error{Kind: KindDuplicatePosition, Message: fmt.Sprintf(format, args...)}
}

func ConstraintViolation(format string, args ...any) error {
	return &Error{Kind: KindConstraintViolation, Message: fmt.Sprintf(format, args...)}
}

func IsKind(err error, kind Kind) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// HTTPStatus maps an error to the status code the handlers should answer with.
func HTTPStatus(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus()
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 404
	}
	return 500
}

func Respond(c *gin.Context, err error) {
	c.JSON(HTTPStatus(err), gin.H{"error": err.Error()})
}
