package mtconfig

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes configuration errors.
type ErrorCode string

const (
	// ErrCodeNotFound indicates the base configuration is missing or could
	// not be decoded and parsed.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeMissingSection indicates an update targeted a section the base
	// configuration does not define.
	ErrCodeMissingSection ErrorCode = "MISSING_SECTION"

	// ErrCodeInvalidInput indicates a tester input could not be normalized
	// to a range.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Error is returned for all fatal configuration problems.
type Error struct {
	Code    ErrorCode
	Message string

	// Path is the file involved, if any.
	Path string

	// Section is the section involved, if any.
	Section string

	Err error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Path != "" {
		msg = fmt.Sprintf("%s (path=%s)", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func hasCode(err error, code ErrorCode) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// IsNotFound reports whether err is a NOT_FOUND configuration error.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsMissingSection reports whether err is a MISSING_SECTION configuration error.
func IsMissingSection(err error) bool { return hasCode(err, ErrCodeMissingSection) }

// IsInvalidInput reports whether err is an INVALID_INPUT configuration error.
func IsInvalidInput(err error) bool { return hasCode(err, ErrCodeInvalidInput) }

func newMissingSection(section string) *Error {
	return &Error{
		Code:    ErrCodeMissingSection,
		Message: fmt.Sprintf("section [%s] not defined in base configuration", section),
		Section: section,
	}
}

// ParseError describes malformed configuration text.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}
