// Package apperror defines the error taxonomy shared by services, repositories
// and HTTP handlers, so callers can branch on error kind with errors.Is instead
// of matching message strings.
package apperror

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Sentinel kinds. Services wrap these with context; handlers map them to
// HTTP status codes.
var (
	// ErrValidation marks a payload that failed schema checks. Never retried.
	ErrValidation = errors.New("validation failed")
	// ErrDecryption marks ciphertext that did not decrypt under the configured
	// key (wrong key or corruption). Surfaced, never masked as an empty value.
	ErrDecryption = errors.New("decryption failed")
	// ErrNotFound marks an operation targeting a record absent from the
	// caller's scope.
	ErrNotFound = errors.New("record not found")
	// ErrUnauthorized marks a request whose identity could not be verified.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrBackend marks a failed call to the document database itself.
	ErrBackend = errors.New("backend failure")
)

// FieldError pinpoints a single invalid field within a payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries per-field detail so callers (and bulk-import
// reports) can act on exactly which fields were rejected.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) hold for any ValidationError.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var fieldMessages = map[string]string{
	"required":  "is required",
	"min":       "is too short",
	"max":       "is too long",
	"dive":      "contains an invalid element",
	"emailuser": "must be a valid email address when it contains '@'",
}

// FromValidator flattens validator/v10 results into a ValidationError with one
// entry per failing field. Non-validator errors are wrapped as a generic
// validation failure so malformed input never surfaces as a backend error.
func FromValidator(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []FieldError{{Field: "payload", Message: err.Error()}}}
	}
	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Tag()]
		if !ok {
			msg = "is invalid"
		}
		if fe.Tag() == "min" {
			msg = fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		fields = append(fields, FieldError{Field: fieldName(fe), Message: msg})
	}
	return &ValidationError{Fields: fields}
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace looks like "Credential.Username"; keep the leaf,
	// lower-cased to match the JSON wire names.
	ns := fe.StructNamespace()
	if i := strings.LastIndex(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	if ns == "" {
		return ns
	}
	return strings.ToLower(ns[:1]) + ns[1:]
}

// Validationf builds a single-field ValidationError.
func Validationf(field, format string, args ...interface{}) error {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: fmt.Sprintf(format, args...)}}}
}
