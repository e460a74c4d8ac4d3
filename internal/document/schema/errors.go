package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownEntity    = errors.New("unknown entity type")
	ErrMalformedPayload = errors.New("malformed payload")
)

// FieldError names one offending field of a payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a payload does not satisfy its entity
// schema. It lists every failing field.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, "; "))
}
