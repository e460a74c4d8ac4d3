package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lexdesk/lexdesk/backend/go-services/internal/document"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report JSON names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate decodes raw into the entity's model, fills defaults, checks
// constraints and returns the record to persist.
func (r *Registry) Validate(entityType string, raw []byte) (document.Record, error) {
	e, ok := r.entities[entityType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, entityType)
	}
	m := e.newModel()
	if err := decode(raw, m); err != nil {
		var fe *FieldError
		if errors.As(err, &fe) {
			return nil, &ValidationError{Entity: e.Name, Fields: []FieldError{*fe}}
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Entity = e.Name
		}
		return nil, err
	}
	m.ApplyDefaults()

	if err := r.validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validate %s: %w", e.Name, err)
		}
		out := &ValidationError{Entity: e.Name}
		for _, fe := range verrs {
			out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: describe(fe)})
		}
		return nil, out
	}
	return document.FromModel(m, r.now())
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

func decode(raw []byte, into any) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return fmt.Errorf("%w: empty body", ErrMalformedPayload)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return classify(err)
	}
	if err := checkFields(fields, into); err != nil {
		return err
	}
	if err := json.Unmarshal(trimmed, into); err != nil {
		return classify(err)
	}
	return nil
}

// checkFields inspects each present key before the struct decode. Fields
// holding a plain value (the enums, whose defaults are pre-filled) reject an
// explicit null, which would otherwise leave the default in place. Fields
// with custom decoding are decoded on their own so errors carry the field
// name.
func checkFields(fields map[string]json.RawMessage, into any) error {
	t := reflect.TypeOf(into).Elem()
	out := &ValidationError{}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		v, ok := fields[name]
		if !ok || name == "" || name == "-" {
			continue
		}
		isNull := bytes.Equal(bytes.TrimSpace(v), []byte("null"))
		if isNull {
			if sf.Type.Kind() == reflect.String {
				out.Fields = append(out.Fields, FieldError{Field: name, Message: "must not be null"})
			}
			continue
		}
		base := sf.Type
		if base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		if reflect.PointerTo(base).Implements(unmarshalerType) {
			if err := json.Unmarshal(v, reflect.New(base).Interface()); err != nil {
				out.Fields = append(out.Fields, FieldError{Field: name, Message: err.Error()})
			}
		}
	}
	if len(out.Fields) > 0 {
		return out
	}
	return nil
}

func classify(err error) error {
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	var typ *json.UnmarshalTypeError
	if errors.As(err, &typ) {
		field := typ.Field
		if field == "" {
			field = "body"
		}
		return &FieldError{Field: field, Message: fmt.Sprintf("expected %s, got %s", typ.Type, typ.Value)}
	}
	return &FieldError{Field: "body", Message: err.Error()}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	}
	return fe.Error()
}
