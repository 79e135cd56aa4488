package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const KindBadRequest = "bad_request"

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

type enum interface {
	IsValid() bool
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("decimal", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		_, err := ParseDecimalString(fl.Field().String())
		return err == nil
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(enum)
		return ok && e.IsValid()
	}); err != nil {
		panic(err)
	}
	return v
}

// FieldViolation describes one rejected field.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

// ValidationError is returned for any request that does not satisfy the
// schema. It is always answered with 400 bad_request.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Kind() string { return KindBadRequest }

// Field returns the violation for the given json path, if any.
func (e *ValidationError) Field(path string) (FieldViolation, bool) {
	for _, v := range e.Violations {
		if v.Field == path {
			return v, true
		}
	}
	return FieldViolation{}, false
}

// NewValidationError builds a single-field error.
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Violations: []FieldViolation{{
		Field:   field,
		Rule:    rule,
		Message: field + ": " + message,
	}}}
}

// Validate checks v against its validate tags. A nil return means the value
// can be handed to business logic.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &ValidationError{Violations: make([]FieldViolation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Violations = append(out.Violations, violation(fe))
	}
	return out
}

func violation(fe validator.FieldError) FieldViolation {
	path := fe.Namespace()
	if _, rest, ok := strings.Cut(path, "."); ok {
		path = rest
	}
	v := FieldViolation{Field: path, Rule: fe.Tag()}

	switch fe.Tag() {
	case "required":
		v.Message = path + ": field required"
		return v
	case "decimal":
		v.Message = fmt.Sprintf("%s: wrong value %q for pattern %s", path, fe.Value(), DecimalPattern)
	case "enum":
		v.Message = fmt.Sprintf("%s: value %q is not a valid enumeration member", path, fe.Value())
	case "min":
		v.Message = fmt.Sprintf("%s: %v is less than minimum %s", path, fe.Value(), fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			v.Message = fmt.Sprintf("%s: length exceeds %s", path, fe.Param())
		} else {
			v.Message = fmt.Sprintf("%s: %v is greater than maximum %s", path, fe.Value(), fe.Param())
		}
	case "gt":
		v.Message = fmt.Sprintf("%s: %v must be greater than %s", path, fe.Value(), fe.Param())
	default:
		v.Message = fmt.Sprintf("%s: failed %s", path, fe.Tag())
	}
	v.Value = fe.Value()
	return v
}

// DecodeError turns a body decoding failure into a ValidationError so that
// malformed JSON and schema violations share one response shape.
func DecodeError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return NewValidationError(field, "type",
			fmt.Sprintf("expected %s, got %s", typeErr.Type, typeErr.Value))
	case errors.As(err, &syntaxErr):
		return NewValidationError("body", "json",
			fmt.Sprintf("invalid JSON at offset %d", syntaxErr.Offset))
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return NewValidationError("body", "json", "invalid JSON")
	default:
		return NewValidationError("body", "json", err.Error())
	}
}
