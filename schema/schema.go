// Package schema validates and coerces raw data into typed entities.
// Shapes are declared with validator struct tags; a failed check is reported
// as a *ValidationError listing every offending field.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// Two or more words made of letters, hyphens or apostrophes, each at
	// least two characters long.
	accountNamePattern   = regexp.MustCompile(`^[\p{L}'-]{2,}(?:\s+[\p{L}'-]{2,})+$`)
	accountNumberPattern = regexp.MustCompile(`^[A-Za-z0-9]{6,20}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterValidation("accname", func(fl validator.FieldLevel) bool {
		return AccountNameValid(fl.Field().String())
	})
	v.RegisterValidation("accno", func(fl validator.FieldLevel) bool {
		return AccountNumberValid(fl.Field().String())
	})
	return v
}

// FieldError describes one failed constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ValidationError is returned when data does not conform to its schema.
type ValidationError struct {
	Message string       `json:"message"`
	Details []FieldError `json:"details"`
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	parts := make([]string, len(e.Details))
	for i, d := range e.Details {
		parts[i] = fmt.Sprintf("%s: %s", d.Field, d.Message)
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, "; "))
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Errors runs the struct tags of obj and returns the failures, nil when valid.
func Errors(obj any) []FieldError {
	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error(), Type: "invalid"}}
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, FieldError{
			Field:   fe.Field(),
			Message: errorMessage(fe),
			Type:    fe.Tag(),
		})
	}
	return fieldErrors
}

// Validate is Errors wrapped into a single error value.
func Validate(obj any) error {
	if details := Errors(obj); details != nil {
		return &ValidationError{Message: "invalid data", Details: details}
	}
	return nil
}

// Decode unmarshals raw into dst and validates the result. Decoding failures
// are reported as validation failures too, since both mean the shape is wrong.
func Decode(raw []byte, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return decodeError(err)
	}
	return Validate(dst)
}

// DecodeSlice decodes a JSON array and validates every element.
func DecodeSlice[T any](raw []byte) ([]T, error) {
	var items []T
	if err := DecodeValue(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// DecodeValue decodes any JSON value into dst. A struct is validated, as is
// every struct element of a slice; other values are only decoded.
func DecodeValue(raw []byte, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return decodeError(err)
	}

	v := indirect(reflect.ValueOf(dst))
	switch v.Kind() {
	case reflect.Struct:
		return Validate(v.Addr().Interface())
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			item := indirect(v.Index(i))
			if item.Kind() != reflect.Struct {
				continue
			}
			if err := Validate(item.Addr().Interface()); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
	}
	return nil
}

func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func decodeError(err error) *ValidationError {
	return &ValidationError{
		Message: "invalid data",
		Details: []FieldError{{Field: jsonErrorField(err), Message: err.Error(), Type: "json"}},
	}
}

// AccountNameValid applies the bank account-name rule.
func AccountNameValid(name string) bool {
	return accountNamePattern.MatchString(strings.TrimSpace(name))
}

// AccountNumberValid applies the bank account-number rule. Embedded
// whitespace is rejected rather than stripped.
func AccountNumberValid(accountNumber string) bool {
	return accountNumberPattern.MatchString(accountNumber)
}

func jsonErrorField(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return typeErr.Field
	}
	return ""
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gt":
		return "Value must be greater than " + fe.Param()
	case "gte":
		return "Value must be greater than or equal to " + fe.Param()
	case "oneof":
		return "Value must be one of: " + fe.Param()
	case "accname":
		return "Account name must have at least two words of letters"
	case "accno":
		return "Account number must be 6 to 20 letters or digits"
	default:
		return "Invalid value"
	}
}
