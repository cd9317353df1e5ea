// Package validation checks request payloads before they reach the services.
// It wraps go-playground/validator with rules for fixed-point decimals.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	// Decimals are validated through their canonical string form.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	rules := map[string]validator.Func{
		"notblank":      notBlank,
		"decimal_scale": decimalScale,
		"decimal_gt":    decimalCompare(func(v, p decimal.Decimal) bool { return v.GreaterThan(p) }),
		"decimal_gte":   decimalCompare(func(v, p decimal.Decimal) bool { return v.GreaterThanOrEqual(p) }),
		"decimal_lte":   decimalCompare(func(v, p decimal.Decimal) bool { return v.LessThanOrEqual(p) }),
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("failed to register validation %q: %v", tag, err))
		}
	}

	return v
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// decimalScale accepts values with at most param fractional digits.
func decimalScale(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	var places int32
	if _, err := fmt.Sscan(fl.Param(), &places); err != nil {
		return false
	}
	return d.Equal(d.Truncate(places))
}

func decimalCompare(cmp func(value, param decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d, err := decimal.NewFromString(fl.Field().String())
		if err != nil {
			return false
		}
		p, err := decimal.NewFromString(fl.Param())
		if err != nil {
			return false
		}
		return cmp(d, p)
	}
}

// ValidationError holds one message per failing field.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return strings.Join(v.Errors, ", ")
}

// ValidateStruct validates s against its `validate` tags and returns a
// *ValidationError describing every failing field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, message(fe))
	}

	return &ValidationError{Errors: messages}
}

func message(fe validator.FieldError) string {
	field := fieldPath(fe)

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("field '%s' is required", field)
	case "decimal_scale":
		return fmt.Sprintf("field '%s' must have at most %s decimal places", field, fe.Param())
	case "decimal_gt", "gt":
		return fmt.Sprintf("field '%s' must be greater than %s", field, fe.Param())
	case "decimal_gte", "gte":
		return fmt.Sprintf("field '%s' must be greater than or equal to %s", field, fe.Param())
	case "decimal_lte", "lte":
		return fmt.Sprintf("field '%s' must be less than or equal to %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("field '%s' must be at most %s characters", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("field '%s' must be a date in YYYY-MM-DD format", field)
	default:
		return fmt.Sprintf("field '%s' failed on the '%s' tag", field, fe.Tag())
	}
}

// fieldPath drops the top-level struct name from the namespace, so nested
// fields read as "stages[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
