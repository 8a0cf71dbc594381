package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "github.com/simaogato/rebalancer/internal/errors"
)

// validate is shared by every Validate method in this package.
// validator.Validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Field names in messages come from the label tag.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		return field.Name
	})

	// Decimals are compared as float64 so numeric tags (gte, gt, ...) apply.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	// Dates are validated through their string form; the zero Date is "".
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(Date); ok {
			return d.String()
		}
		return nil
	}, Date{})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// validateEntity runs the struct tags of v and converts the first failure
// into an ErrInvalidInput carrying a readable message.
func validateEntity(entity string, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, err)
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required", "notblank":
		msg = fmt.Sprintf("%s %s cannot be empty", entity, fe.Field())
	case "gte":
		msg = fmt.Sprintf("%s %s must be at least %s", entity, fe.Field(), fe.Param())
	case "gt":
		msg = fmt.Sprintf("%s %s must be greater than %s", entity, fe.Field(), fe.Param())
	case "lte":
		msg = fmt.Sprintf("%s %s must be at most %s", entity, fe.Field(), fe.Param())
	default:
		msg = fmt.Sprintf("%s %s is invalid", entity, fe.Field())
	}
	return apperrors.WithMessage(apperrors.ErrInvalidInput, msg)
}
