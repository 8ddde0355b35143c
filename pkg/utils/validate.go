package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

var cardExpiresRe = regexp.MustCompile(`^\d{2}/\d{2}$`)

// NewValidator reports fields by their json names and knows the card_expires tag (MM/YY).
// decimal.Decimal fields are compared as numbers, so gt/gte/lte work on money.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})

	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}

		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("card_expires", func(fl validator.FieldLevel) bool {
		return cardExpiresRe.MatchString(fl.Field().String())
	})

	return v
}

func FormatValidationError(err error) map[string]string {
	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["body"] = err.Error()
		return errs
	}

	for _, err := range validationErrors {
		field := strings.ToLower(err.Field())

		switch err.Tag() {
		case "required":
			errs[field] = fmt.Sprintf("%s is required", field)
		case "min":
			errs[field] = fmt.Sprintf("%s must be at least %s", field, err.Param())
		case "max":
			errs[field] = fmt.Sprintf("%s must be at most %s", field, err.Param())
		case "len":
			errs[field] = fmt.Sprintf("%s must be exactly %s characters", field, err.Param())
		case "gt":
			errs[field] = fmt.Sprintf("%s must be greater than %s", field, err.Param())
		case "gte":
			errs[field] = fmt.Sprintf("%s must be greater than or equal to %s", field, err.Param())
		case "lte":
			errs[field] = fmt.Sprintf("%s must be less than or equal to %s", field, err.Param())
		case "email":
			errs[field] = fmt.Sprintf("%s must be a valid email", field)
		case "card_expires":
			errs[field] = fmt.Sprintf("%s must match MM/YY", field)
		default:
			errs[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	return errs
}

// BindBody parses the JSON body into out and validates it.
// It returns nil on success, otherwise the detail to send back with a 400.
func BindBody(c *fiber.Ctx, v *validator.Validate, out any) any {
	if err := c.BodyParser(out); err != nil {
		return "invalid request body"
	}

	if err := v.Struct(out); err != nil {
		return FormatValidationError(err)
	}

	return nil
}
