package catalog

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = validate.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, ok := ParsePrice(fl.Field().String())
		return ok
	})
}

// validateDraft trims the draft and checks required fields and the price.
// Only the first failing field is reported.
func validateDraft(draft ItemDraft) (ItemDraft, error) {
	d := draft.normalized()
	err := validate.Struct(d)
	if err == nil {
		return d, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return d, &ValidationError{Reason: err.Error(), Err: err}
	}
	fe := verrs[0]
	return d, &ValidationError{Field: fe.Field(), Reason: reasonFor(fe), Err: err}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "price":
		return "must be a number greater than or equal to zero"
	default:
		return "failed on '" + fe.Tag() + "'"
	}
}

func validateCategoryName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", &ValidationError{Field: "name", Reason: "is required"}
	}
	return trimmed, nil
}
