package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskapi/internal/domain"
)

// Tag and rule strings shared between struct tags and per-field checks.
const (
	passwordComplexityTag = "password_complexity"

	nameRules     = "required,max=255"
	emailRules    = "required,email"
	passwordRules = "required,min=8," + passwordComplexityTag
	roleRules     = "required,max=50"
)

// validate is shared by every service; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so messages line up with the request body.
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

	if err := v.RegisterValidation(passwordComplexityTag, passwordComplexity); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", passwordComplexityTag, err))
	}
	return v
}

// passwordComplexity requires at least one ASCII lowercase letter, one ASCII
// uppercase letter and one ASCII digit.
func passwordComplexity(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

// validateStruct runs the struct tags of input and converts failures into a
// *domain.ValidationError keyed by JSON field name.
func validateStruct(input any) *domain.ValidationError {
	verr := domain.NewValidationError()
	addViolations(verr, "", validate.Struct(input))
	return verr
}

// validateField checks a single value against rules, recording failures
// under field.
func validateField(verr *domain.ValidationError, field string, value any, rules string) {
	addViolations(verr, field, validate.Var(value, rules))
}

func addViolations(verr *domain.ValidationError, field string, err error) {
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add(fieldOr(field, "input"), err.Error())
		return
	}

	for _, fe := range fieldErrs {
		name := fieldOr(field, fe.Field())
		verr.Add(name, validationMessage(name, fe.Tag(), fe.Param()))
	}
}

func fieldOr(field, fallback string) string {
	if field != "" {
		return field
	}
	return fallback
}

// validationMessage renders a failed rule in the wording API clients
// already expect.
func validationMessage(field, tag, param string) string {
	label := strings.ReplaceAll(field, "_", " ")
	switch tag {
	case "required":
		return fmt.Sprintf("The %s field is required.", label)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", label, param)
	case "min":
		return fmt.Sprintf("The %s must be at least %s characters.", label, param)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", label)
	case passwordComplexityTag:
		return fmt.Sprintf("The %s format is invalid.", label)
	default:
		return fmt.Sprintf("The %s is invalid.", label)
	}
}

// Messages for checks that need the store rather than struct tags.
const (
	emailTakenMessage  = "The email has already been taken."
	unknownUserMessage = "The selected user id is invalid."
)
