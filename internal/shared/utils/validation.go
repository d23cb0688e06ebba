package utils

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"tunemates/internal/shared/errors"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct validates a struct using its binding tags and returns a
// validation error listing every failed field.
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		var messages []string
		for _, err := range err.(validator.ValidationErrors) {
			messages = append(messages, formatValidationError(err))
		}
		return errors.NewValidationError(strings.Join(messages, "; "))
	}
	return nil
}

func formatValidationError(err validator.FieldError) string {
	field := strings.ToLower(err.Field())
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, err.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, err.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// IsValidEmail reports whether s is a syntactically valid email address.
func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// ValidatePasswordComplexity enforces the account password policy:
// at least 8 characters with an upper-case letter, a lower-case letter,
// a digit and a special character.
func ValidatePasswordComplexity(password string) error {
	if len(password) < 8 {
		return errors.NewValidationError("password must be at least 8 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if !hasUpper {
		return errors.NewValidationError("password must contain an upper-case letter")
	}
	if !hasLower {
		return errors.NewValidationError("password must contain a lower-case letter")
	}
	if !hasDigit {
		return errors.NewValidationError("password must contain a digit")
	}
	if !hasSpecial {
		return errors.NewValidationError("password must contain a special character")
	}
	return nil
}
