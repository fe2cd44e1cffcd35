package domain

import (
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("account_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("phone_number", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

func ValidateName(name string) error {
	if name == "" {
		return invalid("name", "User name is required and cannot be blank")
	}
	if validate.Var(name, "min=5,max=120") != nil {
		return invalid("name", "User name must be between 5 and 120 characters long")
	}
	return nil
}

func ValidateEmail(email string) error {
	if email == "" {
		return invalid("email", "User email is required and cannot be empty")
	}
	if validate.Var(email, "account_email") != nil {
		return invalid("email", "User email is not in a valid format")
	}
	return nil
}

func ValidatePassword(password string) error {
	if password == "" {
		return invalid("password", "User password is required and cannot be empty")
	}
	if validate.Var(password, "min=3,max=32") != nil {
		return invalid("password", "User password must be between 3 and 32 characters long")
	}
	return nil
}

func ValidatePasswordHash(hash string) error {
	if hash == "" {
		return invalid("password_hash", "User password hash is required and cannot be empty")
	}
	return nil
}

func ValidatePhone(phone string) error {
	if phone == "" {
		return invalid("phone", "User phone is required and cannot be empty")
	}
	if validate.Var(phone, "phone_number") != nil {
		return invalid("phone", "User phone is not in a valid phone pattern")
	}
	return nil
}

// ValidateID accepts only the hyphenated 36-character UUID form; any version
// or variant is accepted.
func ValidateID(id string) error {
	return validateUUID("id", id)
}

func ValidateUserID(id string) error {
	return validateUUID("user_id", id)
}

func validateUUID(field, id string) error {
	// uuid.Parse also takes urn:uuid:, braced and unhyphenated forms.
	if len(id) != 36 {
		return invalid(field, field+" is not a valid UUID")
	}
	if _, err := uuid.Parse(id); err != nil {
		return invalid(field, field+" is not a valid UUID")
	}
	return nil
}

func ValidateGoalText(text string) error {
	if text == "" {
		return invalid("text", "Goal text is required and cannot be empty")
	}
	return nil
}
