package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/taskhub/taskhub-server/internal/model"
)

// Update whitelists, per resource. Patch payloads may touch these
// fields and nothing else.
var (
	UserUpdateFields = []string{"name", "email", "password", "age"}
	TaskUpdateFields = []string{"description", "completed"}
)

var emailValidator = validator.New()

// Fields checks every key of a patch payload against the allowed list.
// A single offending key rejects the whole patch; nothing is ever
// partially applied.
func Fields(patch map[string]json.RawMessage, allowed []string) error {
	for key := range patch {
		if !contains(allowed, key) {
			return model.NewValidationError(fmt.Sprintf(
				"Invalid update: only %s fields allowed", strings.Join(allowed, ", ")))
		}
	}
	return nil
}

// Email checks that the address is well-formed.
func Email(email string) error {
	if err := emailValidator.Var(email, "required,email"); err != nil {
		return model.NewValidationError("Email is invalid")
	}
	return nil
}

// Password enforces the plaintext password policy. The digest itself
// is never validated here.
func Password(password string) error {
	if len(password) < 7 {
		return model.NewValidationError("Password must be at least 7 characters")
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return model.NewValidationError(`Password cannot contain the word "password"`)
	}
	return nil
}

// Age rejects negative values.
func Age(age int) error {
	if age < 0 {
		return model.NewValidationError("Age must be a positive number")
	}
	return nil
}

// NormalizeEmail lowercases and trims an address for lookups and
// storage. Uniqueness is enforced over the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
