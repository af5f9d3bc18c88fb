// Package validation registers custom gin binding validators.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// PhoneTag is the binding tag validated by ValidPhone.
const PhoneTag = "phone"

// Register installs the custom validators on gin's default validator engine.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected gin validator engine")
	}
	return v.RegisterValidation(PhoneTag, ValidPhone)
}

// ValidPhone reports whether the field holds a valid international phone number.
func ValidPhone(fl validator.FieldLevel) bool {
	_, err := NormalizePhone(fl.Field().String())
	return err == nil
}

// NormalizePhone parses an international number (leading "+") and returns it
// in E.164 form.
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "+") {
		return "", fmt.Errorf("phone number %q must start with a country code", raw)
	}
	num, err := phonenumbers.Parse(raw, "")
	if err != nil {
		return "", fmt.Errorf("invalid phone number %q: %w", raw, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("invalid phone number %q", raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
