package models

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Matches the username rule: a value containing '@' must look like an email.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NewValidator builds the validator instance with the custom rules the
// resource schemas rely on. One instance is shared process-wide; validator
// instances cache struct metadata and are safe for concurrent use.
func NewValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for a blank tag name, which would be a
	// programming error here.
	_ = v.RegisterValidation("emailuser", func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if !strings.Contains(val, "@") {
			return true
		}
		return emailPattern.MatchString(val)
	})
	return v
}

// Normalize trims the fields the schema compares against, mirroring how the
// client submits them.
func (c *Credential) Normalize() {
	c.Website = strings.TrimSpace(c.Website)
	c.Username = strings.TrimSpace(c.Username)
}
