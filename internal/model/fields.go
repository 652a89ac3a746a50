package model

import (
	"regexp"
	"strings"
)

// Scalar field names, as used in the validation error map and the HTTP API.
const (
	FieldFirstName    = "firstName"
	FieldLastName     = "lastName"
	FieldTitle        = "title"
	FieldEmail        = "email"
	FieldCountryCode  = "countryCode"
	FieldPhone        = "phone"
	FieldSummary      = "summary"
	FieldLinkedIn     = "linkedin"
	FieldWebsite      = "website"
	FieldProfileImage = "profileImage"
)

// ScalarFields lists every field settable through Document.Field / SetField.
var ScalarFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldTitle,
	FieldEmail,
	FieldCountryCode,
	FieldPhone,
	FieldSummary,
	FieldLinkedIn,
	FieldWebsite,
	FieldProfileImage,
}

var (
	nameRe  = regexp.MustCompile(`^[\p{L}\s'-]+$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^[0-9\s-]+$`)
	urlRe   = regexp.MustCompile(`^https?://.+\..+`)
)

// ValidateField returns a human-readable message for an invalid value, or
// the empty string when value is acceptable for field.
func ValidateField(field, value string) string {
	switch field {
	case FieldFirstName:
		return validateName("First name", value)
	case FieldLastName:
		return validateName("Last name", value)
	case FieldEmail:
		if strings.TrimSpace(value) == "" {
			return "Email is required"
		}
		if !emailRe.MatchString(value) {
			return "Enter a valid email address"
		}
	case FieldPhone:
		if strings.TrimSpace(value) == "" {
			return "Phone number is required"
		}
		if !phoneRe.MatchString(value) {
			return "Phone number can only contain digits, spaces and hyphens"
		}
	case FieldLinkedIn:
		return validateURL("LinkedIn URL", value)
	case FieldWebsite:
		return validateURL("Website URL", value)
	}
	return ""
}

func validateName(label, value string) string {
	if strings.TrimSpace(value) == "" {
		return label + " is required"
	}
	if !nameRe.MatchString(value) {
		return label + " can only contain letters, spaces, apostrophes and hyphens"
	}
	return ""
}

// optional: empty is valid
func validateURL(label, value string) string {
	if value == "" {
		return ""
	}
	if !urlRe.MatchString(value) {
		return label + " must start with http:// or https:// and include a domain"
	}
	return ""
}

// Field returns the current value of a scalar field.
func (d Document) Field(name string) (string, bool) {
	p := d.fieldPtr(name)
	if p == nil {
		return "", false
	}
	return *p, true
}

// SetField assigns a scalar field; it reports false for unknown names.
func (d *Document) SetField(name, value string) bool {
	p := d.fieldPtr(name)
	if p == nil {
		return false
	}
	*p = value
	return true
}

func (d *Document) fieldPtr(name string) *string {
	switch name {
	case FieldFirstName:
		return &d.FirstName
	case FieldLastName:
		return &d.LastName
	case FieldTitle:
		return &d.Title
	case FieldEmail:
		return &d.Email
	case FieldCountryCode:
		return &d.CountryCode
	case FieldPhone:
		return &d.Phone
	case FieldSummary:
		return &d.Summary
	case FieldLinkedIn:
		return &d.LinkedIn
	case FieldWebsite:
		return &d.Website
	case FieldProfileImage:
		return &d.ProfileImage
	}
	return nil
}
