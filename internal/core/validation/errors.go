package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Stable error codes reported per field.
const (
	CodeRequired       = "required"
	CodeTooShort       = "too_short"
	CodeTooLong        = "too_long"
	CodeInvalidFormat  = "invalid_format"
	CodeInvalidEmail   = "invalid_email"
	CodeAcademicDomain = "academic_domain"
	CodeWeakPassword   = "weak_password"
	CodeMismatch       = "mismatch"
	CodeInvalidChoice  = "invalid_choice"
	CodeInvalidURL     = "invalid_url"
	CodeMustAccept     = "must_accept"
	CodeInvalid        = "invalid"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FieldErrors is returned whenever a form fails validation. Order follows
// the form's field declaration order.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, e := range fe {
		msgs = append(msgs, e.Field+": "+e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Get returns the error for field, if any.
func (fe FieldErrors) Get(field string) (FieldError, bool) {
	for _, e := range fe {
		if e.Field == field {
			return e, true
		}
	}
	return FieldError{}, false
}

var labels = map[string]string{
	"firstName":             "First name",
	"lastName":              "Last name",
	"email":                 "Email",
	"university":            "University",
	"fieldOfStudy":          "Field of study",
	"password":              "Password",
	"confirmPassword":       "Confirm password",
	"termsAccepted":         "Terms of service",
	"privacyPolicyAccepted": "Privacy policy",
	"companyName":           "Company name",
	"contactPersonName":     "Contact person name",
	"companySize":           "Company size",
	"industry":              "Industry",
	"companyWebsite":        "Company website",
	"companyDescription":    "Company description",
	"role":                  "Role",
	"token":                 "Token",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

// translate converts a single validator.FieldError into a coded FieldError.
func translate(fe validator.FieldError) FieldError {
	field := fe.Field()
	name := label(field)
	out := FieldError{Field: field}

	switch fe.Tag() {
	case "required":
		out.Code, out.Message = CodeRequired, name+" is required"
	case "min":
		out.Code, out.Message = CodeTooShort, fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		out.Code, out.Message = CodeTooLong, fmt.Sprintf("%s cannot exceed %s characters", name, fe.Param())
	case "personname":
		out.Code, out.Message = CodeInvalidFormat, name+" can only contain letters and spaces"
	case "email":
		out.Code, out.Message = CodeInvalidEmail, "Please provide a valid email address"
	case "academic_email":
		out.Code, out.Message = CodeAcademicDomain, "Please use your official university email address (e.g. ending with .ac.lk)"
	case "strong_password":
		out.Code, out.Message = CodeWeakPassword, "Password must contain uppercase, lowercase, number and special character"
	case "eqfield":
		out.Code, out.Message = CodeMismatch, "Passwords don't match"
	case "oneof":
		out.Code, out.Message = CodeInvalidChoice, fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(fe.Param(), "'", ""))
	case "url":
		out.Code, out.Message = CodeInvalidURL, "Please provide a valid website URL"
	case "eq":
		out.Code, out.Message = CodeMustAccept, name+" must be accepted"
	default:
		out.Code, out.Message = CodeInvalid, fmt.Sprintf("%s failed validation (%s)", name, fe.Tag())
	}
	return out
}
