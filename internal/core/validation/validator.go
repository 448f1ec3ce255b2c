// Package validation checks sign-up and sign-in forms before they reach the
// auth service. Validation is pure: the same input always yields the same
// normalized record or the same set of field errors.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultAcademicDomains are the email domain suffixes accepted for job seekers.
var DefaultAcademicDomains = []string{
	"ac.lk",
	"uoc.lk",
	"sliit.lk",
	"nsbm.ac.lk",
	"student.unsw.edu.au",
}

// passwordSymbols is the symbol class a strong password must draw from.
const passwordSymbols = "@$!%*?&"

var personNamePattern = regexp.MustCompile(`^[a-zA-Z\s]+$`)

// Validator wraps go-playground/validator with the custom rules used by the
// auth forms. It is safe for concurrent use.
type Validator struct {
	v        *validator.Validate
	academic []string
}

// Option configures a Validator.
type Option func(*Validator)

// WithAcademicDomains replaces the academic email allow-list.
func WithAcademicDomains(domains ...string) Option {
	return func(v *Validator) {
		v.academic = normalizeDomains(domains)
	}
}

// New returns a Validator ready to be assigned to echo.Echo.Validator.
func New(opts ...Option) *Validator {
	out := &Validator{
		v:        validator.New(validator.WithRequiredStructEnabled()),
		academic: normalizeDomains(DefaultAcademicDomains),
	}
	for _, opt := range opts {
		opt(out)
	}

	out.v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = out.v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return personNamePattern.MatchString(fl.Field().String())
	})
	_ = out.v.RegisterValidation("strong_password", func(fl validator.FieldLevel) bool {
		return StrongPassword(fl.Field().String())
	})
	_ = out.v.RegisterValidation("academic_email", func(fl validator.FieldLevel) bool {
		return out.IsAcademicEmail(fl.Field().String())
	})
	return out
}

type normalizer interface {
	Normalize()
}

// Validate satisfies the echo.Validator interface. Forms implementing
// Normalize are normalized in place first.
func (v *Validator) Validate(i any) error {
	if n, ok := i.(normalizer); ok {
		n.Normalize()
	}
	if err := v.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			out := make(FieldErrors, 0, len(ve))
			for _, fe := range ve {
				out = append(out, translate(fe))
			}
			return out
		}
		return err
	}
	return nil
}

// Check validates a copy of in and returns the normalized copy. On failure
// the returned error is a FieldErrors.
func Check[T any, PT interface {
	*T
	Normalize()
}](v *Validator, in T) (T, error) {
	out := in
	if err := v.Validate(PT(&out)); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// IsAcademicEmail reports whether email's domain equals, or is a subdomain
// of, an allow-listed academic suffix.
func (v *Validator) IsAcademicEmail(email string) bool {
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := strings.ToLower(email[at+1:])
	for _, suffix := range v.academic {
		if domain == suffix || strings.HasSuffix(domain, "."+suffix) {
			return true
		}
	}
	return false
}

// StrongPassword reports whether p is at least 8 characters, starts with an
// ASCII letter, digit or one of passwordSymbols, and contains an ASCII
// lowercase letter, an ASCII uppercase letter, an ASCII digit and a symbol.
func StrongPassword(p string) bool {
	if len([]rune(p)) < 8 || !passwordChar(p[0]) {
		return false
	}
	var lower, upper, digit, symbol bool
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case 'a' <= c && c <= 'z':
			lower = true
		case 'A' <= c && c <= 'Z':
			upper = true
		case '0' <= c && c <= '9':
			digit = true
		case strings.IndexByte(passwordSymbols, c) >= 0:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

func passwordChar(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		strings.IndexByte(passwordSymbols, c) >= 0
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		d = strings.TrimPrefix(d, "@")
		d = strings.TrimPrefix(d, ".")
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}
