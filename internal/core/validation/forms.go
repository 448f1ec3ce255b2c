package validation

import "strings"

// JobSeekerSignup is the undergraduate registration form.
type JobSeekerSignup struct {
	FirstName             string `json:"firstName"              validate:"required,min=2,max=50,personname"`
	LastName              string `json:"lastName"               validate:"required,min=2,max=50,personname"`
	Email                 string `json:"email"                  validate:"required,email,academic_email"`
	University            string `json:"university"             validate:"required"`
	FieldOfStudy          string `json:"fieldOfStudy"           validate:"omitempty,max=100"`
	Password              string `json:"password"               validate:"required,min=8,strong_password"`
	ConfirmPassword       string `json:"confirmPassword"        validate:"required,eqfield=Password"`
	TermsAccepted         bool   `json:"termsAccepted"          validate:"eq=true"`
	PrivacyPolicyAccepted bool   `json:"privacyPolicyAccepted"  validate:"eq=true"`
}

func (f *JobSeekerSignup) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = normalizeEmail(f.Email)
	f.University = strings.TrimSpace(f.University)
	f.FieldOfStudy = strings.TrimSpace(f.FieldOfStudy)
}

// EmployerSignup is the company registration form.
type EmployerSignup struct {
	CompanyName           string `json:"companyName"           validate:"required,min=2,max=100"`
	ContactPersonName     string `json:"contactPersonName"     validate:"required,min=2,max=100,personname"`
	Email                 string `json:"email"                 validate:"required,email"`
	CompanySize           string `json:"companySize"           validate:"required,oneof=startup small medium large"`
	Industry              string `json:"industry"              validate:"required,min=2,max=50"`
	CompanyWebsite        string `json:"companyWebsite"        validate:"omitempty,url"`
	CompanyDescription    string `json:"companyDescription"    validate:"omitempty,max=500"`
	Password              string `json:"password"              validate:"required,min=8,strong_password"`
	ConfirmPassword       string `json:"confirmPassword"       validate:"required,eqfield=Password"`
	TermsAccepted         bool   `json:"termsAccepted"         validate:"eq=true"`
	PrivacyPolicyAccepted bool   `json:"privacyPolicyAccepted" validate:"eq=true"`
}

func (f *EmployerSignup) Normalize() {
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.ContactPersonName = strings.TrimSpace(f.ContactPersonName)
	f.Email = normalizeEmail(f.Email)
	f.CompanySize = strings.ToLower(strings.TrimSpace(f.CompanySize))
	f.Industry = strings.TrimSpace(f.Industry)
	f.CompanyWebsite = strings.TrimSpace(f.CompanyWebsite)
	f.CompanyDescription = strings.TrimSpace(f.CompanyDescription)
}

// AdminSignup is used by an existing admin to create another admin.
type AdminSignup struct {
	FirstName string `json:"firstName" validate:"required,min=2,max=50,personname"`
	LastName  string `json:"lastName"  validate:"required,min=2,max=50,personname"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8,strong_password"`
}

func (f *AdminSignup) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = normalizeEmail(f.Email)
}

// SignIn carries the login form. Role is optional on the wire; when present
// the server checks it against the account.
type SignIn struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof='Job Seeker' Employer Admin"`
}

func (f *SignIn) Normalize() {
	f.Email = normalizeEmail(f.Email)
	f.Role = strings.TrimSpace(f.Role)
}

type ForgotPassword struct {
	Email string `json:"email" validate:"required,email"`
}

func (f *ForgotPassword) Normalize() {
	f.Email = normalizeEmail(f.Email)
}

type ResendVerification struct {
	Email string `json:"email" validate:"required,email"`
}

func (f *ResendVerification) Normalize() {
	f.Email = normalizeEmail(f.Email)
}

type ResetPassword struct {
	Token           string `json:"token"           validate:"required"`
	Password        string `json:"password"        validate:"required,min=8,strong_password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (f *ResetPassword) Normalize() {
	f.Token = strings.TrimSpace(f.Token)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
