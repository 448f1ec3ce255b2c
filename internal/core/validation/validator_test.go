package validation

import (
	"errors"
	"testing"
)

func validSeeker() JobSeekerSignup {
	return JobSeekerSignup{
		FirstName:             "Nimal",
		LastName:              "Perera",
		Email:                 "nimal@cse.mrt.ac.lk",
		University:            "University of Moratuwa",
		FieldOfStudy:          "Computer Science",
		Password:              "Str0ng!Pass",
		ConfirmPassword:       "Str0ng!Pass",
		TermsAccepted:         true,
		PrivacyPolicyAccepted: true,
	}
}

func validEmployer() EmployerSignup {
	return EmployerSignup{
		CompanyName:           "Lanka Tech",
		ContactPersonName:     "Kamala Silva",
		Email:                 "hr@lankatech.lk",
		CompanySize:           "small",
		Industry:              "Software",
		Password:              "Str0ng!Pass",
		ConfirmPassword:       "Str0ng!Pass",
		TermsAccepted:         true,
		PrivacyPolicyAccepted: true,
	}
}

func fieldErrors(t *testing.T, err error) FieldErrors {
	t.Helper()
	var fe FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %T (%v)", err, err)
	}
	return fe
}

func TestCheck_JobSeekerSignup_Valid(t *testing.T) {
	v := New()
	in := validSeeker()
	in.Email = "  Nimal@CSE.mrt.AC.lk "
	in.FirstName = " Nimal "

	out, err := Check(v, in)
	if err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	if out.Email != "nimal@cse.mrt.ac.lk" {
		t.Fatalf("email not normalized: %q", out.Email)
	}
	if out.FirstName != "Nimal" {
		t.Fatalf("first name not trimmed: %q", out.FirstName)
	}
	if in.FirstName != " Nimal " {
		t.Fatalf("input was mutated: %q", in.FirstName)
	}
}

func TestCheck_PasswordComplexity(t *testing.T) {
	v := New()
	cases := []struct {
		name     string
		password string
		code     string
	}{
		{"too short", "Ab1!", CodeTooShort},
		{"no upper", "str0ng!pass", CodeWeakPassword},
		{"no lower", "STR0NG!PASS", CodeWeakPassword},
		{"no digit", "Strong!Pass", CodeWeakPassword},
		{"no symbol", "Str0ngPass", CodeWeakPassword},
		{"symbol outside class", "Str0ng#Pass", CodeWeakPassword},
		{"non-ascii lower", "éABCDEF1!", CodeWeakPassword},
		{"leading symbol outside class", "#Abcdef1!", CodeWeakPassword},
		{"leading space", " Abcdef1!", CodeWeakPassword},
		{"non-ascii digit", "ABCDEFG١!x", CodeWeakPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validSeeker()
			in.Password = tc.password
			in.ConfirmPassword = tc.password

			_, err := Check(v, in)
			fe := fieldErrors(t, err)
			got, ok := fe.Get("password")
			if !ok {
				t.Fatalf("expected password error, got %v", fe)
			}
			if got.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, got.Code)
			}
			if len(fe) != 1 {
				t.Fatalf("expected only the password field to fail, got %v", fe)
			}
		})
	}
}

func TestCheck_JobSeekerAcademicDomain(t *testing.T) {
	v := New()
	for _, email := range []string{"nimal@gmail.com", "nimal@ac.lk.evil.com", "nimal@notac.lk"} {
		in := validSeeker()
		in.Email = email

		_, err := Check(v, in)
		fe := fieldErrors(t, err)
		got, ok := fe.Get("email")
		if !ok || got.Code != CodeAcademicDomain {
			t.Fatalf("%s: expected academic_domain error, got %v", email, fe)
		}
		if got.Message == "" {
			t.Fatalf("%s: expected a domain message", email)
		}
	}
}

func TestCheck_AcademicAllowList(t *testing.T) {
	v := New()
	for _, email := range []string{"a@uoc.lk", "a@sliit.lk", "a@students.nsbm.ac.lk", "a@student.unsw.edu.au", "a@eng.pdn.ac.lk"} {
		if !v.IsAcademicEmail(email) {
			t.Fatalf("expected %s to be academic", email)
		}
	}

	custom := New(WithAcademicDomains(".edu"))
	if !custom.IsAcademicEmail("a@mit.edu") {
		t.Fatalf("expected custom suffix to be accepted")
	}
	if custom.IsAcademicEmail("a@mrt.ac.lk") {
		t.Fatalf("expected default list to be replaced")
	}
}

func TestCheck_EmployerDoesNotNeedAcademicEmail(t *testing.T) {
	if _, err := Check(New(), validEmployer()); err != nil {
		t.Fatalf("expected valid employer, got %v", err)
	}
}

func TestCheck_ConfirmPasswordMismatch(t *testing.T) {
	in := validSeeker()
	in.ConfirmPassword = "Other1!pass"

	_, err := Check(New(), in)
	fe := fieldErrors(t, err)
	got, ok := fe.Get("confirmPassword")
	if !ok || got.Code != CodeMismatch {
		t.Fatalf("expected mismatch on confirmPassword, got %v", fe)
	}
}

func TestCheck_NameRules(t *testing.T) {
	cases := []struct {
		first string
		code  string
	}{
		{"", CodeRequired},
		{"N", CodeTooShort},
		{"Nimal2", CodeInvalidFormat},
		{"Abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijx", CodeTooLong},
	}
	for _, tc := range cases {
		in := validSeeker()
		in.FirstName = tc.first

		_, err := Check(New(), in)
		fe := fieldErrors(t, err)
		got, ok := fe.Get("firstName")
		if !ok || got.Code != tc.code {
			t.Fatalf("%q: expected %s, got %v", tc.first, tc.code, fe)
		}
	}
}

func TestCheck_ReportsEveryFailingField(t *testing.T) {
	_, err := Check(New(), JobSeekerSignup{})
	fe := fieldErrors(t, err)

	want := []string{"firstName", "lastName", "email", "university", "password", "confirmPassword", "termsAccepted", "privacyPolicyAccepted"}
	if len(fe) != len(want) {
		t.Fatalf("expected %d errors, got %d: %v", len(want), len(fe), fe)
	}
	for i, field := range want {
		if fe[i].Field != field {
			t.Fatalf("error %d: expected %s, got %s", i, field, fe[i].Field)
		}
	}
}

func TestCheck_Deterministic(t *testing.T) {
	v := New()
	in := validSeeker()
	in.Email = "x@gmail.com"
	in.Password = "weak"

	_, first := Check(v, in)
	_, second := Check(v, in)
	if first.Error() != second.Error() {
		t.Fatalf("expected identical results, got %q and %q", first, second)
	}
}

func TestCheck_SignInRole(t *testing.T) {
	v := New()
	ok := SignIn{Email: "a@b.lk", Password: "x", Role: "Job Seeker"}
	if _, err := Check(v, ok); err != nil {
		t.Fatalf("expected valid sign-in, got %v", err)
	}

	bad := SignIn{Email: "a@b.lk", Password: "x", Role: "Recruiter"}
	_, err := Check(v, bad)
	fe := fieldErrors(t, err)
	if got, found := fe.Get("role"); !found || got.Code != CodeInvalidChoice {
		t.Fatalf("expected invalid_choice on role, got %v", fe)
	}
}

func TestValidate_EchoAdapterNormalizesInPlace(t *testing.T) {
	req := &ForgotPassword{Email: "  USER@Example.COM "}
	if err := New().Validate(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Email != "user@example.com" {
		t.Fatalf("expected normalized email, got %q", req.Email)
	}
}
