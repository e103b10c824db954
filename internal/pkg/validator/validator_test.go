package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2026-03-10"); !ok {
		t.Error("expected 2026-03-10 to be valid")
	}
	if _, ok := IsValidDate("2026-02-30"); ok {
		t.Error("expected 2026-02-30 to be invalid")
	}
	for _, s := range []string{"10-03-2026", "2026/03/10", "2026-3-1", ""} {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{"2026-03-10T10:30:00Z", "2026-03-10T10:30:00+07:00", "2026-03-10T10:30:00.123Z"}
	invalid := []string{"2026-03-10", "2026-03-10 10:30:00", ""}
	for _, s := range valid {
		if _, ok := IsValidDateTime(s); !ok {
			t.Errorf("expected %q to be valid", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDateTime(s); ok {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "password", Message: "password is too short"},
	}

	if errs.Error() != "email: email is required; password: password is too short" {
		t.Errorf("unexpected error string: %q", errs.Error())
	}

	m := errs.ToMap()
	if m["email"] != "email is required" || m["password"] != "password is too short" {
		t.Errorf("unexpected map: %v", m)
	}
}
