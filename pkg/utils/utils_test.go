package utils

import (
	"testing"
	"time"
)

func TestRound2(t *testing.T) {
	cases := map[float64]float64{
		0.125:     0.13,
		8.5:       8.5,
		1.004:     1.0,
		2.0 / 3.0: 0.67,
		0:         0,
	}
	for in, want := range cases {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	valid := []string{"2024-01", "2024-12", "1999-06"}
	invalid := []string{"2024-13", "2024-00", "2024-1", "24-01", "2024/01", ""}
	for _, m := range valid {
		if !IsValidMonth(m) {
			t.Errorf("expected %q to be valid", m)
		}
	}
	for _, m := range invalid {
		if IsValidMonth(m) {
			t.Errorf("expected %q to be invalid", m)
		}
	}
}

func TestIsValidRRule(t *testing.T) {
	if !IsValidRRule("FREQ=WEEKLY;BYDAY=MO,FR") {
		t.Fatalf("weekly rule rejected")
	}
	if IsValidRRule("EVERY=TUESDAY") {
		t.Fatalf("garbage rule accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", 30*time.Minute)
	token, expiresAt, err := m.GenerateAccessToken(11, "doc@example.com", "Dana", "doctor")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if d := time.Until(expiresAt); d <= 29*time.Minute || d > 30*time.Minute {
		t.Fatalf("unexpected expiry %v", expiresAt)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != 11 || claims.Subject != "doc@example.com" || claims.Role != "doctor" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := NewTokenManager("other", time.Minute).ValidateToken(token); err == nil {
		t.Fatalf("expected signature mismatch")
	}
}

func TestExpiredToken(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _, err := m.GenerateAccessToken(1, "a@example.com", "A", "admin")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.ValidateToken(token); err == nil {
		t.Fatalf("expected expired token to fail")
	}
}

func TestMissingSecret(t *testing.T) {
	if _, _, err := NewTokenManager("", time.Minute).GenerateAccessToken(1, "a@example.com", "A", "admin"); err == nil {
		t.Fatalf("expected error without secret")
	}
}

func TestGetenvHelpers(t *testing.T) {
	t.Setenv("HOSPITAL_TEST_INT", "12")
	t.Setenv("HOSPITAL_TEST_BAD_INT", "twelve")
	t.Setenv("HOSPITAL_TEST_BOOL", "true")
	t.Setenv("HOSPITAL_TEST_DURATION", "90s")
	t.Setenv("HOSPITAL_TEST_LIST", " a, ,b ")

	if got := GetenvInt("HOSPITAL_TEST_INT", 1); got != 12 {
		t.Errorf("GetenvInt = %d", got)
	}
	if got := GetenvInt("HOSPITAL_TEST_BAD_INT", 1); got != 1 {
		t.Errorf("GetenvInt fallback = %d", got)
	}
	if !GetenvBool("HOSPITAL_TEST_BOOL", false) {
		t.Errorf("GetenvBool = false")
	}
	if got := GetenvDuration("HOSPITAL_TEST_DURATION", time.Second); got != 90*time.Second {
		t.Errorf("GetenvDuration = %v", got)
	}
	if got := GetenvList("HOSPITAL_TEST_LIST", nil); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("GetenvList = %v", got)
	}
	if got := Getenv("HOSPITAL_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("Getenv = %q", got)
	}
}

func TestNewNullString(t *testing.T) {
	cases := map[string]*string{
		"":         nil,
		"   ":      nil,
		"notes":    NewNullString("notes"),
		" notes\n": NewNullString("notes"),
	}
	for in, want := range cases {
		got := NewNullString(in)
		if (got == nil) != (want == nil) || (got != nil && *got != *want) {
			t.Fatalf("NewNullString(%q) = %v, want %v", in, got, want)
		}
	}
	if NullableString(nil) != nil {
		t.Fatalf("expected nil for a missing field")
	}
	blank := " "
	if NullableString(&blank) != nil {
		t.Fatalf("expected nil for a blank field")
	}
}
