package models

import (
	"errors"
	"testing"

	"github.com/ghuser/homebook/services/auth/domain"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"plain", "9876543210", "9876543210", false},
		{"formatted", "98765-43210", "9876543210", false},
		{"spaces", " 98765 43210 ", "9876543210", false},
		{"country code", "+91 98765 43210", "9876543210", false},
		{"trunk prefix", "09876543210", "9876543210", false},
		{"too short", "98765", "", true},
		{"too long", "987654321012", "", true},
		{"letters only", "phone", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.in)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrInvalidPhone) {
					t.Fatalf("expected ErrInvalidPhone, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestUserIDForPhone_Stable(t *testing.T) {
	a := UserIDForPhone("9876543210")
	b := UserIDForPhone("9876543210")
	c := UserIDForPhone("9876543211")
	if a != b {
		t.Fatalf("expected stable id, got %s and %s", a, b)
	}
	if a == c {
		t.Fatal("expected different phones to get different ids")
	}
}

func TestNewUser(t *testing.T) {
	u := NewUser("9876543210", "Asha")
	if u.ID != UserIDForPhone("9876543210") {
		t.Fatalf("expected derived id, got %s", u.ID)
	}
	if u.Phone != "9876543210" || u.Name != "Asha" {
		t.Fatalf("unexpected user %+v", u)
	}
}
