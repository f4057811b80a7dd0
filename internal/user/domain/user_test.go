package domain

import "testing"

func TestUser_Validate(t *testing.T) {
	u := &User{Email: "a@example.com"}
	if err := u.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if u.Status != UserStatusActive {
		t.Errorf("Status = %q, want active default", u.Status)
	}
	if err := (&User{}).Validate(); err == nil {
		t.Error("missing email should fail")
	}
	if err := (&User{Email: "a@example.com", Status: "banned"}).Validate(); err == nil {
		t.Error("unknown status should fail")
	}
}
