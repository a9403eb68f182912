package auth

import (
	"testing"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))

	token, expiresAt, err := svc.GenerateAccessToken("user-1", "company-1", "admin@agroplan.io", "Admin", []string{"manager"}, true)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if expiresAt.IsZero() {
		t.Fatal("expected expiry time")
	}

	user, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if user.UserID != "user-1" || user.CompanyID != "company-1" {
		t.Errorf("identity mismatch: %+v", user)
	}
	if len(user.Roles) != 1 || user.Roles[0] != "manager" {
		t.Errorf("roles mismatch: %v", user.Roles)
	}
	if !user.IsAdmin {
		t.Error("admin flag lost")
	}
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	minter := NewJWTService(DefaultJWTConfig("secret-a"))
	verifier := NewJWTService(DefaultJWTConfig("secret-b"))

	token, _, err := minter.GenerateAccessToken("user-1", "company-1", "a@b.c", "", nil, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret must not validate")
	}
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc := NewJWTService(DefaultJWTConfig("test-secret"))
	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage must not validate")
	}
}
