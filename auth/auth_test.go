package auth

import (
	"context"
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	a := NewAuthModule(nil, nil, "test-secret")

	token, err := a.generateJWT(42)
	if err != nil {
		t.Fatalf("generateJWT: %v", err)
	}

	userID, err := a.ValidateTokenJWT(context.Background(), token)
	if err != nil {
		t.Fatalf("ValidateTokenJWT: %v", err)
	}
	if userID != 42 {
		t.Errorf("user id = %d, want 42", userID)
	}
}

func TestValidateTokenJWTRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthModule(nil, nil, "secret-a")
	verifier := NewAuthModule(nil, nil, "secret-b")

	token, err := issuer.generateJWT(7)
	if err != nil {
		t.Fatalf("generateJWT: %v", err)
	}

	if _, err := verifier.ValidateTokenJWT(context.Background(), token); err == nil {
		t.Error("token signed with a different secret validated")
	}
}

func TestValidateTokenJWTRejectsGarbage(t *testing.T) {
	a := NewAuthModule(nil, nil, "test-secret")

	if _, err := a.ValidateTokenJWT(context.Background(), "not.a.token"); err == nil {
		t.Error("garbage token validated")
	}
}
