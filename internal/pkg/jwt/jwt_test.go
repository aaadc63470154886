package jwt

import (
	"testing"
	"time"
)

const testSecret = "test-secret"

func TestGenerateAndValidateAccessToken(t *testing.T) {
	token, err := GenerateAccessToken(7, "bob@example.com", "engineer", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := ValidateAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.EmployeeID != 7 {
		t.Errorf("EmployeeID = %d, want 7", claims.EmployeeID)
	}
	if claims.Email != "bob@example.com" {
		t.Errorf("Email = %q, want bob@example.com", claims.Email)
	}
	if claims.Role != "engineer" {
		t.Errorf("Role = %q, want engineer", claims.Role)
	}
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(7, "bob@example.com", "engineer", testSecret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := ValidateAccessToken(token, "other-secret"); err != ErrTokenInvalid {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateAccessToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(7, "bob@example.com", "engineer", testSecret, -1)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	if _, err := ValidateAccessToken(token, testSecret); err != ErrTokenExpired {
		t.Errorf("Expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	if _, err := ValidateAccessToken("not-a-jwt", testSecret); err != ErrTokenInvalid {
		t.Errorf("Expected ErrTokenInvalid, got %v", err)
	}
}

func TestRefreshTokenExpiry(t *testing.T) {
	expiry := RefreshTokenExpiry(30)
	want := time.Now().Add(30 * 24 * time.Hour)

	diff := expiry.Sub(want)
	if diff < -time.Minute || diff > time.Minute {
		t.Errorf("Expiry %v too far from expected %v", expiry, want)
	}
}
