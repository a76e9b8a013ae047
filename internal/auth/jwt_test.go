package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("round-trip-secret")

	token, err := GenerateToken(secret, 42, "customer")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	profileID, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if profileID != 42 {
		t.Errorf("subject = %d, want 42", profileID)
	}
}

func TestTokenRejectedWithWrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("secret-a"), 42, "customer")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken([]byte("secret-b"), token); err == nil {
		t.Error("token signed with another secret validated")
	}
}

func TestMalformedTokenRejected(t *testing.T) {
	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := ValidateToken([]byte("secret"), bad); err == nil {
			t.Errorf("malformed token %q validated", bad)
		}
	}
}
