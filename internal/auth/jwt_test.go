package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/codingstreams/userhub/internal/auth"
)

func TestIssueAndValidate(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)

	token, expiresIn, err := m.Issue("a@x.com")

	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if token == "" {
		t.Fatalf("Issue returned empty token")
	}

	if expiresIn != 3600 {
		t.Fatalf("expiresIn = %d, want 3600", expiresIn)
	}

	if !m.Validate(token) {
		t.Fatalf("freshly issued token should validate")
	}
}

func TestExtractEmailRoundTrip(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)

	token, _, err := m.Issue("a@x.com")

	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	email, err := m.ExtractEmail(token)

	if err != nil {
		t.Fatalf("ExtractEmail failed: %v", err)
	}

	if email != "a@x.com" {
		t.Fatalf("ExtractEmail = %q, want %q", email, "a@x.com")
	}
}

func TestValidateRejectsDefectiveTokens(t *testing.T) {
	m := auth.NewManager("test-secret-key", time.Hour)

	good, _, err := m.Issue("a@x.com")

	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// payload mutation breaks the signature
	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + "x" + parts[1][1:] + "." + parts[2]

	expiredManager := auth.NewManager("test-secret-key", -time.Minute)
	expired, _, err := expiredManager.Issue("a@x.com")

	if err != nil {
		t.Fatalf("Issue(expired) failed: %v", err)
	}

	otherKey, _, err := auth.NewManager("some-other-key", time.Hour).Issue("a@x.com")

	if err != nil {
		t.Fatalf("Issue(other key) failed: %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "tampered", token: tampered},
		{name: "expired", token: expired},
		{name: "wrong key", token: otherKey},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if m.Validate(tc.token) {
				t.Fatalf("Validate(%s) = true, want false", tc.name)
			}

			_, err := m.ExtractEmail(tc.token)

			if !errors.Is(err, auth.ErrInvalidToken) {
				t.Fatalf("ExtractEmail(%s) err = %v, want ErrInvalidToken", tc.name, err)
			}
		})
	}
}
