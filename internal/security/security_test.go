package security

import (
	"strings"
	"testing"
	"time"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		alphabet string
		wantErr  bool
	}{
		{name: "negative length", length: -1, alphabet: "abc", wantErr: true},
		{name: "empty alphabet", length: 1, alphabet: "", wantErr: true},
		{name: "zero length", length: 0, alphabet: "", wantErr: false},
		{name: "single character alphabet", length: 8, alphabet: "X"},
		{name: "temporary password alphabet", length: 64, alphabet: TemporaryPasswordAlphabet},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := RandomString(test.length, test.alphabet)
			if test.wantErr {
				if err == nil {
					t.Fatalf("RandomString(%d, %q) expected error", test.length, test.alphabet)
				}
				return
			}
			if err != nil {
				t.Fatalf("RandomString(%d, %q) returned error: %v", test.length, test.alphabet, err)
			}
			if len(got) != test.length {
				t.Fatalf("RandomString(%d, %q) len = %d", test.length, test.alphabet, len(got))
			}
			for _, char := range got {
				if !strings.ContainsRune(test.alphabet, char) {
					t.Fatalf("RandomString produced %q outside alphabet %q", char, test.alphabet)
				}
			}
		})
	}
}

func TestAPIKeyFragment(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	fragment := APIKeyFragment(now, 42)
	if len(fragment) != 10 {
		t.Fatalf("expected 10 character fragment, got %q", fragment)
	}
	if fragment != APIKeyFragment(now, 42) {
		t.Fatal("expected fragment to be deterministic for the same inputs")
	}
	if fragment == APIKeyFragment(now, 43) {
		t.Fatal("expected a different salt to change the fragment")
	}
	if strings.Trim(fragment, "0123456789abcdef") != "" {
		t.Fatalf("expected lowercase hex fragment, got %q", fragment)
	}
}

func TestAPIKeyPrefixesIdentity(t *testing.T) {
	key := APIKey("user-123", time.Now())
	if !strings.HasPrefix(key, "user-123") {
		t.Fatalf("expected identity prefix, got %q", key)
	}
	if len(key) != len("user-123")+10 {
		t.Fatalf("unexpected api key length %d", len(key))
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	raw, digest, err := NewResetToken()
	if err != nil {
		t.Fatalf("NewResetToken() error: %v", err)
	}
	if raw == digest {
		t.Fatal("expected digest to differ from raw token")
	}
	if !ResetTokenMatches(raw, digest) {
		t.Fatal("expected raw token to match its digest")
	}
	if ResetTokenMatches(raw+"x", digest) {
		t.Fatal("expected altered token not to match")
	}
	if ResetTokenMatches("", "") {
		t.Fatal("expected empty token not to match empty digest")
	}
}
