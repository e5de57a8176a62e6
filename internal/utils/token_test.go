package utils

import "testing"

func TestGenerateRandomToken_Unique(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateRandomToken(32)
		if err != nil {
			t.Fatalf("GenerateRandomToken error: %v", err)
		}
		if token == "" {
			t.Fatal("empty token")
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %q", token)
		}
		seen[token] = true
	}
}

func TestHashToken_Deterministic(t *testing.T) {
	t.Parallel()

	a := HashToken("abc")
	b := HashToken("abc")
	if a != b {
		t.Fatalf("hash not deterministic: %q vs %q", a, b)
	}
	if a == HashToken("abd") {
		t.Fatal("distinct inputs produced identical hashes")
	}
	if a == "abc" {
		t.Fatal("hash returned the raw input")
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	if got := NormalizeEmail("  Traveler@Example.COM "); got != "traveler@example.com" {
		t.Fatalf("NormalizeEmail = %q", got)
	}
}
