package auth

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw1", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "pw1" || !strings.HasPrefix(hash, "$2") {
		t.Fatalf("unexpected hash %q", hash)
	}
	if !CheckPassword(hash, "pw1") {
		t.Fatal("CheckPassword must accept the original password")
	}
	if CheckPassword(hash, "pw2") {
		t.Fatal("CheckPassword must reject another password")
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	b, err := HashPassword("same", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if a == b {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestHashPassword_CostOutOfRangeFallsBack(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw", 0)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("bcrypt.Cost error: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Fatalf("cost = %d, want %d", cost, bcrypt.DefaultCost)
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	t.Parallel()

	if _, err := HashPassword(strings.Repeat("x", 100), bcrypt.MinCost); err == nil {
		t.Fatal("expected error for password longer than 72 bytes")
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	if CheckPassword("not-a-hash", "pw") {
		t.Fatal("malformed hash must not match")
	}
}

func TestTokens_AreRandomUUIDs(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		for _, tok := range []string{NewSessionID(), NewResetToken()} {
			u, err := uuid.Parse(tok)
			if err != nil {
				t.Fatalf("token %q is not a UUID: %v", tok, err)
			}
			if u.Version() != 4 {
				t.Fatalf("token %q version = %d, want 4", tok, u.Version())
			}
			if _, dup := seen[tok]; dup {
				t.Fatalf("duplicate token %q", tok)
			}
			seen[tok] = struct{}{}
		}
	}
}
