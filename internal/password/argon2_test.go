package password

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func cheapConfig() Config {
	return Config{Memory: 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}
}

func newTestHasher(t *testing.T) *Argon2 {
	t.Helper()
	h, err := NewArgon2(cheapConfig())
	if err != nil {
		t.Fatalf("NewArgon2: %v", err)
	}
	return h
}

func TestHashAndVerify(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$") {
		t.Fatalf("unexpected PHC prefix: %s", hash)
	}

	ok, err := h.Verify("secret123", hash)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}
}

func TestHash_SaltedPerCall(t *testing.T) {
	h := newTestHasher(t)

	for _, pw := range []string{"abc", "secret123", strings.Repeat("z", 32)} {
		a, err := h.Hash(pw)
		if err != nil {
			t.Fatalf("Hash: %v", err)
		}
		b, err := h.Hash(pw)
		if err != nil {
			t.Fatalf("Hash: %v", err)
		}
		if a == b {
			t.Fatalf("two hashes of %q are identical", pw)
		}
		for _, enc := range []string{a, b} {
			if ok, err := h.Verify(pw, enc); err != nil || !ok {
				t.Fatalf("Verify(%q) = %v, %v; want true, nil", pw, ok, err)
			}
		}
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	h := newTestHasher(t)

	hash, err := h.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	for _, wrong := range []string{"wrong-password", "correct-passwor", "Correct-password", ""} {
		ok, err := h.Verify(wrong, hash)
		if err != nil {
			t.Fatalf("Verify(%q): unexpected error %v", wrong, err)
		}
		if ok {
			t.Fatalf("Verify(%q) = true, want false", wrong)
		}
	}
}

func TestVerify_UsesStoredParameters(t *testing.T) {
	old, err := NewArgon2(Config{Memory: 2048, Time: 2, Parallelism: 2, SaltLength: 16, KeyLength: 32})
	if err != nil {
		t.Fatalf("NewArgon2: %v", err)
	}
	hash, err := old.Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	ok, err := newTestHasher(t).Verify("secret123", hash)
	if err != nil || !ok {
		t.Fatalf("Verify with different config = %v, %v; want true, nil", ok, err)
	}
}

func TestVerify_MalformedHash(t *testing.T) {
	h := newTestHasher(t)

	cases := map[string]string{
		"empty":                "",
		"plaintext":            "secret123",
		"bcrypt":               "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		"wrong version":        "$argon2id$v=16$m=1024,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA",
		"argon2i":              "$argon2i$v=19$m=1024,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA",
		"bad params":           "$argon2id$v=19$m=x,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA",
		"missing param":        "$argon2id$v=19$m=1024,t=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaA",
		"bad salt":             "$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA",
		"empty key":            "$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$",
		"memory too high":      "$argon2id$v=19$m=4294967295,t=1,p=1$c2FsdHNhbHRzYWx0$a2V5a2V5a2V5a2V5a2V5a2V5",
		"time too high":        "$argon2id$v=19$m=1024,t=11,p=1$c2FsdHNhbHRzYWx0$a2V5a2V5a2V5a2V5a2V5a2V5",
		"parallelism too high": "$argon2id$v=19$m=1024,t=1,p=17$c2FsdHNhbHRzYWx0$a2V5a2V5a2V5a2V5a2V5a2V5",
		"salt too long":        "$argon2id$v=19$m=1024,t=1,p=1$" + b64(maxSaltLength+1) + "$a2V5a2V5a2V5a2V5a2V5a2V5",
		"key too long":         "$argon2id$v=19$m=1024,t=1,p=1$c2FsdHNhbHRzYWx0$" + b64(maxKeyLength+1),
	}
	for name, enc := range cases {
		t.Run(name, func(t *testing.T) {
			ok, err := h.Verify("secret123", enc)
			if !errors.Is(err, ErrMalformedHash) {
				t.Fatalf("want ErrMalformedHash, got %v", err)
			}
			if ok {
				t.Fatal("malformed hash must not verify")
			}
		})
	}
}

func b64(n int) string {
	return base64.RawStdEncoding.EncodeToString(make([]byte, n))
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestHash_RandomFailure(t *testing.T) {
	h := newTestHasher(t)
	h.rand = failingReader{}

	if _, err := h.Hash("secret123"); !errors.Is(err, ErrHashing) {
		t.Fatalf("want ErrHashing, got %v", err)
	}
}

func TestNewArgon2_RejectsWeakConfig(t *testing.T) {
	bad := []Config{
		{Memory: 0, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		{Memory: 1024, Time: 0, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		{Memory: 1024, Time: 1, Parallelism: 0, SaltLength: 16, KeyLength: 32},
		{Memory: 1024, Time: 1, Parallelism: 1, SaltLength: 4, KeyLength: 32},
		{Memory: 1024, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 8},
		{Memory: maxMemory + 1, Time: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32},
		{Memory: 1024, Time: maxTime + 1, Parallelism: 1, SaltLength: 16, KeyLength: 32},
	}
	for i, cfg := range bad {
		if _, err := NewArgon2(cfg); err == nil {
			t.Errorf("case %d: expected error for %+v", i, cfg)
		}
	}
}
