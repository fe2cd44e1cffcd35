// Package password derives and verifies Argon2id password hashes encoded in
// the PHC string format ($argon2id$v=19$m=...,t=...,p=...$salt$hash).
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const algorithmID = "argon2id"

// Upper bounds on what a stored hash may ask Verify to compute. argon2.IDKey
// allocates memory KiB up front, so an unchecked m can exhaust the process.
const (
	maxMemory      = 1 << 21 // KiB, 2 GiB
	maxTime        = 10
	maxParallelism = 16
	maxSaltLength  = 64
	maxKeyLength   = 128
)

var (
	// ErrMalformedHash means the stored string is not a PHC-encoded Argon2id
	// hash this package can read. A wrong password is not an error.
	ErrMalformedHash = errors.New("malformed password hash")
	ErrHashing       = errors.New("password hashing failed")
)

type Config struct {
	Memory      uint32 // KiB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

func DefaultConfig() Config {
	return Config{
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

type Argon2 struct {
	config Config
	rand   io.Reader
}

func NewArgon2(cfg Config) (*Argon2, error) {
	if cfg.Memory == 0 || cfg.Time == 0 || cfg.Parallelism == 0 {
		return nil, errors.New("argon2: memory, time and parallelism must be positive")
	}
	if cfg.SaltLength < 8 || cfg.KeyLength < 16 {
		return nil, errors.New("argon2: salt must be >= 8 bytes and key >= 16 bytes")
	}
	if cfg.Memory > maxMemory || cfg.Time > maxTime || cfg.Parallelism > maxParallelism ||
		cfg.SaltLength > maxSaltLength || cfg.KeyLength > maxKeyLength {
		return nil, errors.New("argon2: parameters exceed what Verify accepts")
	}
	return &Argon2{config: cfg, rand: rand.Reader}, nil
}

// Hash derives a hash with a fresh random salt, so two calls with the same
// password return different strings.
func (a *Argon2) Hash(password string) (string, error) {
	salt := make([]byte, a.config.SaltLength)
	if _, err := io.ReadFull(a.rand, salt); err != nil {
		return "", fmt.Errorf("%w: read salt: %w", ErrHashing, err)
	}

	key := argon2.IDKey(
		[]byte(password),
		salt,
		a.config.Time,
		a.config.Memory,
		a.config.Parallelism,
		a.config.KeyLength,
	)

	return fmt.Sprintf(
		"$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		a.config.Memory,
		a.config.Time,
		a.config.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the hash with the parameters and salt stored in
// encodedHash and compares in constant time.
func (a *Argon2) Verify(password, encodedHash string) (bool, error) {
	p, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), p.salt, p.time, p.memory, p.parallelism, uint32(len(p.key)))

	return subtle.ConstantTimeCompare(computed, p.key) == 1, nil
}

type phc struct {
	memory      uint32
	time        uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func parsePHC(encoded string) (*phc, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 6 segments", ErrMalformedHash)
	}
	if parts[1] != algorithmID {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrMalformedHash, parts[1])
	}

	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if err != nil || !strings.HasPrefix(parts[2], "v=") {
		return nil, fmt.Errorf("%w: bad version segment", ErrMalformedHash)
	}
	if version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedHash, version)
	}

	p := &phc{}
	if err := parseParams(parts[3], p); err != nil {
		return nil, err
	}

	// Accept padded encodings written by other PHC implementations.
	if p.salt, err = decodeB64(parts[4]); err != nil || len(p.salt) == 0 || len(p.salt) > maxSaltLength {
		return nil, fmt.Errorf("%w: bad salt", ErrMalformedHash)
	}
	if p.key, err = decodeB64(parts[5]); err != nil || len(p.key) == 0 || len(p.key) > maxKeyLength {
		return nil, fmt.Errorf("%w: bad key", ErrMalformedHash)
	}
	return p, nil
}

func parseParams(s string, p *phc) error {
	seen := 0
	for _, kv := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("%w: bad parameter %q", ErrMalformedHash, kv)
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			return fmt.Errorf("%w: bad parameter %q", ErrMalformedHash, kv)
		}
		switch k {
		case "m":
			if n > maxMemory {
				return fmt.Errorf("%w: memory out of range", ErrMalformedHash)
			}
			p.memory = uint32(n)
		case "t":
			if n > maxTime {
				return fmt.Errorf("%w: time out of range", ErrMalformedHash)
			}
			p.time = uint32(n)
		case "p":
			if n > maxParallelism {
				return fmt.Errorf("%w: parallelism out of range", ErrMalformedHash)
			}
			p.parallelism = uint8(n)
		default:
			return fmt.Errorf("%w: unknown parameter %q", ErrMalformedHash, k)
		}
		seen++
	}
	if seen != 3 || p.memory == 0 || p.time == 0 || p.parallelism == 0 {
		return fmt.Errorf("%w: missing parameters", ErrMalformedHash)
	}
	return nil
}

func decodeB64(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
}
