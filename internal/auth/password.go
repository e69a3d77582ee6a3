package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Cost parameters for newly hashed passwords. Verification reads the cost
// back out of the stored string, so these can be raised later without
// invalidating existing accounts.
const (
	hashIterations  uint32 = 3
	hashMemoryKiB   uint32 = 64 * 1024
	hashParallelism uint8  = 1
	hashKeyLen      uint32 = 32
	hashSaltLen            = 16
)

// ErrMalformedHash means a stored credential could not be parsed. It points
// at corrupt data in the usuarios table, never at a wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

// HashPassword derives an Argon2id key from the password and encodes it as
// a PHC string ($argon2id$v=19$m=...,t=...,p=...$<salt>$<key>) suitable for
// storage alongside the account.
func HashPassword(password string) (string, error) {
	salt := make([]byte, hashSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("reading salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt,
		hashIterations, hashMemoryKiB, hashParallelism, hashKeyLen)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, hashMemoryKiB, hashIterations, hashParallelism,
		b64.EncodeToString(salt), b64.EncodeToString(key)), nil
}

// VerifyPassword reports whether the password matches a stored PHC string.
// The key comparison is constant time. A non-nil error always means the
// stored string itself is unusable, so callers can treat it as a storage
// fault rather than a failed login.
func VerifyPassword(password, stored string) (bool, error) {
	rest, found := strings.CutPrefix(stored, "$argon2id$")
	if !found {
		return false, fmt.Errorf("%w: not an argon2id PHC string", ErrMalformedHash)
	}
	fields := strings.Split(rest, "$")
	if len(fields) != 4 {
		return false, fmt.Errorf("%w: expected version, params, salt and key", ErrMalformedHash)
	}

	var version int
	if _, err := fmt.Sscanf(fields[0], "v=%d", &version); err != nil {
		return false, fmt.Errorf("%w: version field %q", ErrMalformedHash, fields[0])
	}

	var (
		memoryKiB   uint32
		iterations  uint32
		parallelism uint8
	)
	if _, err := fmt.Sscanf(fields[1], "m=%d,t=%d,p=%d", &memoryKiB, &iterations, &parallelism); err != nil {
		return false, fmt.Errorf("%w: cost field %q", ErrMalformedHash, fields[1])
	}

	salt, err := base64.RawStdEncoding.DecodeString(fields[2])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %w", ErrMalformedHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(fields[3])
	if err != nil {
		return false, fmt.Errorf("%w: key: %w", ErrMalformedHash, err)
	}

	got := argon2.IDKey([]byte(password), salt,
		iterations, memoryKiB, parallelism, uint32(len(want)))

	return subtle.ConstantTimeCompare(want, got) == 1, nil
}
