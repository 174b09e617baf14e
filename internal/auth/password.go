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

// ErrHashing means the hasher itself failed (entropy exhaustion), not
// that a password mismatched.
var ErrHashing = errors.New("password hashing failed")

// Argon2Params tunes the argon2id work factor. Raise Time or Memory as
// hardware improves; Verify always recomputes with the hasher's own
// params, so both sides of a deployment must agree.
type Argon2Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		SaltLen: 16,
		KeyLen:  32,
	}
}

// PasswordHasher derives and checks argon2id password hashes, encoded as
// base64(salt):base64(key). Safe for concurrent use.
type PasswordHasher struct {
	params Argon2Params
}

func NewPasswordHasher(params Argon2Params) *PasswordHasher {
	return &PasswordHasher{params: params}
}

// Hash salts and hashes the plaintext. Two calls with the same input
// produce different outputs because the salt is drawn fresh each time.
func (h *PasswordHasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashing, err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	return fmt.Sprintf("%s:%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether password matches the encoded hash. Malformed
// encodings verify false rather than erroring, and the comparison is
// constant-time.
func (h *PasswordHasher) Verify(password, encoded string) bool {
	saltB64, keyB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}

	expected, err := base64.RawStdEncoding.DecodeString(keyB64)
	if err != nil {
		return false
	}

	// Recompute with the hasher's own key length; a truncated stored
	// value then fails the length check inside the compare.
	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)
	return subtle.ConstantTimeCompare(key, expected) == 1
}
