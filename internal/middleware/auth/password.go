package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts. Longer passwords are rejected rather than truncated.
const MaxPasswordBytes = 72

var (
	ErrPasswordTooLong  = errors.New("password exceeds 72 bytes")
	ErrPasswordMismatch = errors.New("password does not match")
)

// unknownAccountHash stands in for a missing account so a failed lookup costs one bcrypt compare too.
var unknownAccountHash, _ = bcrypt.GenerateFromPassword([]byte("unknown-account"), bcrypt.DefaultCost)

// HashPassword creates a bcrypt hash from the given plaintext password.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks the plaintext against the stored hash and returns ErrPasswordMismatch on any failure.
// An empty hash means the account does not exist; the comparison still runs.
func VerifyPassword(hashedPassword, providedPassword string) error {
	hash := []byte(hashedPassword)
	if hashedPassword == "" {
		hash = unknownAccountHash
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(providedPassword)); err != nil || hashedPassword == "" {
		return ErrPasswordMismatch
	}
	return nil
}
