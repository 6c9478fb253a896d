package otp

import (
	"math/rand/v2"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Generate returns a random numeric code of the given length.
// Leading zeros are allowed.
func Generate(length int) string {
	if length <= 0 {
		length = 6
	}
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}

// Hash returns a bcrypt hash of the code
func Hash(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare reports whether the code matches the stored hash
func Compare(hash, code string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
