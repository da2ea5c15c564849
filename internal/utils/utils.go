// Package utils holds the identifier and credential helpers the sandbox
// backend shares between its services.
package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// referenceAlphabet drops 0/O and 1/I so references survive being read aloud.
const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ErrPasswordTooLong is returned for secrets bcrypt would silently truncate.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// GenerateID returns prefix-<uuid>.
func GenerateID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// GenerateReference returns an upper-case partner reference such as
// "AFL-7KQ2M9XC4T".
func GenerateReference(prefix string) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(prefix))
	b.WriteByte('-')
	b.WriteString(randomString(referenceAlphabet, 10))
	return b.String()
}

// GenerateAccountNumber returns a wallet account number: "AF" and 8 digits.
func GenerateAccountNumber() string {
	return "AF" + randomString("0123456789", 8)
}

func randomString(alphabet string, n int) string {
	out := make([]byte, n)
	limit := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			panic(fmt.Sprintf("utils: crypto/rand unavailable: %v", err))
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}

// HashPassword bcrypt-hashes password at the default cost.
func HashPassword(password string) (string, error) {
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
