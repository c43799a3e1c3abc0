package validator

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Character sets for password generation. The special set mirrors what
// specialCharRegex accepts, so generated passwords always score 5.
const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	specialChars   = `!@#$%^&*(),.?":{}|<>_`

	// MinGeneratedLength is the floor applied to GeneratePassword requests.
	MinGeneratedLength = 8

	// DefaultGeneratedLength is used when no length preference exists.
	DefaultGeneratedLength = 16
)

// ErrPasswordGeneration indicates the system randomness source failed.
var ErrPasswordGeneration = errors.New("failed to generate password")

// GeneratePassword returns a random password of the requested length with at
// least one lowercase letter, one uppercase letter, one digit, and one
// special character. Lengths below MinGeneratedLength are raised to it.
// Randomness comes from crypto/rand, including the final shuffle.
func GeneratePassword(length int) (string, error) {
	if length < MinGeneratedLength {
		length = MinGeneratedLength
	}

	classes := []string{lowercaseChars, uppercaseChars, digitChars, specialChars}
	allChars := lowercaseChars + uppercaseChars + digitChars + specialChars

	password := make([]byte, 0, length)
	for _, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}
	for len(password) < length {
		c, err := randomChar(allChars)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	// Fisher-Yates so the guaranteed class characters do not sit at fixed
	// positions.
	for i := len(password) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", errors.Join(ErrPasswordGeneration, err)
		}
		j := n.Int64()
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, errors.Join(ErrPasswordGeneration, err)
	}
	return set[n.Int64()], nil
}
