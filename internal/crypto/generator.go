package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"

	"github.com/getcovered/userapi-go/internal/validation"
)

const (
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	numberChars    = "0123456789"
	symbolChars    = validation.SpecialChars

	MinLength     = validation.MinPasswordLength
	MaxLength     = 128
	DefaultLength = 16
)

var (
	ErrLengthTooShort = errors.New("password length must be at least 12")
	ErrLengthTooLong  = errors.New("password length must be at most 128")
)

// GeneratePassword returns a cryptographically random password of the given
// length containing at least one character of every class the password
// policy requires.
func GeneratePassword(length int) (string, error) {
	if length < MinLength {
		return "", ErrLengthTooShort
	}
	if length > MaxLength {
		return "", ErrLengthTooLong
	}

	requiredSets := []string{uppercaseChars, lowercaseChars, numberChars, symbolChars}
	pool := uppercaseChars + lowercaseChars + numberChars + symbolChars

	result := make([]byte, length)

	// Guarantee at least one character from each class.
	for i, charset := range requiredSets {
		ch, err := randChar(charset)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	// Fill the remaining positions from the full pool.
	for i := len(requiredSets); i < length; i++ {
		ch, err := randChar(pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	// Securely shuffle using Fisher-Yates with crypto/rand.
	if err := secureShuffle(result); err != nil {
		return "", err
	}

	return string(result), nil
}

// randChar picks a random character from charset using crypto/rand.
func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}

// secureShuffle performs a Fisher-Yates shuffle using crypto/rand.
func secureShuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}
