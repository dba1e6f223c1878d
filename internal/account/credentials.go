package account

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Password lengths used at provisioning time and for admin-triggered resets.
const (
	TempPasswordLength  = 8
	ResetPasswordLength = 10
)

// GenerateUsername builds "first.last" in lowercase and appends an
// incrementing integer suffix until the candidate is free. The result is only
// a candidate: the insert still races against concurrent provisioning, so
// callers must retry on a unique-constraint conflict.
func GenerateUsername(firstName, lastName string, exists func(string) (bool, error)) (string, error) {
	base := strings.ToLower(strings.TrimSpace(firstName)) + "." + strings.ToLower(strings.TrimSpace(lastName))
	candidate := base
	for counter := 1; ; counter++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", fmt.Errorf("check username %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, counter)
	}
}

// GenerateTempPassword returns a cryptographically random password drawn
// from letters and digits.
func GenerateTempPassword(length int) (string, error) {
	if length <= 0 {
		length = TempPasswordLength
	}
	var sb strings.Builder
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		sb.WriteByte(passwordAlphabet[n.Int64()])
	}
	return sb.String(), nil
}
