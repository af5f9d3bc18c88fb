package usecase

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
)

const (
	minVerificationCode = 100000
	maxVerificationCode = 999999
)

// GenerateVerificationCode returns a uniformly random 6-digit code in [100000, 999999].
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxVerificationCode-minVerificationCode+1))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+minVerificationCode, 10), nil
}
