package utils

import (
	"crypto/rand"
	"math/big"
	"os"
	"strconv"
)

const (
	// DefaultOTPLength is used when OTP_LENGTH is unset or invalid.
	DefaultOTPLength = 6
	// OTPTTLSeconds is the lifetime of a password-reset code.
	OTPTTLSeconds = 600
)

// OTPLength reads the configured code length.
func OTPLength() int {
	if v, err := strconv.Atoi(os.Getenv("OTP_LENGTH")); err == nil && v > 0 {
		return v
	}
	return DefaultOTPLength
}

// GenerateNumericOTP returns a fixed-width numeric code. Every digit is drawn
// uniformly, so leading zeros are as likely as any other digit.
func GenerateNumericOTP(length int) (string, error) {
	if length <= 0 {
		length = DefaultOTPLength
	}
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
