package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumericOTPFixedWidth(t *testing.T) {
	for _, length := range []int{4, 6, 8} {
		otp, err := GenerateNumericOTP(length)
		require.NoError(t, err)
		assert.Len(t, otp, length)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9', "non-digit %q in %q", r, otp)
		}
	}
}

func TestGenerateNumericOTPDefaultsBadLength(t *testing.T) {
	otp, err := GenerateNumericOTP(0)
	require.NoError(t, err)
	assert.Len(t, otp, DefaultOTPLength)

	otp, err = GenerateNumericOTP(-5)
	require.NoError(t, err)
	assert.Len(t, otp, DefaultOTPLength)
}

func TestOTPLengthFromEnv(t *testing.T) {
	t.Setenv("OTP_LENGTH", "8")
	assert.Equal(t, 8, OTPLength())

	t.Setenv("OTP_LENGTH", "garbage")
	assert.Equal(t, DefaultOTPLength, OTPLength())

	t.Setenv("OTP_LENGTH", "-2")
	assert.Equal(t, DefaultOTPLength, OTPLength())
}
