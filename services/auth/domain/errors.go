package domain

import "errors"

// Sentinel errors for the auth domain. Use errors.Is() to check these.
var (
	// ErrInvalidPhone indicates the phone number does not have 10 digits.
	ErrInvalidPhone = errors.New("please enter a valid phone number")

	// ErrInvalidOTP indicates the code is wrong, expired, or was never issued.
	ErrInvalidOTP = errors.New("invalid or expired OTP")

	// ErrOTPAttemptsExceeded indicates the code was burned by wrong guesses.
	ErrOTPAttemptsExceeded = errors.New("too many attempts, request a new OTP")
)
