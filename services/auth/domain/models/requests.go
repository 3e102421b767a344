package models

import "time"

// OTPRequest is the POST /auth/request-otp body.
type OTPRequest struct {
	PhoneNo string `json:"phoneNo" validate:"required,max=20" example:"98765 43210"`
} // @name OTPRequest

// VerifyOTPRequest is the POST /auth/verify-otp body.
type VerifyOTPRequest struct {
	PhoneNo string `json:"phoneNo" validate:"required,max=20"       example:"9876543210"`
	OTP     string `json:"otp"     validate:"required,len=6,numeric" example:"123456"`
	Name    string `json:"name,omitempty" validate:"max=100"        example:"Asha Rao"`
} // @name VerifyOTPRequest

// OTPResponse acknowledges a sent code. DevCode carries the code itself
// outside production, where no SMS provider is wired.
type OTPResponse struct {
	Message   string `json:"message"           example:"OTP sent"`
	ExpiresIn int    `json:"expiresIn"         example:"300"`
	DevCode   string `json:"devCode,omitempty" example:"123456"`
} // @name OTPResponse

// AuthResponse is returned by a successful verification.
type AuthResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	User        *User     `json:"user,omitempty"`
} // @name AuthResponse

// MeResponse is the GET /auth/me body.
type MeResponse struct {
	User *User `json:"user"`
} // @name MeResponse
