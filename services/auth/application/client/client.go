// Package client is the customer side of the OTP login. It talks to the
// auth endpoints through the gateway and keeps the resulting credential and
// profile in the session store.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ghuser/homebook/pkg/auth"
	"github.com/ghuser/homebook/pkg/gateway"
	"github.com/ghuser/homebook/pkg/logger"
	"github.com/ghuser/homebook/pkg/session"
	"github.com/ghuser/homebook/services/auth/domain/models"
)

// API is the part of the gateway the client uses.
type API interface {
	Do(ctx context.Context, req gateway.Request, out any) error
}

// Sessions is the part of the session store the client writes.
type Sessions interface {
	Save(ctx context.Context, token string, profile *session.Profile) error
	SaveProfile(ctx context.Context, profile *session.Profile) error
	Clear(ctx context.Context) error
}

// Client runs login, profile refresh and logout.
type Client struct {
	api      API
	sessions Sessions
	log      logger.Logger
}

// New returns a Client. A nil log discards output.
func New(api API, sessions Sessions, log logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{api: api, sessions: sessions, log: log}
}

// RequestOTP asks the API to send a code to phone.
func (c *Client) RequestOTP(ctx context.Context, phone string) (*models.OTPResponse, error) {
	var resp models.OTPResponse
	err := c.api.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/request-otp",
		Body:   models.OTPRequest{PhoneNo: phone},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyOTP exchanges code for an access token and stores it with the
// user's profile. When the response carries no user, the profile is read
// from the token's claims.
func (c *Client) VerifyOTP(ctx context.Context, phone, code, name string) (*session.Profile, error) {
	var resp models.AuthResponse
	err := c.api.Do(ctx, gateway.Request{
		Method: http.MethodPost,
		Path:   "/auth/verify-otp",
		Body:   models.VerifyOTPRequest{PhoneNo: phone, OTP: code, Name: name},
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, errors.New("auth: response carried no access token")
	}

	profile := profileOf(resp.User)
	if profile == nil {
		profile, err = profileFromToken(resp.AccessToken)
		if err != nil {
			return nil, err
		}
	}

	if err := c.sessions.Save(ctx, resp.AccessToken, profile); err != nil {
		return nil, fmt.Errorf("auth: save session: %w", err)
	}
	c.log.DebugContext(ctx, "logged in", "user_id", profile.ID)
	return profile, nil
}

// Me fetches the current user and refreshes the cached profile. A 401 here
// has already cleared the session in the gateway.
func (c *Client) Me(ctx context.Context) (*session.Profile, error) {
	var resp models.MeResponse
	if err := c.api.Do(ctx, gateway.Request{Method: http.MethodGet, Path: "/auth/me"}, &resp); err != nil {
		return nil, err
	}
	profile := profileOf(resp.User)
	if profile == nil {
		return nil, errors.New("auth: response carried no user")
	}
	if err := c.sessions.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("auth: save profile: %w", err)
	}
	return profile, nil
}

// Logout forgets the credential and the cached profile.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("auth: logout: %w", err)
	}
	c.log.DebugContext(ctx, "logged out")
	return nil
}

func profileOf(u *models.User) *session.Profile {
	if u == nil {
		return nil
	}
	return &session.Profile{ID: u.ID.String(), Phone: u.Phone, Name: u.Name, Email: u.Email}
}

func profileFromToken(raw string) (*session.Profile, error) {
	claims, err := auth.DecodeUnverified(raw)
	if err != nil {
		return nil, fmt.Errorf("auth: decode token: %w", err)
	}
	return &session.Profile{ID: claims.Subject, Phone: claims.Phone, Name: claims.Name}, nil
}
