// Package session keeps the client's auth credential and cached profile.
//
// Values are sealed with gorilla/securecookie before they reach the KV, so a
// copied session file or Redis dump is useless without the keys. The hash key
// should be 32 or 64 bytes and the block key 16, 24, or 32 bytes:
//
//	openssl rand -base64 32
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gorilla/securecookie"
)

// Storage keys, shared with the mobile client's secure storage layout.
const (
	KeyCredential = "auth_token"
	KeyProfile    = "user_data"
)

// Profile is the cached user record returned by verification and /auth/me.
type Profile struct {
	ID    string `json:"id"`
	Phone string `json:"phoneNo"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Store holds at most one credential and one cached profile. It is safe for
// concurrent use. Callers receive it by injection; there is no package-level
// instance.
type Store struct {
	kv    KV
	codec *securecookie.SecureCookie
	mu    sync.Mutex
}

// NewStore seals values with hashKey (HMAC) and blockKey (AES) and persists
// them in kv. A nil blockKey disables encryption but keeps authentication.
func NewStore(kv KV, hashKey, blockKey []byte) (*Store, error) {
	if len(hashKey) == 0 {
		return nil, errors.New("session: hash key is required")
	}
	switch len(blockKey) {
	case 0, 16, 24, 32:
	default:
		return nil, fmt.Errorf("session: block key must be 16, 24 or 32 bytes, got %d", len(blockKey))
	}

	codec := securecookie.New(hashKey, blockKey).
		MaxAge(0).
		MaxLength(0).
		SetSerializer(securecookie.JSONEncoder{})

	return &Store{kv: kv, codec: codec}, nil
}

// Credential returns the stored bearer token. ok is false when no credential
// is held or the stored value fails authentication.
func (s *Store) Credential(ctx context.Context) (token string, ok bool, err error) {
	var v string
	found, err := s.read(ctx, KeyCredential, &v)
	if err != nil || !found || v == "" {
		return "", false, err
	}
	return v, true, nil
}

// Profile returns the cached profile or ErrNotFound.
func (s *Store) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	found, err := s.read(ctx, KeyProfile, &p)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return &p, nil
}

// Save replaces the session with token and profile. A nil profile removes
// any cached one so the pair never mixes two users.
func (s *Store) Save(ctx context.Context, token string, profile *Profile) error {
	if token == "" {
		return errors.New("session: empty credential")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(ctx, KeyCredential, token); err != nil {
		return err
	}
	if profile == nil {
		if err := s.kv.Delete(ctx, KeyProfile); err != nil {
			return fmt.Errorf("session: delete profile: %w", err)
		}
		return nil
	}
	return s.write(ctx, KeyProfile, profile)
}

// SaveProfile refreshes the cached profile without touching the credential.
func (s *Store) SaveProfile(ctx context.Context, profile *Profile) error {
	if profile == nil {
		return errors.New("session: nil profile")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(ctx, KeyProfile, profile)
}

// Clear removes the credential and the cached profile. Clearing an empty
// store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, key := range []string{KeyCredential, KeyProfile} {
		if err := s.kv.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("session: delete %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// read reports found=false for a missing key and for values that do not
// authenticate under the current keys.
func (s *Store) read(ctx context.Context, key string, dst any) (found bool, err error) {
	raw, err := s.kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("session: get %s: %w", key, err)
	}
	if err := s.codec.Decode(key, raw, dst); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *Store) write(ctx context.Context, key string, v any) error {
	sealed, err := s.codec.Encode(key, v)
	if err != nil {
		return fmt.Errorf("session: seal %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, sealed); err != nil {
		return fmt.Errorf("session: set %s: %w", key, err)
	}
	return nil
}
