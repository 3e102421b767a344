package models

import (
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/homebook/services/auth/domain"
)

// PhoneDigits is the length of a national mobile number.
const PhoneDigits = 10

// countryCode is stripped from numbers entered in international form.
const countryCode = "91"

// userNamespace derives stable user IDs from phone numbers.
var userNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://homebook.app/users"))

// User is a customer identified by their phone number.
type User struct {
	ID    uuid.UUID `json:"id"              example:"3b241101-e2bb-4255-8caf-4136c566a962"`
	Phone string    `json:"phoneNo"         example:"9876543210"`
	Name  string    `json:"name,omitempty"  example:"Asha Rao"`
	Email string    `json:"email,omitempty" example:"asha@example.com"`
} // @name User

// NormalizePhone reduces raw to its PhoneDigits national digits. Spaces,
// dashes and a leading +91 or 0 are accepted; anything else that does not
// leave exactly PhoneDigits digits is ErrInvalidPhone.
func NormalizePhone(raw string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, raw)

	switch {
	case len(digits) == PhoneDigits+len(countryCode) && strings.HasPrefix(digits, countryCode):
		digits = digits[len(countryCode):]
	case len(digits) == PhoneDigits+1 && digits[0] == '0':
		digits = digits[1:]
	}
	if len(digits) != PhoneDigits {
		return "", domain.ErrInvalidPhone
	}
	return digits, nil
}

// UserIDForPhone returns the user ID for a normalized phone. The same phone
// always maps to the same ID, so no users table is needed to log in.
func UserIDForPhone(phone string) uuid.UUID {
	return uuid.NewSHA1(userNamespace, []byte(phone))
}

// NewUser returns the user for a normalized phone.
func NewUser(phone, name string) *User {
	return &User{ID: UserIDForPhone(phone), Phone: phone, Name: name}
}
