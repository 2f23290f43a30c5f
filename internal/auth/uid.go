package auth

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// EncodeUID encodes a user ID for use in password reset links.
func EncodeUID(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(id.String()))
}

// DecodeUID reverses EncodeUID.
func DecodeUID(s string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	id, err := uuid.Parse(string(raw))
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return id, nil
}
