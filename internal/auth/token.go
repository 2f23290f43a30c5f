package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("the token is invalid or has expired")

type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
	TokenReset   TokenType = "password_reset"
)

// Claims are the JWT claims of all Pennywise tokens. The subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Type TokenType `json:"typ"`

	// Fingerprint binds password reset tokens to the password hash at issue time
	Fingerprint string `json:"fp,omitempty"`
}

// Pair is a session: a short lived access token and the refresh token to renew it.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Manager issues and verifies tokens signed with HMAC-SHA256.
type Manager struct {
	secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	ResetTTL   time.Duration
	now        func() time.Time
}

func NewManager(secret string, accessTTL, refreshTTL, resetTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		ResetTTL:   resetTTL,
		now:        time.Now,
	}
}

func (m *Manager) sign(user uuid.UUID, typ TokenType, ttl time.Duration, fingerprint string) (string, error) {
	now := m.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
		Type:        typ,
		Fingerprint: fingerprint,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", typ, err)
	}

	return signed, nil
}

func (m *Manager) parse(token string, typ TokenType) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != typ {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func subject(claims *Claims) (uuid.UUID, error) {
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return id, nil
}

// IssueAccess returns a new access token for the user.
func (m *Manager) IssueAccess(user uuid.UUID) (string, error) {
	return m.sign(user, TokenAccess, m.AccessTTL, "")
}

// IssuePair returns a new access and refresh token for the user.
func (m *Manager) IssuePair(user uuid.UUID) (Pair, error) {
	access, err := m.IssueAccess(user)
	if err != nil {
		return Pair{}, err
	}

	refresh, err := m.sign(user, TokenRefresh, m.RefreshTTL, "")
	if err != nil {
		return Pair{}, err
	}

	return Pair{Access: access, Refresh: refresh}, nil
}

// ParseAccess verifies an access token and returns the user ID.
func (m *Manager) ParseAccess(token string) (uuid.UUID, error) {
	claims, err := m.parse(token, TokenAccess)
	if err != nil {
		return uuid.Nil, err
	}

	return subject(claims)
}

// ParseRefresh verifies a refresh token and returns the user ID.
func (m *Manager) ParseRefresh(token string) (uuid.UUID, error) {
	claims, err := m.parse(token, TokenRefresh)
	if err != nil {
		return uuid.Nil, err
	}

	return subject(claims)
}

// fingerprint derives a short value from the password hash. It changes
// whenever the password is changed.
func fingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return base64.RawURLEncoding.EncodeToString(sum[:12])
}

// ResetToken returns a password reset token for the user. The token becomes
// invalid once the password is changed.
func (m *Manager) ResetToken(user uuid.UUID, passwordHash string) (string, error) {
	return m.sign(user, TokenReset, m.ResetTTL, fingerprint(passwordHash))
}

// VerifyResetToken checks a password reset token against the user it was
// issued for.
func (m *Manager) VerifyResetToken(token string, user uuid.UUID, passwordHash string) error {
	claims, err := m.parse(token, TokenReset)
	if err != nil {
		return err
	}

	id, err := subject(claims)
	if err != nil {
		return err
	}

	if id != user || claims.Fingerprint != fingerprint(passwordHash) {
		return ErrInvalidToken
	}

	return nil
}
