package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleProfessor = "professor"
	RoleStudent   = "student"
)

// Session is a validated set of claims extracted from a session token.
type Session struct {
	Role      string
	AccountID int64
	Email     string
}

func (s *Session) IsProfessor() bool {
	return s != nil && s.Role == RoleProfessor
}

func (s *Session) IsStudent() bool {
	return s != nil && s.Role == RoleStudent
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Role      string `json:"role"`
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
}

// TokenManager issues and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration, now func() time.Time) *TokenManager {
	if now == nil {
		now = time.Now
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}
}

func (m *TokenManager) Issue(role string, accountID int64, email string) (string, error) {
	if role != RoleProfessor && role != RoleStudent {
		return "", fmt.Errorf("unknown role %q", role)
	}

	issuedAt := m.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(m.ttl)),
		},
		Role:      role,
		AccountID: accountID,
		Email:     email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// Parse returns the session encoded in token, or nil if the token is
// missing, malformed, expired or signed with the wrong key. An invalid
// token is never an error, just an absent session.
func (m *TokenManager) Parse(token string) *Session {
	if token == "" {
		return nil
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil
	}

	if claims.Role != RoleProfessor && claims.Role != RoleStudent {
		return nil
	}

	return &Session{
		Role:      claims.Role,
		AccountID: claims.AccountID,
		Email:     claims.Email,
	}
}

// TTL reports the configured token lifetime, used for cookie expiry.
func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}
