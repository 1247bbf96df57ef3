package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid session token")

// Session identifies one anonymous shopper and, through it, one cart.
type Session struct {
	ID        string
	ExpiresAt time.Time
}

// SessionService issues and verifies HMAC-signed session tokens.
type SessionService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

func NewSessionService(secret string, expiration time.Duration) *SessionService {
	return &SessionService{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

type sessionClaims struct {
	jwt.RegisteredClaims
}

func (s *SessionService) Issue() (string, *Session, error) {
	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		ExpiresAt: now.Add(s.expiration),
	}

	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, err
	}
	return signed, session, nil
}

func (s *SessionService) Parse(token string) (*Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidSession
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, ErrInvalidSession
	}

	session := &Session{ID: claims.Subject}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
