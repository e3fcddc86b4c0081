package middleware

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// Session is the authenticated admin behind a request.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// SessionIssuer signs and verifies HMAC session tokens.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionIssuer(secret string, ttl time.Duration) *SessionIssuer {
	return &SessionIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *SessionIssuer) Issue(userID, email string) (string, *Session, error) {
	now := i.now()
	sess := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Email:     email,
		ExpiresAt: now.Add(i.ttl).Truncate(time.Second),
	}
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", nil, err
	}
	return token, sess, nil
}

func (i *SessionIssuer) Parse(tokenString string) (*Session, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	if claims.Subject == "" || claims.ID == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidSession
	}
	return &Session{
		ID:        claims.ID,
		UserID:    claims.Subject,
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
