package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName carries the signed session token.
const CookieName = "mechapp_session"

var ErrInvalidToken = errors.New("auth: invalid token")

type Claims struct {
	SessionID string
	UserID    uint
	Role      string
}

type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) TTL() time.Duration { return t.ttl }

func (t *Tokens) Issue(c Claims) (string, error) {
	now := t.now()
	claims := jwt.MapClaims{
		"sid":  c.SessionID,
		"sub":  c.UserID,
		"role": c.Role,
		"exp":  now.Add(t.ttl).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) Parse(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sid, ok1 := claims["sid"].(string)
	sub, ok2 := claims["sub"].(float64)
	role, _ := claims["role"].(string)
	if !ok1 || !ok2 || sid == "" {
		return Claims{}, ErrInvalidToken
	}

	return Claims{SessionID: sid, UserID: uint(sub), Role: role}, nil
}
