/*
auth.go - Manager session tokens

PURPOSE:
  The privileged operations (staff edits, report export) require a
  manager. Authentication is a single password check per session: a
  successful POST /api/auth/login yields a signed HS256 token, and the
  RequireManager middleware verifies it on gated routes. The engine
  itself performs no other authentication.

TOKEN:
  JWT, subject "manager", expiry from SESSION_TTL. Stateless; there is
  no revocation list, matching the session lifetime of the desktop
  predecessor.
*/
package api

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const managerSubject = "manager"

// Auth issues and verifies manager session tokens.
type Auth struct {
	password string
	secret   []byte
	ttl      time.Duration
}

func NewAuth(password, secret string, ttl time.Duration) *Auth {
	return &Auth{password: password, secret: []byte(secret), ttl: ttl}
}

// Login checks the manager password and returns a session token.
func (a *Auth) Login(password string) (string, time.Time, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) != 1 {
		return "", time.Time{}, errors.New("wrong password")
	}

	exp := time.Now().Add(a.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   managerSubject,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	return token, exp, err
}

// Verify checks a session token.
func (a *Auth) Verify(tokenStr string) error {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject != managerSubject {
		return errors.New("invalid token")
	}
	return nil
}

// RequireManager gates a route group behind a valid session token.
func (a *Auth) RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenStr := strings.TrimPrefix(header, "Bearer ")
		if tokenStr == "" || tokenStr == header {
			writeError(w, http.StatusUnauthorized, "Manager login required", nil)
			return
		}
		if err := a.Verify(tokenStr); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired session", err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
