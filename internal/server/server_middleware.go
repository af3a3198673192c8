package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/brk3/habitcal/internal/logger"
	"github.com/gorilla/securecookie"
)

const (
	identityCookieName = "employee"
	identityMaxAge     = 365 * 24 * time.Hour
	employeeHeader     = "X-Employee-Name"
)

type employeeCtxKey struct{}

// newIdentityCookie builds the codec for the employee cookie. Empty keys are
// replaced with random ones.
func newIdentityCookie(hashKey, blockKey string) (*securecookie.SecureCookie, error) {
	hk := []byte(hashKey)
	if len(hk) == 0 {
		hk = securecookie.GenerateRandomKey(64)
	}
	bk := []byte(blockKey)
	if len(bk) == 0 {
		bk = securecookie.GenerateRandomKey(32)
	}
	if hk == nil || bk == nil {
		return nil, fmt.Errorf("failed to generate secure cookie keys")
	}
	switch len(bk) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("cookie block key must be 16, 24 or 32 bytes, got %d", len(bk))
	}
	sc := securecookie.New(hk, bk)
	sc.MaxAge(int(identityMaxAge.Seconds()))
	return sc, nil
}

// identityMiddleware resolves who is using the leave calendar: the signed
// cookie first, then the X-Employee-Name header.
func (s *Server) identityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var name string
		if c, err := r.Cookie(identityCookieName); err == nil {
			if err := s.cookies.Decode(identityCookieName, c.Value, &name); err != nil {
				logger.Debug("Failed to decode identity cookie", "error", err)
				name = ""
			}
		}
		if name == "" {
			name = strings.TrimSpace(r.Header.Get(employeeHeader))
		}
		ctx := context.WithValue(r.Context(), employeeCtxKey{}, name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func employeeFromContext(r *http.Request) string {
	name, _ := r.Context().Value(employeeCtxKey{}).(string)
	return name
}

func (s *Server) setIdentityCookie(w http.ResponseWriter, r *http.Request, name string) error {
	val, err := s.cookies.Encode(identityCookieName, name)
	if err != nil {
		return fmt.Errorf("failed to encode identity cookie: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     identityCookieName,
		Value:    val,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(identityMaxAge.Seconds()),
	})
	return nil
}
