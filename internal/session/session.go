// Package session decides, once per request, which identity a cart or
// wishlist is scoped to: the authenticated user from the access token, or an
// anonymous guest id carried in a cookie.
package session

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	GuestCookie = "guestID"
	ctxKey      = "session"

	guestCookieTTL = 30 * 24 * time.Hour
)

type Session struct {
	UserID  uint
	GuestID string
}

// Authenticated reports whether the session belongs to a logged-in user. The
// guest id may still be set alongside, which login uses to merge carts.
func (s Session) Authenticated() bool {
	return s.UserID != 0
}

// Middleware resolves the session for cart/wishlist routes. A valid access
// token wins; otherwise the request runs as the guest from the cookie, which
// is created on first contact.
func Middleware(jwtSecret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := Session{}

			if cookie, err := c.Cookie("accessToken"); err == nil {
				if id, ok := parseUserID(cookie.Value, jwtSecret); ok {
					sess.UserID = id
				}
			}

			if cookie, err := c.Cookie(GuestCookie); err == nil && cookie.Value != "" {
				sess.GuestID = cookie.Value
			} else if !sess.Authenticated() {
				sess.GuestID = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     GuestCookie,
					Value:    sess.GuestID,
					Path:     "/",
					Expires:  time.Now().Add(guestCookieTTL),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(ctxKey, sess)
			return next(c)
		}
	}
}

func FromContext(c echo.Context) Session {
	if v, ok := c.Get(ctxKey).(Session); ok {
		return v
	}
	return Session{}
}

func parseUserID(tokenString string, secret []byte) (uint, bool) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, false
	}
	return uint(sub), true
}
