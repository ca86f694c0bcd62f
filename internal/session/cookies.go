package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/instituto-brotar/painel-brotar/internal/models"
)

// Cookie names shared with the route guard
const (
	AuthCookie           = "brotar.auth-token"
	RequiresChangeCookie = "brotar.requires-change"
	UserCookie           = "brotar.user"
	BrowserCookie        = "brotar.sid"
)

// Cookies writes and clears the session cookie mirror
type Cookies struct {
	Secure bool
	MaxAge time.Duration
}

// NewCookies returns the cookie writer. A non-positive maxAge means one day.
func NewCookies(secure bool, maxAge time.Duration) Cookies {
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}
	return Cookies{Secure: secure, MaxAge: maxAge}
}

// Persist mirrors a logged-in session into cookies. The requires-change
// cookie is set when requiresChange is true and removed otherwise.
func (c Cookies) Persist(w http.ResponseWriter, identity models.Identity, token string, requiresChange bool) error {
	encoded, err := encodeIdentity(identity)
	if err != nil {
		return err
	}

	c.set(w, AuthCookie, token, true)
	c.set(w, UserCookie, encoded, true)
	if requiresChange {
		c.set(w, RequiresChangeCookie, "true", false)
	} else {
		c.expire(w, RequiresChangeCookie)
	}
	return nil
}

// ClearRequiresChange drops the forced password change marker
func (c Cookies) ClearRequiresChange(w http.ResponseWriter) {
	c.expire(w, RequiresChangeCookie)
}

// Clear removes every session cookie except the browser id
func (c Cookies) Clear(w http.ResponseWriter) {
	c.expire(w, AuthCookie)
	c.expire(w, UserCookie)
	c.expire(w, RequiresChangeCookie)
}

// SetBrowserID stores the opaque id keying per-browser UI state
func (c Cookies) SetBrowserID(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     BrowserCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int((30 * 24 * time.Hour).Seconds()),
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookies) set(w http.ResponseWriter, name, value string, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.MaxAge.Seconds()),
		Expires:  time.Now().Add(c.MaxAge),
		Secure:   c.Secure,
		HttpOnly: httpOnly,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c Cookies) expire(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   c.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func encodeIdentity(identity models.Identity) (string, error) {
	data, err := json.Marshal(identity)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func decodeIdentity(value string) (*models.Identity, error) {
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}
	var identity models.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}
