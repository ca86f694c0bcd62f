package session

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
)

// Claims are the fields the panel reads from the backend access token. The
// token is verified by the backend; the panel only decodes it.
type Claims struct {
	UserID interface{} `json:"id,omitempty"`
	CPF    string      `json:"cpf,omitempty"`
	Role   string      `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ParseClaims decodes token claims without verifying the signature
func ParseClaims(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token claims: %w", err)
	}
	return claims, nil
}

// Identity builds the panel identity from the claims. The user id comes
// from sub, falling back to id.
func (c *Claims) Identity() models.Identity {
	return c.IdentityOver(models.Identity{})
}

// IdentityOver builds the identity from the claims and takes from fallback
// only the fields the token does not carry
func (c *Claims) IdentityOver(fallback models.Identity) models.Identity {
	identity := models.Identity{
		UserID: c.Subject,
		CPF:    utils.OnlyDigits(c.CPF),
		Role:   models.Role(c.Role),
	}
	if identity.UserID == "" {
		switch v := c.UserID.(type) {
		case string:
			identity.UserID = v
		case float64:
			identity.UserID = strconv.FormatInt(int64(v), 10)
		}
	}
	if identity.UserID == "" {
		identity.UserID = fallback.UserID
	}
	if identity.CPF == "" {
		identity.CPF = utils.OnlyDigits(fallback.CPF)
	}
	if c.Role == "" {
		identity.Role = fallback.Role
	}
	if !identity.Role.Valid() {
		identity.Role = models.RoleAdmin
	}
	return identity
}

// ExpiredAt reports whether the token carries an exp claim before now
func (c *Claims) ExpiredAt(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Time.Before(now)
}

// Rehydrate rebuilds the session of a request from its cookies. Without an
// auth cookie the store is empty. A decodable token is the identity; the
// user cookie only fills what the token does not carry, and stands in for
// the whole identity when the token is opaque.
func Rehydrate(r *http.Request) *Store {
	return rehydrateAt(r, time.Now())
}

func rehydrateAt(r *http.Request, now time.Time) *Store {
	store := NewStore()

	token := cookieValue(r, AuthCookie)
	if token == "" {
		return store
	}

	fallback := models.Identity{Role: models.RoleAdmin}
	if raw := cookieValue(r, UserCookie); raw != "" {
		if decoded, err := decodeIdentity(raw); err == nil {
			fallback = *decoded
		}
	}

	claims, err := ParseClaims(token)
	if err != nil {
		store.Login(fallback, token)
		return store
	}
	store.Login(claims.IdentityOver(fallback), token)
	if claims.ExpiredAt(now) {
		store.markExpired()
	}
	return store
}

// RequiresChange reports whether the forced password change cookie is set
func RequiresChange(r *http.Request) bool {
	return cookieValue(r, RequiresChangeCookie) == "true"
}

// HasAuth reports whether the auth cookie is present
func HasAuth(r *http.Request) bool {
	return cookieValue(r, AuthCookie) != ""
}

// BrowserID returns the browser id cookie, "" when absent
func BrowserID(r *http.Request) string {
	return cookieValue(r, BrowserCookie)
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
