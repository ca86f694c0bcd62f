package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/observability"
	"github.com/instituto-brotar/painel-brotar/internal/session"
)

// Guarded routes
const (
	LoginPath          = "/login"
	DashboardPath      = "/dashboard"
	ChangePasswordPath = "/auth/change-password"
)

var (
	loginOnlyRoutes  = []string{LoginPath}
	protectedPrefix  = []string{DashboardPath}
	unguardedPrefix  = []string{"/static/", "/api/", "/swagger/"}
	unguardedExactly = []string{"/favicon.ico", "/health", "/metrics"}
)

// Decision is the outcome of the route guard. An empty Redirect lets the
// request through.
type Decision struct {
	Redirect string
}

// Allowed reports whether the request proceeds
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

// Decide applies the guard table in priority order:
//  1. authenticated and forced to change password, elsewhere: change password
//  2. on the change password page: allow
//  3. authenticated on a login-only route: dashboard
//  4. anonymous under a protected prefix: login
//  5. allow
func Decide(path string, hasAuth, requiresChange bool) Decision {
	if hasAuth && requiresChange && path != ChangePasswordPath {
		return Decision{Redirect: ChangePasswordPath}
	}
	if path == ChangePasswordPath {
		return Decision{}
	}
	if hasAuth && contains(loginOnlyRoutes, path) {
		return Decision{Redirect: DashboardPath}
	}
	if !hasAuth && hasAnyPrefix(path, protectedPrefix) {
		return Decision{Redirect: LoginPath}
	}
	return Decision{}
}

// RouteGuard redirects before a page renders, from cookies alone
func RouteGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if skipGuard(path) {
			c.Next()
			return
		}

		decision := Decide(path, session.HasAuth(c.Request), session.RequiresChange(c.Request))
		if !decision.Allowed() {
			observability.GuardRedirects.WithLabelValues(decision.Redirect).Inc()
			c.Redirect(http.StatusFound, decision.Redirect)
			c.Abort()
			return
		}
		c.Next()
	}
}

func skipGuard(path string) bool {
	return contains(unguardedExactly, path) || hasAnyPrefix(path, unguardedPrefix)
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
