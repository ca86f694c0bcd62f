package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/session"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		hasAuth        bool
		requiresChange bool
		want           string
	}{
		{name: "forced change on protected page", path: "/dashboard/producers", hasAuth: true, requiresChange: true, want: ChangePasswordPath},
		{name: "forced change on login page", path: "/login", hasAuth: true, requiresChange: true, want: ChangePasswordPath},
		{name: "forced change on change page", path: ChangePasswordPath, hasAuth: true, requiresChange: true, want: ""},
		{name: "change page anonymous", path: ChangePasswordPath, want: ""},
		{name: "change page without forcing", path: ChangePasswordPath, hasAuth: true, want: ""},
		{name: "anonymous dashboard", path: "/dashboard", want: LoginPath},
		{name: "anonymous nested dashboard", path: "/dashboard/produtores/3", want: LoginPath},
		{name: "anonymous with stale change flag", path: "/dashboard", requiresChange: true, want: LoginPath},
		{name: "authenticated login page", path: "/login", hasAuth: true, want: DashboardPath},
		{name: "authenticated dashboard", path: "/dashboard/dominios", hasAuth: true, want: ""},
		{name: "anonymous login page", path: "/login", want: ""},
		{name: "anonymous public page", path: "/auth/sessao-expirada", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.path, tt.hasAuth, tt.requiresChange)
			assert.Equal(t, tt.want, decision.Redirect)
			assert.Equal(t, tt.want == "", decision.Allowed())
		})
	}
}

func TestRouteGuard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		path         string
		cookies      []*http.Cookie
		wantStatus   int
		wantLocation string
	}{
		{
			name:         "forced password change",
			path:         "/dashboard/produtores",
			cookies:      []*http.Cookie{{Name: session.AuthCookie, Value: "tok"}, {Name: session.RequiresChangeCookie, Value: "true"}},
			wantStatus:   http.StatusFound,
			wantLocation: ChangePasswordPath,
		},
		{name: "anonymous", path: "/dashboard", wantStatus: http.StatusFound, wantLocation: LoginPath},
		{
			name:         "logged in visiting login",
			path:         "/login",
			cookies:      []*http.Cookie{{Name: session.AuthCookie, Value: "tok"}, {Name: session.RequiresChangeCookie, Value: "false"}},
			wantStatus:   http.StatusFound,
			wantLocation: DashboardPath,
		},
		{name: "static assets skipped", path: "/static/app.css", wantStatus: http.StatusOK},
		{name: "api skipped", path: "/api/v1/session", wantStatus: http.StatusOK},
		{name: "health skipped", path: "/health", wantStatus: http.StatusOK},
		{
			name:       "authenticated page",
			path:       "/dashboard",
			cookies:    []*http.Cookie{{Name: session.AuthCookie, Value: "tok"}},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(RouteGuard())
			router.NoRoute(func(c *gin.Context) { c.Status(http.StatusOK) })

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			for _, cookie := range tt.cookies {
				req.AddCookie(cookie)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
		})
	}
}
