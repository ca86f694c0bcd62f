package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
	"github.com/instituto-brotar/painel-brotar/internal/expiry"
	"github.com/instituto-brotar/painel-brotar/internal/logging"
	"github.com/instituto-brotar/painel-brotar/internal/middleware"
	"github.com/instituto-brotar/painel-brotar/internal/session"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"github.com/instituto-brotar/painel-brotar/web"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// backendCall is one request received by the fake registry backend
type backendCall struct {
	Method string
	Path   string
	Body   string
}

func (c backendCall) String() string {
	return c.Method + " " + c.Path
}

// fakeBackend answers registry calls from a route table keyed by
// "METHOD /path" and records every call in order
type fakeBackend struct {
	mu     sync.Mutex
	calls  []backendCall
	routes map[string]http.HandlerFunc
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{routes: map[string]http.HandlerFunc{}}
}

func (b *fakeBackend) on(method, path string, h http.HandlerFunc) *fakeBackend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[method+" "+path] = h
	return b
}

func (b *fakeBackend) onJSON(method, path string, status int, body string) *fakeBackend {
	return b.on(method, path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	})
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := r.URL.Path
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}

	b.mu.Lock()
	b.calls = append(b.calls, backendCall{Method: r.Method, Path: path, Body: string(body)})
	h, ok := b.routes[r.Method+" "+path]
	if !ok {
		h, ok = b.routes[r.Method+" "+r.URL.Path]
	}
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
		return
	}
	h(w, r)
}

// Calls returns "METHOD /path" of every received call
func (b *fakeBackend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.calls))
	for _, c := range b.calls {
		out = append(out, c.String())
	}
	return out
}

// Mutations returns the non GET calls
func (b *fakeBackend) Mutations() []string {
	var out []string
	for _, c := range b.Calls() {
		if !strings.HasPrefix(c, "GET ") {
			out = append(out, c)
		}
	}
	return out
}

func (b *fakeBackend) bodyOf(call string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.calls {
		if c.String() == call {
			return c.Body
		}
	}
	return ""
}

type testServer struct {
	router  *gin.Engine
	panel   *Panel
	backend *fakeBackend
}

func newTestServer(t *testing.T, backend *fakeBackend, loginLimiter *middleware.IPRateLimiter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(backend)
	t.Cleanup(upstream.Close)

	renderer, err := web.NewRenderer()
	require.NoError(t, err)

	logger := logging.NewSafeLogger(zap.NewNop())
	panel := &Panel{
		Logger:    logger,
		Gateway:   apiclient.NewGateway(upstream.URL, 5*time.Second, logger),
		UIState:   uistate.NewMemoryStore(),
		Cookies:   session.NewCookies(false, time.Hour),
		Countdown: expiry.DefaultCountdown,
		ListTTL:   time.Minute,
	}

	router := gin.New()
	router.HTMLRender = renderer
	router.Use(session.SessionContext(panel.Cookies), middleware.RouteGuard())
	Register(router, panel, loginLimiter, nil)

	return &testServer{router: router, panel: panel, backend: backend}
}

// browser keeps cookies between requests like a real user agent
type browser struct {
	t       *testing.T
	srv     *testServer
	cookies map[string]string
}

func (s *testServer) browser(t *testing.T) *browser {
	return &browser{t: t, srv: s, cookies: map[string]string{}}
}

// loggedIn returns a browser holding a valid session for admin 1
func (s *testServer) loggedIn(t *testing.T) *browser {
	b := s.browser(t)
	b.cookies[session.AuthCookie] = testToken(t, jwt.MapClaims{
		"sub":  "1",
		"cpf":  "52998224725",
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	return b
}

func (b *browser) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for name, value := range b.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	w := httptest.NewRecorder()
	b.srv.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c.Value
	}
	return w
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, target, nil)
}

func (b *browser) post(target string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.do(http.MethodPost, target, form)
}

func testToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
