package services

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
)

type recordedCall struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

// fakeBackend serves canned responses keyed by "METHOD path?query" and
// records every call
type fakeBackend struct {
	t         *testing.T
	mu        sync.Mutex
	calls     []recordedCall
	responses map[string]fakeResponse
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	return &fakeBackend{t: t, responses: map[string]fakeResponse{}}
}

func (f *fakeBackend) on(method, path string, status int, body string) *fakeBackend {
	f.responses[method+" "+path] = fakeResponse{status: status, body: body}
	return f
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	call := recordedCall{Method: r.Method, Path: target}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &call.Body)
	}

	f.mu.Lock()
	f.calls = append(f.calls, call)
	resp, ok := f.responses[r.Method+" "+target]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}

func (f *fakeBackend) recorded() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

func (f *fakeBackend) client() *apiclient.Client {
	server := httptest.NewServer(f)
	f.t.Cleanup(server.Close)
	return apiclient.NewGateway(server.URL, 5*time.Second, nil).For(nil, nil)
}
