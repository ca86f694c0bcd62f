package handlers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
	"github.com/instituto-brotar/painel-brotar/internal/expiry"
	"github.com/instituto-brotar/painel-brotar/internal/listing"
	"github.com/instituto-brotar/painel-brotar/internal/logging"
	"github.com/instituto-brotar/painel-brotar/internal/middleware"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/services"
	"github.com/instituto-brotar/painel-brotar/internal/session"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"github.com/instituto-brotar/painel-brotar/web"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON error body
type ErrorResponse = middleware.ErrorResponse

// SessionExpiredPath is where the expired modal sends the browser
const SessionExpiredPath = "/auth/sessao-expirada"

// Panel is what every page handler shares
type Panel struct {
	Logger    *logging.SafeLogger
	Gateway   *apiclient.Gateway
	UIState   uistate.Store
	Cookies   session.Cookies
	Paths     services.Paths
	Countdown time.Duration
	ListTTL   time.Duration
}

// Scope is the per request view of the panel: the session, the browser's
// UI state and services authenticated as the session
type Scope struct {
	Session  *session.Store
	Browser  *uistate.Browser
	Signal   expiry.Signal
	Services *services.Services
}

// Scope builds the request scope. The backend client reads the token from
// the session and opens the expiry signal on 401.
func (p *Panel) Scope(c *gin.Context) *Scope {
	store := session.FromContext(c)
	browserID := session.BrowserIDFromContext(c)
	signal := expiry.NewStateSignal(p.UIState, browserID, p.Countdown)
	return &Scope{
		Session:  store,
		Browser:  uistate.ForBrowser(p.UIState, browserID),
		Signal:   signal,
		Services: services.New(p.Gateway.For(store, signal), p.Paths),
	}
}

// render writes a full page. Pending toasts are consumed here and the
// expiry modal is added while the signal is open.
func (p *Panel) render(c *gin.Context, s *Scope, status int, name string, page web.Page) {
	ctx := c.Request.Context()
	page.User = s.Session.User()
	page.Toasts = append(s.Browser.PopToasts(ctx), page.Toasts...)
	if s.Signal.IsOpen(ctx) {
		page.Expiry = &web.Expiry{
			Seconds:  int(math.Ceil(s.Signal.Remaining(ctx).Seconds())),
			Redirect: SessionExpiredPath,
		}
	}
	c.HTML(status, name, page)
}

// redirect finishes a POST with a toast for the next page
func (p *Panel) redirect(c *gin.Context, s *Scope, kind, message, location string) {
	if message != "" {
		s.Browser.PushToast(c.Request.Context(), kind, message)
	}
	c.Redirect(http.StatusSeeOther, location)
}

// backendFailure logs a failed backend call. A 401 is left to the expiry
// signal and logged at debug.
func (p *Panel) backendFailure(msg string, err error, fields ...zap.Field) {
	fields = append(fields, zap.Error(err))
	if apiclient.IsUnauthorized(err) {
		p.Logger.Debug(msg, fields...)
		return
	}
	p.Logger.Error(msg, fields...)
}

// statusFor maps a backend error to the status of the re-rendered page
func statusFor(err error) int {
	var apiErr *apiclient.APIError
	switch {
	case errors.Is(err, models.ErrInvalidID), errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500:
		return apiErr.Status
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// pathID reads the :id route parameter. Zero means it was not a positive
// integer.
func pathID(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// postedForm parses the urlencoded body
func postedForm(c *gin.Context) (map[string][]string, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return c.Request.PostForm, nil
}

// userID is the numeric id of the logged in admin, 0 when unknown
func userID(s *Scope) int64 {
	user := s.Session.User()
	if user == nil {
		return 0
	}
	id, err := strconv.ParseInt(user.UserID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// listView opens the browser's cached copy of a list
func listView[T listing.Identified](p *Panel, s *Scope, name string) *listing.View[T] {
	return listing.NewView[T](name, s.Browser, p.ListTTL)
}

// invalidate drops cached lists after a mutation
func (p *Panel) invalidate(c *gin.Context, s *Scope, names ...string) {
	listing.Invalidate(c.Request.Context(), s.Browser, names...)
}

// Cached list names
const (
	listProducers  = "producers"
	listProperties = "properties"
	listDomains    = "domains"
	listAdmins     = "admins"
)

var allLists = []string{listProducers, listProperties, listDomains, listAdmins}
