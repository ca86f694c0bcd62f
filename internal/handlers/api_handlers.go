package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// HealthCheck pings one dependency
type HealthCheck func(ctx context.Context) error

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// SessionResponse describes the browser session
type SessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	Expired       bool             `json:"expired"`
	User          *models.Identity `json:"user,omitempty"`
	ExpiryOpen    bool             `json:"expiry_open"`
	ExpiresIn     float64          `json:"expires_in_seconds,omitempty"`
}

// APIHandlers serves the JSON endpoints next to the pages
type APIHandlers struct {
	panel  *Panel
	checks map[string]HealthCheck
}

// NewAPIHandlers creates the JSON handlers. checks are keyed by service name;
// a nil check is skipped.
func NewAPIHandlers(panel *Panel, checks map[string]HealthCheck) *APIHandlers {
	return &APIHandlers{panel: panel, checks: checks}
}

// Health godoc
// @Summary Verificar saúde do serviço
// @Description Verifica a conectividade com as dependências do painel
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "Todos os serviços estão saudáveis"
// @Failure 503 {object} HealthResponse "Um ou mais serviços estão indisponíveis"
// @Router /health [get]
func (h *APIHandlers) Health(c *gin.Context) {
	ctx, span, end := utils.TraceOperation(c.Request.Context(), "HealthCheck", map[string]interface{}{
		"operation": "health_check",
	})
	defer end()

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string, len(h.checks)),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		check := h.checks[name]
		if check == nil {
			continue
		}
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := check(pingCtx)
		cancel()
		if err != nil {
			h.panel.Logger.Warn("health check failed", zap.String("service", name), zap.Error(err))
			health.Status = "unhealthy"
			health.Services[name] = "unhealthy"
		} else {
			health.Services[name] = "healthy"
		}
		span.SetAttributes(attribute.String("health."+name, health.Services[name]))
	}
	span.SetAttributes(attribute.String("health.status", health.Status))

	if health.Status == "healthy" {
		c.JSON(http.StatusOK, health)
		return
	}
	c.JSON(http.StatusServiceUnavailable, health)
}

// Session godoc
// @Summary Estado da sessão
// @Description Retorna o usuário autenticado e o estado do aviso de sessão expirada deste navegador
// @Tags Session
// @Produce json
// @Success 200 {object} SessionResponse
// @Router /api/v1/session [get]
func (h *APIHandlers) Session(c *gin.Context) {
	s := h.panel.Scope(c)
	ctx := c.Request.Context()

	resp := SessionResponse{
		Authenticated: s.Session.IsAuthenticated(),
		Expired:       s.Session.Expired(),
		User:          s.Session.User(),
	}
	if s.Signal.IsOpen(ctx) {
		resp.ExpiryOpen = true
		resp.ExpiresIn = s.Signal.Remaining(ctx).Seconds()
	}
	c.JSON(http.StatusOK, resp)
}
