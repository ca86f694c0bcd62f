package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/web"
)

// DashboardData is the overview page
type DashboardData struct {
	Stats *models.DashboardStats
}

// DashboardHandlers serves the overview page and its JSON counterpart
type DashboardHandlers struct {
	panel *Panel
}

// NewDashboardHandlers creates the dashboard handlers
func NewDashboardHandlers(panel *Panel) *DashboardHandlers {
	return &DashboardHandlers{panel: panel}
}

// Home renders the headline counters
func (h *DashboardHandlers) Home(c *gin.Context) {
	s := h.panel.Scope(c)
	page := web.Page{Title: "Visão Geral", Section: web.SectionOverview}

	stats, err := s.Services.Dashboard.Stats(c.Request.Context())
	if err != nil {
		h.panel.backendFailure("failed to load dashboard stats", err)
		page.Error = "Erro ao carregar dados do dashboard"
		page.Data = DashboardData{Stats: &models.DashboardStats{}}
		h.panel.render(c, s, statusFor(err), "dashboard", page)
		return
	}
	page.Data = DashboardData{Stats: stats}
	h.panel.render(c, s, http.StatusOK, "dashboard", page)
}

// Stats godoc
// @Summary Indicadores do painel
// @Description Totais de produtores, propriedades, produtores PCD e domínios
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardStats
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/dashboard/stats [get]
func (h *DashboardHandlers) Stats(c *gin.Context) {
	s := h.panel.Scope(c)
	stats, err := s.Services.Dashboard.Stats(c.Request.Context())
	if err != nil {
		h.panel.backendFailure("failed to load dashboard stats", err)
		c.JSON(statusFor(err), ErrorResponse{Error: "Erro ao carregar dados do dashboard"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
