package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/listing"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"github.com/instituto-brotar/painel-brotar/web"
	"go.uber.org/zap"
)

const reportsPath = "/dashboard/relatorios"

var errNotCached = errors.New("list is not cached")

// cachedOnly never fetches, so a view loaded with it only reads its
// snapshot
var cachedOnly = listing.SourceFunc[models.Property](func(context.Context) ([]models.Property, error) {
	return nil, errNotCached
})

// ReportHandlers serves the property report page and the PDF downloads
type ReportHandlers struct {
	panel *Panel
}

// NewReportHandlers creates the report handlers
func NewReportHandlers(panel *Panel) *ReportHandlers {
	return &ReportHandlers{panel: panel}
}

// List renders every property with its owner and a download link
func (h *ReportHandlers) List(c *gin.Context) {
	s := h.panel.Scope(c)
	data, status, failure := propertyList(s, reportsPath).page(h.panel, c, s)
	page := web.Page{Title: "Relatórios PDF", Section: web.SectionReports, Error: failure, Data: data}
	h.panel.render(c, s, status, "reports", page)
}

// Download streams the backend rendered PDF of one property
func (h *ReportHandlers) Download(c *gin.Context) {
	s := h.panel.Scope(c)
	ctx := c.Request.Context()
	id := pathID(c)
	if id == 0 {
		h.panel.redirect(c, s, uistate.ToastError, "Propriedade não encontrada", reportsPath)
		return
	}

	// The cached list names the file; a cold cache only costs the name.
	name := ""
	view := listView[models.Property](h.panel, s, listProperties)
	if err := view.Load(ctx, cachedOnly); err == nil {
		if p, ok := view.Find(id); ok {
			name = p.ProductiveAreaName
		}
	}

	report, err := s.Services.PDF.PropertyReport(ctx, id, name)
	if err != nil {
		h.panel.backendFailure("failed to download property report", err, zap.Int64("property_id", id))
		h.panel.redirect(c, s, uistate.ToastError, "Erro ao gerar PDF. Verifique se todos os dados estão preenchidos.", reportsPath)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	c.Header("Content-Length", strconv.Itoa(len(report.Data)))
	c.Data(http.StatusOK, report.ContentType, report.Data)
}
