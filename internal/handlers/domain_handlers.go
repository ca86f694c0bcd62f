package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/forms"
	"github.com/instituto-brotar/painel-brotar/internal/listing"
	"github.com/instituto-brotar/painel-brotar/internal/middleware"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"github.com/instituto-brotar/painel-brotar/web"
	"go.uber.org/zap"
)

const domainsPath = "/dashboard/dominios"

// DomainFormData is the catalog entry create and edit page
type DomainFormData struct {
	Form   forms.DomainForm
	ID     int64
	IsNew  bool
	Action string
	Groups []string
}

// DomainHandlers serves the item catalog pages
type DomainHandlers struct {
	panel *Panel
}

// NewDomainHandlers creates the catalog handlers
func NewDomainHandlers(panel *Panel) *DomainHandlers {
	return &DomainHandlers{panel: panel}
}

func (h *DomainHandlers) list(s *Scope) entityList[models.Domain] {
	return entityList[models.Domain]{
		name:       listDomains,
		basePath:   domainsPath,
		resource:   utils.AuditResourceDomain,
		source:     s.Services.Domains,
		deleter:    s.Services.Domains,
		fields:     []func(models.Domain) string{listing.DomainName, listing.DomainGroup},
		label:      listing.DomainName,
		loadFailed: "Erro ao carregar itens.",
		notFound:   "Item não encontrado",
		heading:    "Excluir item",
		deleted:    "Item removido!",
		deleteFail: "Erro ao excluir item.",
	}
}

// List renders the catalog, filtered by name or group with ?q=
func (h *DomainHandlers) List(c *gin.Context) {
	s := h.panel.Scope(c)
	data, status, failure := h.list(s).page(h.panel, c, s)
	page := web.Page{Title: "Domínios", Section: web.SectionDomains, Error: failure, Data: data}
	h.panel.render(c, s, status, "domains", page)
}

// RequestDelete asks for confirmation before deleting a catalog entry
func (h *DomainHandlers) RequestDelete(c *gin.Context) {
	s := h.panel.Scope(c)
	h.list(s).requestDelete(h.panel, c, s)
}

// ConfirmDelete deletes the catalog entry once confirmed
func (h *DomainHandlers) ConfirmDelete(c *gin.Context) {
	s := h.panel.Scope(c)
	h.list(s).confirmDelete(h.panel, c, s)
}

// New renders an empty catalog form
func (h *DomainHandlers) New(c *gin.Context) {
	s := h.panel.Scope(c)
	ctl := forms.NewController(0)
	_ = ctl.Loaded()
	h.renderForm(c, s, http.StatusOK, ctl, forms.DomainForm{}, "")
}

// Edit loads a catalog entry into the form
func (h *DomainHandlers) Edit(c *gin.Context) {
	s := h.panel.Scope(c)
	id := pathID(c)
	if id == 0 {
		h.panel.redirect(c, s, uistate.ToastError, "Item não encontrado", domainsPath)
		return
	}

	ctl := forms.NewController(id)
	_ = ctl.Load()
	domain, err := s.Services.Domains.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = ctl.Fail(err)
		h.panel.backendFailure("failed to load domain", err, zap.Int64("domain_id", id))
		h.panel.redirect(c, s, uistate.ToastError, ctl.Message("Item não encontrado"), domainsPath)
		return
	}
	_ = ctl.Loaded()
	h.renderForm(c, s, http.StatusOK, ctl, forms.DomainFormFrom(domain), "")
}

// Create posts a new catalog entry
func (h *DomainHandlers) Create(c *gin.Context) {
	h.submit(c, 0)
}

// Update patches a catalog entry
func (h *DomainHandlers) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		s := h.panel.Scope(c)
		h.panel.redirect(c, s, uistate.ToastError, "Item não encontrado", domainsPath)
		return
	}
	h.submit(c, id)
}

func (h *DomainHandlers) submit(c *gin.Context, id int64) {
	s := h.panel.Scope(c)
	ctx := c.Request.Context()
	ctl := forms.Resume(id)

	values, err := postedForm(c)
	if err != nil {
		h.renderForm(c, s, http.StatusBadRequest, ctl, forms.DomainForm{}, "Dados inválidos.")
		return
	}
	form, err := forms.ParseDomainForm(values)
	if err != nil {
		h.renderForm(c, s, http.StatusBadRequest, ctl, form, "Dados inválidos.")
		return
	}
	if err := ctl.Submit(form.Validate()); err != nil {
		h.renderForm(c, s, http.StatusUnprocessableEntity, ctl, form, "")
		return
	}

	payload := form.Payload()
	action := utils.AuditActionUpdate
	if ctl.IsNew() {
		action = utils.AuditActionCreate
		_, err = s.Services.Domains.Create(ctx, payload)
	} else {
		_, err = s.Services.Domains.Update(ctx, id, payload)
	}
	middleware.Audit(c, action, utils.AuditResourceDomain, strconv.FormatInt(id, 10), payload, err)
	if err != nil {
		_ = ctl.Fail(err)
		h.panel.backendFailure("failed to save domain", err, zap.Int64("domain_id", id))
		message := ctl.Message("Erro ao salvar item.")
		_ = ctl.Retry()
		page := h.formPage(ctl, form)
		page.Toasts = []uistate.Toast{{Kind: uistate.ToastError, Message: message}}
		h.panel.render(c, s, statusFor(err), "domain_form", page)
		return
	}

	_ = ctl.Succeed(0)
	h.panel.invalidate(c, s, listDomains)
	message := "Item atualizado!"
	if id == 0 {
		message = "Item cadastrado com sucesso!"
	}
	h.panel.redirect(c, s, uistate.ToastSuccess, message, domainsPath)
}

func (h *DomainHandlers) renderForm(c *gin.Context, s *Scope, status int, ctl *forms.Controller, form forms.DomainForm, message string) {
	page := h.formPage(ctl, form)
	page.Error = message
	h.panel.render(c, s, status, "domain_form", page)
}

func (h *DomainHandlers) formPage(ctl *forms.Controller, form forms.DomainForm) web.Page {
	title, action := "Novo Item", domainsPath+"/novo"
	if !ctl.IsNew() {
		title, action = "Editar Item", domainsPath+"/"+strconv.FormatInt(ctl.ID(), 10)
	}
	return web.Page{
		Title:   title,
		Section: web.SectionDomains,
		Errors:  ctl.FieldErrors(),
		Data: DomainFormData{
			Form:   form,
			ID:     ctl.ID(),
			IsNew:  ctl.IsNew(),
			Action: action,
			Groups: models.DomainGroups,
		},
	}
}
