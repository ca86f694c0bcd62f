package handlers

import (
	"context"
	"errors"
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
	"golang.org/x/sync/errgroup"
)

const (
	propertiesPath = "/dashboard/propriedades"
	propertyEntity = "property"
	itemChild      = "property_item"
)

// PropertyFormData is the property create and edit page
type PropertyFormData struct {
	Form             forms.PropertyForm
	ID               int64
	IsNew            bool
	Action           string
	Producers        []models.Producer
	Domains          []models.Domain
	IncomeRanges     []string
	ElectricityTypes []string
}

// PropertyHandlers serves the property pages
type PropertyHandlers struct {
	panel *Panel
}

// NewPropertyHandlers creates the property handlers
func NewPropertyHandlers(panel *Panel) *PropertyHandlers {
	return &PropertyHandlers{panel: panel}
}

func propertyList(s *Scope, basePath string) entityList[models.Property] {
	return entityList[models.Property]{
		name:       listProperties,
		basePath:   basePath,
		resource:   utils.AuditResourceProperty,
		source:     listing.WithOwners(s.Services.Properties, s.Services.Producers),
		deleter:    s.Services.Properties,
		fields:     []func(models.Property) string{listing.PropertyName, listing.PropertyOwner},
		label:      listing.PropertyName,
		loadFailed: "Erro ao carregar lista de propriedades.",
		notFound:   "Propriedade não encontrada",
		heading:    "Excluir propriedade",
		deleted:    "Propriedade removida!",
		deleteFail: "Erro ao excluir propriedade.",
	}
}

// List renders the properties with their owners, filtered with ?q=
func (h *PropertyHandlers) List(c *gin.Context) {
	s := h.panel.Scope(c)
	data, status, failure := propertyList(s, propertiesPath).page(h.panel, c, s)
	page := web.Page{Title: "Propriedades", Section: web.SectionProperties, Error: failure, Data: data}
	h.panel.render(c, s, status, "properties", page)
}

// Export downloads the filtered properties as a spreadsheet
func (h *PropertyHandlers) Export(c *gin.Context) {
	s := h.panel.Scope(c)
	data, _, failure := propertyList(s, propertiesPath).page(h.panel, c, s)
	if failure != "" {
		h.panel.redirect(c, s, uistate.ToastError, failure, propertiesPath)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="propriedades.xlsx"`)
	c.Header("Content-Type", listing.XLSXContentType)
	c.Status(http.StatusOK)
	if err := listing.ExportProperties(c.Writer, data.Items); err != nil {
		h.panel.Logger.Error("failed to export properties", zap.Error(err))
	}
}

// RequestDelete asks for confirmation before deleting a property
func (h *PropertyHandlers) RequestDelete(c *gin.Context) {
	s := h.panel.Scope(c)
	propertyList(s, propertiesPath).requestDelete(h.panel, c, s)
}

// ConfirmDelete deletes the property once confirmed
func (h *PropertyHandlers) ConfirmDelete(c *gin.Context) {
	s := h.panel.Scope(c)
	propertyList(s, propertiesPath).confirmDelete(h.panel, c, s)
}

// New renders an empty property form. ?produtor= preselects the owner.
func (h *PropertyHandlers) New(c *gin.Context) {
	s := h.panel.Scope(c)
	ctl := forms.NewController(0)
	_ = ctl.Loaded()
	form := forms.NewPropertyForm()
	if owner := c.Query("produtor"); owner != "" {
		form.IDProducer = owner
	}
	h.renderForm(c, s, http.StatusOK, ctl, form, "")
}

// Edit loads a property and its inventory into the form
func (h *PropertyHandlers) Edit(c *gin.Context) {
	s := h.panel.Scope(c)
	ctx := c.Request.Context()
	id := pathID(c)
	if id == 0 {
		h.panel.redirect(c, s, uistate.ToastError, "Propriedade não encontrada", propertiesPath)
		return
	}

	ctl := forms.NewController(id)
	_ = ctl.Load()
	property, err := s.Services.Properties.GetByID(ctx, id)
	if err == nil && s.Services.PropertyItems.Enabled() {
		property.Items, err = s.Services.PropertyItems.GetByProperty(ctx, id)
	}
	if err != nil {
		_ = ctl.Fail(err)
		h.panel.backendFailure("failed to load property", err, zap.Int64("property_id", id))
		h.panel.redirect(c, s, uistate.ToastError, ctl.Message("Propriedade não encontrada"), propertiesPath)
		return
	}
	_ = ctl.Loaded()

	form := forms.PropertyFormFrom(property)
	if s.Services.PropertyItems.Enabled() {
		if err := forms.SaveSnapshot(ctx, s.Browser, propertyEntity, id, form.ItemIDs(), h.panel.ListTTL); err != nil {
			h.panel.Logger.Warn("failed to save property form snapshot", zap.Int64("property_id", id), zap.Error(err))
		}
	}
	h.renderForm(c, s, http.StatusOK, ctl, form, "")
}

// Create posts a new property
func (h *PropertyHandlers) Create(c *gin.Context) {
	h.submit(c, 0)
}

// Update patches a property
func (h *PropertyHandlers) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		s := h.panel.Scope(c)
		h.panel.redirect(c, s, uistate.ToastError, "Propriedade não encontrada", propertiesPath)
		return
	}
	h.submit(c, id)
}

func (h *PropertyHandlers) submit(c *gin.Context, id int64) {
	s := h.panel.Scope(c)
	ctx := c.Request.Context()
	ctl := forms.Resume(id)

	values, err := postedForm(c)
	if err != nil {
		h.renderForm(c, s, http.StatusBadRequest, ctl, forms.NewPropertyForm(), "Dados inválidos.")
		return
	}
	form, err := forms.ParsePropertyForm(values)
	if err != nil {
		h.renderForm(c, s, http.StatusBadRequest, ctl, form, "Dados inválidos.")
		return
	}

	if action := forms.ParseAction(values); action.IsRowEdit() {
		form.Apply(action)
		h.renderForm(c, s, http.StatusOK, ctl, form, "")
		return
	}

	if err := ctl.Submit(form.Validate()); err != nil {
		status := http.StatusUnprocessableEntity
		if !errors.Is(err, forms.ErrValidation) {
			status = http.StatusConflict
		}
		h.renderForm(c, s, status, ctl, form, "Verifique os campos destacados.")
		return
	}

	nested := !s.Services.PropertyItems.Enabled()
	payload, err := form.Payload(nested)
	if err != nil {
		h.fail(c, s, ctl, form, err, "Dados inválidos.")
		return
	}

	var saved *models.Property
	action := utils.AuditActionUpdate
	if ctl.IsNew() {
		action = utils.AuditActionCreate
		saved, err = s.Services.Properties.Create(ctx, payload)
	} else {
		saved, err = s.Services.Properties.Update(ctx, id, payload)
	}
	if err == nil && ctl.IsNew() && (saved == nil || saved.ID <= 0) && !nested {
		err = models.ErrMissingParentID
	}
	parentID := id
	if ctl.IsNew() && saved != nil {
		parentID = saved.ID
	}
	middleware.Audit(c, action, utils.AuditResourceProperty, strconv.FormatInt(parentID, 10), payload, err)
	if err != nil {
		fallback := "Erro ao salvar propriedade."
		if ctl.IsNew() {
			fallback = "Erro ao cadastrar propriedade."
		}
		h.fail(c, s, ctl, form, err, fallback)
		return
	}

	if !nested {
		if err := h.reconcileItems(c, s, ctl, &form, parentID); err != nil {
			_ = ctl.Fail(err)
			h.panel.invalidate(c, s, listProperties)
			h.panel.redirect(c, s, uistate.ToastError, ctl.Message("Erro ao salvar os itens."),
				propertiesPath+"/"+strconv.FormatInt(parentID, 10))
			return
		}
		if err := forms.ForgetSnapshot(ctx, s.Browser, propertyEntity, parentID); err != nil {
			h.panel.Logger.Warn("failed to drop property form snapshot", zap.Error(err))
		}
	}

	_ = ctl.Succeed(parentID)
	h.panel.invalidate(c, s, listProperties)

	message := "Propriedade atualizada!"
	if id == 0 {
		message = "Propriedade criada com sucesso!"
	}
	h.panel.redirect(c, s, uistate.ToastSuccess, message, propertiesPath)
}

// reconcileItems syncs the inventory through the flat item endpoint
func (h *PropertyHandlers) reconcileItems(c *gin.Context, s *Scope, ctl *forms.Controller, form *forms.PropertyForm, propertyID int64) error {
	ctx := c.Request.Context()
	rows, err := form.ItemRows(propertyID)
	if err != nil {
		return err
	}

	existing := []int64{}
	if !ctl.IsNew() {
		existing, err = forms.ExistingIDs(ctx, s.Browser, propertyEntity, propertyID, func(ctx context.Context) ([]int64, error) {
			items, err := s.Services.PropertyItems.GetByProperty(ctx, propertyID)
			if err != nil {
				return nil, err
			}
			ids := make([]int64, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			return ids, nil
		})
		if err != nil {
			return err
		}
	}

	result, err := forms.Reconcile[models.PropertyItem](ctx, itemChild, s.Services.PropertyItems, propertyID, existing, rows)
	middleware.Audit(c, utils.AuditActionUpdate, utils.AuditResourcePropertyItem, strconv.FormatInt(propertyID, 10), result, err)
	if err != nil {
		h.panel.backendFailure("failed to reconcile property items", err, zap.Int64("property_id", propertyID))
	}
	return err
}

func (h *PropertyHandlers) fail(c *gin.Context, s *Scope, ctl *forms.Controller, form forms.PropertyForm, err error, fallback string) {
	_ = ctl.Fail(err)
	h.panel.backendFailure("failed to save property", err, zap.Int64("property_id", ctl.ID()))
	message := ctl.Message(fallback)
	_ = ctl.Retry()
	page := h.formPage(c, s, ctl, form)
	page.Toasts = []uistate.Toast{{Kind: uistate.ToastError, Message: message}}
	h.panel.render(c, s, statusFor(err), "property_form", page)
}

func (h *PropertyHandlers) renderForm(c *gin.Context, s *Scope, status int, ctl *forms.Controller, form forms.PropertyForm, message string) {
	page := h.formPage(c, s, ctl, form)
	if page.Error == "" {
		page.Error = message
	}
	h.panel.render(c, s, status, "property_form", page)
}

// formPage builds the form page with the producer and catalog options
func (h *PropertyHandlers) formPage(c *gin.Context, s *Scope, ctl *forms.Controller, form forms.PropertyForm) web.Page {
	ctx := c.Request.Context()
	producers := listView[models.Producer](h.panel, s, listProducers)
	domains := listView[models.Domain](h.panel, s, listDomains)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return producers.Refresh(gctx, s.Services.Producers) })
	g.Go(func() error { return domains.Refresh(gctx, s.Services.Domains) })
	optionsErr := g.Wait()
	if optionsErr != nil {
		h.panel.backendFailure("failed to load property form options", optionsErr)
	}

	title, action := "Nova Propriedade", propertiesPath+"/novo"
	if !ctl.IsNew() {
		title, action = "Editar Propriedade", propertiesPath+"/"+strconv.FormatInt(ctl.ID(), 10)
	}
	page := web.Page{
		Title:   title,
		Section: web.SectionProperties,
		Errors:  ctl.FieldErrors(),
		Data: PropertyFormData{
			Form:             form,
			ID:               ctl.ID(),
			IsNew:            ctl.IsNew(),
			Action:           action,
			Producers:        producers.Items(),
			Domains:          domains.Items(),
			IncomeRanges:     forms.IncomeRanges,
			ElectricityTypes: forms.ElectricityTypes,
		},
	}
	if optionsErr != nil {
		page.Error = "Erro ao carregar dados."
	}
	return page
}
