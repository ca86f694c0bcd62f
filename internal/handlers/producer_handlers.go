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
)

const (
	producersPath  = "/dashboard/produtores"
	producerEntity = "producer"
	familyChild    = "family_member"
)

// ProducerFormData is the producer create and edit page
type ProducerFormData struct {
	Form     forms.ProducerForm
	ID       int64
	IsNew    bool
	Action   string
	Kinships []string
	Sexes    []string
}

// ProducerHandlers serves the producer pages
type ProducerHandlers struct {
	panel *Panel
}

// NewProducerHandlers creates the producer handlers
func NewProducerHandlers(panel *Panel) *ProducerHandlers {
	return &ProducerHandlers{panel: panel}
}

func (h *ProducerHandlers) list(s *Scope) entityList[models.Producer] {
	return entityList[models.Producer]{
		name:       listProducers,
		basePath:   producersPath,
		resource:   utils.AuditResourceProducer,
		source:     s.Services.Producers,
		deleter:    s.Services.Producers,
		fields:     []func(models.Producer) string{listing.ProducerName, listing.ProducerCPF},
		label:      listing.ProducerName,
		loadFailed: "Erro ao carregar a lista de produtores.",
		notFound:   "Produtor não encontrado.",
		heading:    "Excluir produtor",
		deleted:    "Produtor removido com sucesso!",
		deleteFail: "Não foi possível excluir o produtor.",
		related:    []string{listProperties},
	}
}

// List renders the producers, filtered by name or CPF with ?q=
func (h *ProducerHandlers) List(c *gin.Context) {
	s := h.panel.Scope(c)
	data, status, failure := h.list(s).page(h.panel, c, s)
	page := web.Page{Title: "Produtores", Section: web.SectionProducers, Error: failure, Data: data}
	h.panel.render(c, s, status, "producers", page)
}

// Export downloads the filtered producers as a spreadsheet
func (h *ProducerHandlers) Export(c *gin.Context) {
	s := h.panel.Scope(c)
	data, _, failure := h.list(s).page(h.panel, c, s)
	if failure != "" {
		h.panel.redirect(c, s, uistate.ToastError, failure, producersPath)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="produtores.xlsx"`)
	c.Header("Content-Type", listing.XLSXContentType)
	c.Status(http.StatusOK)
	if err := listing.ExportProducers(c.Writer, data.Items); err != nil {
		h.panel.Logger.Error("failed to export producers", zap.Error(err))
	}
}

// RequestDelete asks for confirmation before deleting a producer
func (h *ProducerHandlers) RequestDelete(c *gin.Context) {
	s := h.panel.Scope(c)
	h.list(s).requestDelete(h.panel, c, s)
}

// ConfirmDelete deletes the producer once confirmed
func (h *ProducerHandlers) ConfirmDelete(c *gin.Context) {
	s := h.panel.Scope(c)
	h.list(s).confirmDelete(h.panel, c, s)
}

// New renders an empty producer form
func (h *ProducerHandlers) New(c *gin.Context) {
	s := h.panel.Scope(c)
	ctl := forms.NewController(0)
	_ = ctl.Loaded()
	h.renderForm(c, s, http.StatusOK, ctl, forms.NewProducerForm(), "")
}

// Edit loads a producer and its household into the form
func (h *ProducerHandlers) Edit(c *gin.Context) {
	s := h.panel.Scope(c)
	ctx := c.Request.Context()
	id := pathID(c)
	if id == 0 {
		h.panel.redirect(c, s, uistate.ToastError, "Produtor não encontrado.", producersPath)
		return
	}

	ctl := forms.NewController(id)
	_ = ctl.Load()
	producer, err := s.Services.Producers.GetByID(ctx, id)
	if err != nil {
		_ = ctl.Fail(err)
		h.panel.backendFailure("failed to load producer", err, zap.Int64("producer_id", id))
		h.panel.redirect(c, s, uistate.ToastError, ctl.Message("Produtor não encontrado."), producersPath)
		return
	}
	members := h.household(ctx, s, producer)
	_ = ctl.Loaded()

	form := forms.ProducerFormFrom(producer, members)
	if err := forms.SaveSnapshot(ctx, s.Browser, producerEntity, id, form.FamilyMemberIDs(), h.panel.ListTTL); err != nil {
		h.panel.Logger.Warn("failed to save producer form snapshot", zap.Int64("producer_id", id), zap.Error(err))
	}
	h.renderForm(c, s, http.StatusOK, ctl, form, "")
}

// household lists the producer's family members, falling back to the
// ones embedded in the producer
func (h *ProducerHandlers) household(ctx context.Context, s *Scope, producer *models.Producer) []models.FamilyMember {
	members, err := s.Services.FamilyMembers.GetByProducer(ctx, producer.ID)
	if err != nil {
		h.panel.backendFailure("failed to load family members", err, zap.Int64("producer_id", producer.ID))
		return producer.FamilyMembers
	}
	return members
}

// Create posts a new producer, then its household rows
func (h *ProducerHandlers) Create(c *gin.Context) {
	h.submit(c, 0)
}

// Update patches a producer and reconciles its household
func (h *ProducerHandlers) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		s := h.panel.Scope(c)
		h.panel.redirect(c, s, uistate.ToastError, "Produtor não encontrado.", producersPath)
		return
	}
	h.submit(c, id)
}

func (h *ProducerHandlers) submit(c *gin.Context, id int64) {
	s := h.panel.Scope(c)
	ctx := c.Request.Context()
	ctl := forms.Resume(id)

	values, err := postedForm(c)
	if err != nil {
		h.renderForm(c, s, http.StatusBadRequest, ctl, forms.NewProducerForm(), "Dados inválidos.")
		return
	}
	form, err := forms.ParseProducerForm(values)
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

	payload, err := form.Payload()
	if err != nil {
		h.fail(c, s, ctl, form, err, "Dados inválidos.")
		return
	}

	var saved *models.Producer
	action := utils.AuditActionUpdate
	if ctl.IsNew() {
		action = utils.AuditActionCreate
		saved, err = s.Services.Producers.Create(ctx, payload)
	} else {
		saved, err = s.Services.Producers.Update(ctx, id, payload)
	}
	if err == nil && ctl.IsNew() && (saved == nil || saved.ID <= 0) {
		err = models.ErrMissingParentID
	}
	parentID := id
	if ctl.IsNew() && saved != nil {
		parentID = saved.ID
	}
	middleware.Audit(c, action, utils.AuditResourceProducer, strconv.FormatInt(parentID, 10), payload, err)
	if err != nil {
		fallback := "Erro ao salvar alterações."
		if ctl.IsNew() {
			fallback = "Erro ao cadastrar produtor."
		}
		h.fail(c, s, ctl, form, err, fallback)
		return
	}

	if err := h.reconcileHousehold(c, s, ctl, &form, parentID); err != nil {
		// The producer and part of the household are saved; reload the
		// record instead of offering the stale rows again.
		_ = ctl.Fail(err)
		h.panel.invalidate(c, s, listProducers, listProperties)
		h.panel.redirect(c, s, uistate.ToastError, ctl.Message("Erro ao salvar os familiares."),
			producersPath+"/"+strconv.FormatInt(parentID, 10))
		return
	}

	_ = ctl.Succeed(parentID)
	if err := forms.ForgetSnapshot(ctx, s.Browser, producerEntity, parentID); err != nil {
		h.panel.Logger.Warn("failed to drop producer form snapshot", zap.Error(err))
	}
	h.panel.invalidate(c, s, listProducers, listProperties)

	message := "Produtor atualizado!"
	if id == 0 {
		message = "Produtor cadastrado com sucesso!"
	}
	h.panel.redirect(c, s, uistate.ToastSuccess, message, producersPath)
}

// reconcileHousehold syncs the household rows through the flat family
// member endpoint. A new producer has no existing rows.
func (h *ProducerHandlers) reconcileHousehold(c *gin.Context, s *Scope, ctl *forms.Controller, form *forms.ProducerForm, producerID int64) error {
	ctx := c.Request.Context()
	rows, err := form.FamilyRows(producerID)
	if err != nil {
		return err
	}

	existing := []int64{}
	if !ctl.IsNew() {
		existing, err = forms.ExistingIDs(ctx, s.Browser, producerEntity, producerID, func(ctx context.Context) ([]int64, error) {
			members, err := s.Services.FamilyMembers.GetByProducer(ctx, producerID)
			if err != nil {
				return nil, err
			}
			ids := make([]int64, 0, len(members))
			for _, m := range members {
				ids = append(ids, m.ID)
			}
			return ids, nil
		})
		if err != nil {
			return err
		}
	}

	result, err := forms.Reconcile[models.FamilyMember](ctx, familyChild, s.Services.FamilyMembers, producerID, existing, rows)
	middleware.Audit(c, utils.AuditActionUpdate, utils.AuditResourceFamilyMember, strconv.FormatInt(producerID, 10), result, err)
	if err != nil {
		h.panel.backendFailure("failed to reconcile family members", err, zap.Int64("producer_id", producerID))
	}
	return err
}

// fail re-renders the posted form after a backend error. The form stays
// editable with everything the user typed.
func (h *ProducerHandlers) fail(c *gin.Context, s *Scope, ctl *forms.Controller, form forms.ProducerForm, err error, fallback string) {
	_ = ctl.Fail(err)
	h.panel.backendFailure("failed to save producer", err, zap.Int64("producer_id", ctl.ID()))
	message := ctl.Message(fallback)
	_ = ctl.Retry()
	page := h.formPage(ctl, form)
	page.Toasts = []uistate.Toast{{Kind: uistate.ToastError, Message: message}}
	h.panel.render(c, s, statusFor(err), "producer_form", page)
}

func (h *ProducerHandlers) renderForm(c *gin.Context, s *Scope, status int, ctl *forms.Controller, form forms.ProducerForm, message string) {
	page := h.formPage(ctl, form)
	page.Error = message
	h.panel.render(c, s, status, "producer_form", page)
}

func (h *ProducerHandlers) formPage(ctl *forms.Controller, form forms.ProducerForm) web.Page {
	title, action := "Novo Produtor", producersPath+"/novo"
	if !ctl.IsNew() {
		title, action = "Editar Produtor", producersPath+"/"+strconv.FormatInt(ctl.ID(), 10)
	}
	return web.Page{
		Title:   title,
		Section: web.SectionProducers,
		Errors:  ctl.FieldErrors(),
		Data: ProducerFormData{
			Form:     form,
			ID:       ctl.ID(),
			IsNew:    ctl.IsNew(),
			Action:   action,
			Kinships: models.Kinships,
			Sexes:    models.Sexes,
		},
	}
}
