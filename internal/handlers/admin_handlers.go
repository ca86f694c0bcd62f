package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
	"github.com/instituto-brotar/painel-brotar/internal/forms"
	"github.com/instituto-brotar/painel-brotar/internal/listing"
	"github.com/instituto-brotar/painel-brotar/internal/middleware"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"github.com/instituto-brotar/painel-brotar/web"
	"go.uber.org/zap"
)

const adminsPath = "/dashboard/admins"

// AdminFormData is the admin create and edit page. The edit page also
// carries the separate password form.
type AdminFormData struct {
	Form           forms.AdminForm
	ID             int64
	IsNew          bool
	Action         string
	PasswordAction string
}

// AdminHandlers serves the panel user pages
type AdminHandlers struct {
	panel *Panel
}

// NewAdminHandlers creates the admin handlers
func NewAdminHandlers(panel *Panel) *AdminHandlers {
	return &AdminHandlers{panel: panel}
}

func (h *AdminHandlers) list(s *Scope) entityList[models.Admin] {
	return entityList[models.Admin]{
		name:       listAdmins,
		basePath:   adminsPath,
		resource:   utils.AuditResourceAdmin,
		source:     s.Services.Admins,
		deleter:    s.Services.Admins,
		fields:     []func(models.Admin) string{listing.AdminName, listing.AdminEmail},
		label:      listing.AdminName,
		loadFailed: "Erro ao carregar administradores.",
		notFound:   "Administrador não encontrado.",
		heading:    "Excluir administrador",
		deleted:    "Administrador removido!",
		deleteFail: "Erro ao excluir administrador.",
	}
}

// List renders the panel users, filtered by name or email with ?q=
func (h *AdminHandlers) List(c *gin.Context) {
	s := h.panel.Scope(c)
	data, status, failure := h.list(s).page(h.panel, c, s)
	page := web.Page{Title: "Administradores", Section: web.SectionAdmins, Error: failure, Data: data}
	h.panel.render(c, s, status, "admins", page)
}

// RequestDelete asks for confirmation before deleting an admin
func (h *AdminHandlers) RequestDelete(c *gin.Context) {
	s := h.panel.Scope(c)
	if id := pathID(c); id != 0 && id == userID(s) {
		h.panel.redirect(c, s, uistate.ToastError, "Você não pode excluir o próprio usuário.", adminsPath)
		return
	}
	h.list(s).requestDelete(h.panel, c, s)
}

// ConfirmDelete deletes the admin once confirmed
func (h *AdminHandlers) ConfirmDelete(c *gin.Context) {
	s := h.panel.Scope(c)
	h.list(s).confirmDelete(h.panel, c, s)
}

// New renders an empty admin form
func (h *AdminHandlers) New(c *gin.Context) {
	s := h.panel.Scope(c)
	ctl := forms.NewController(0)
	_ = ctl.Loaded()
	h.renderForm(c, s, http.StatusOK, ctl, forms.AdminForm{}, "")
}

// Edit loads an admin into the form
func (h *AdminHandlers) Edit(c *gin.Context) {
	s := h.panel.Scope(c)
	id := pathID(c)
	if id == 0 {
		h.panel.redirect(c, s, uistate.ToastError, "Administrador não encontrado.", adminsPath)
		return
	}

	ctl := forms.NewController(id)
	_ = ctl.Load()
	admin, err := s.Services.Admins.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = ctl.Fail(err)
		h.panel.backendFailure("failed to load admin", err, zap.Int64("admin_id", id))
		h.panel.redirect(c, s, uistate.ToastError, ctl.Message("Erro ao carregar dados do administrador."), adminsPath)
		return
	}
	_ = ctl.Loaded()
	h.renderForm(c, s, http.StatusOK, ctl, forms.AdminFormFrom(admin), "")
}

// Create posts a new admin
func (h *AdminHandlers) Create(c *gin.Context) {
	h.submit(c, 0)
}

// Update patches name and email of an admin
func (h *AdminHandlers) Update(c *gin.Context) {
	id := pathID(c)
	if id == 0 {
		s := h.panel.Scope(c)
		h.panel.redirect(c, s, uistate.ToastError, "Administrador não encontrado.", adminsPath)
		return
	}
	h.submit(c, id)
}

func (h *AdminHandlers) submit(c *gin.Context, id int64) {
	s := h.panel.Scope(c)
	ctx := c.Request.Context()
	ctl := forms.Resume(id)

	values, err := postedForm(c)
	if err != nil {
		h.renderForm(c, s, http.StatusBadRequest, ctl, forms.AdminForm{}, "Dados inválidos.")
		return
	}
	form, err := forms.ParseAdminForm(values)
	if err != nil {
		h.renderForm(c, s, http.StatusBadRequest, ctl, form, "Dados inválidos.")
		return
	}
	if err := ctl.Submit(form.Validate(ctl.IsNew())); err != nil {
		form.Password = ""
		h.renderForm(c, s, http.StatusUnprocessableEntity, ctl, form, "")
		return
	}

	action := utils.AuditActionUpdate
	if ctl.IsNew() {
		action = utils.AuditActionCreate
		_, err = s.Services.Admins.Create(ctx, form.CreatePayload())
	} else {
		_, err = s.Services.Admins.Update(ctx, id, form.UpdatePayload())
	}
	middleware.Audit(c, action, utils.AuditResourceAdmin, strconv.FormatInt(id, 10), form.UpdatePayload(), err)
	if err != nil {
		_ = ctl.Fail(err)
		h.panel.backendFailure("failed to save admin", err, zap.Int64("admin_id", id))
		message := ctl.Message("Erro ao salvar administrador.")
		_ = ctl.Retry()
		form.Password = ""
		page := h.formPage(ctl, form)
		page.Toasts = []uistate.Toast{{Kind: uistate.ToastError, Message: message}}
		h.panel.render(c, s, statusFor(err), "admin_form", page)
		return
	}

	_ = ctl.Succeed(0)
	h.panel.invalidate(c, s, listAdmins)
	message := "Dados atualizados com sucesso!"
	if id == 0 {
		message = "Administrador cadastrado com sucesso!"
	}
	h.panel.redirect(c, s, uistate.ToastSuccess, message, adminsPath)
}

// ChangePassword replaces the password of another admin from the edit page
func (h *AdminHandlers) ChangePassword(c *gin.Context) {
	s := h.panel.Scope(c)
	id := pathID(c)
	editPath := adminsPath + "/" + strconv.FormatInt(id, 10)
	if id == 0 {
		h.panel.redirect(c, s, uistate.ToastError, "Administrador não encontrado.", adminsPath)
		return
	}

	values, err := postedForm(c)
	if err != nil {
		h.panel.redirect(c, s, uistate.ToastError, "Dados inválidos.", editPath)
		return
	}
	form, err := forms.ParsePasswordForm(values)
	if err != nil {
		h.panel.redirect(c, s, uistate.ToastError, "Dados inválidos.", editPath)
		return
	}
	if result := form.Validate(false); !result.IsValid {
		h.panel.redirect(c, s, uistate.ToastError, result.Errors[0].Message, editPath)
		return
	}

	err = s.Services.Admins.ChangePassword(c.Request.Context(), id, form.NewPassword)
	middleware.Audit(c, utils.AuditActionChangePassword, utils.AuditResourceAdmin, strconv.FormatInt(id, 10), nil, err)
	if err != nil {
		h.panel.backendFailure("failed to change admin password", err, zap.Int64("admin_id", id))
		h.panel.redirect(c, s, uistate.ToastError, apiclient.MessageOr(err, "Erro ao alterar senha."), editPath)
		return
	}
	h.panel.redirect(c, s, uistate.ToastSuccess, "Senha alterada com sucesso!", editPath)
}

func (h *AdminHandlers) renderForm(c *gin.Context, s *Scope, status int, ctl *forms.Controller, form forms.AdminForm, message string) {
	page := h.formPage(ctl, form)
	page.Error = message
	h.panel.render(c, s, status, "admin_form", page)
}

func (h *AdminHandlers) formPage(ctl *forms.Controller, form forms.AdminForm) web.Page {
	data := AdminFormData{Form: form, ID: ctl.ID(), IsNew: ctl.IsNew(), Action: adminsPath + "/novo"}
	title := "Novo Administrador"
	if !ctl.IsNew() {
		title = "Editar Administrador"
		data.Action = adminsPath + "/" + strconv.FormatInt(ctl.ID(), 10)
		data.PasswordAction = data.Action + "/senha"
	}
	return web.Page{
		Title:   title,
		Section: web.SectionAdmins,
		Errors:  ctl.FieldErrors(),
		Data:    data,
	}
}
