package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
	"github.com/instituto-brotar/painel-brotar/internal/forms"
	"github.com/instituto-brotar/painel-brotar/internal/listing"
	"github.com/instituto-brotar/painel-brotar/internal/middleware"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/observability"
	"github.com/instituto-brotar/painel-brotar/internal/services"
	"github.com/instituto-brotar/painel-brotar/internal/session"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
	"github.com/instituto-brotar/painel-brotar/web"
	"go.uber.org/zap"
)

// LoginData is the login page
type LoginData struct {
	CPF string
}

// AuthHandlers serves login, logout, the expired session redirect and the
// first access password change
type AuthHandlers struct {
	panel *Panel
}

// NewAuthHandlers creates the auth handlers
func NewAuthHandlers(panel *Panel) *AuthHandlers {
	return &AuthHandlers{panel: panel}
}

// LoginPage renders the login form
func (h *AuthHandlers) LoginPage(c *gin.Context) {
	s := h.panel.Scope(c)
	h.panel.render(c, s, http.StatusOK, "login", web.Page{Title: "Entrar", Bare: true, Data: LoginData{}})
}

// Login exchanges CPF and password for a session
func (h *AuthHandlers) Login(c *gin.Context) {
	s := h.panel.Scope(c)
	ctx := c.Request.Context()

	cpf := strings.TrimSpace(c.PostForm("cpf"))
	password := c.PostForm("password")
	page := web.Page{Title: "Entrar", Bare: true, Data: LoginData{CPF: cpf}}

	if utils.OnlyDigits(cpf) == "" || password == "" {
		page.Error = "Informe CPF e senha."
		h.panel.render(c, s, http.StatusBadRequest, "login", page)
		return
	}

	// A rejected password is not an expired session, so the login call
	// carries neither token nor expiry notifier.
	auth := services.NewAuthService(h.panel.Gateway.For(nil, nil))
	resp, err := auth.Login(ctx, cpf, password)
	if err != nil {
		h.panel.Logger.Info("login failed",
			zap.String("cpf", observability.MaskCPF(cpf)),
			zap.Error(err))
		page.Error = apiclient.MessageOr(err, "Erro ao realizar login. Verifique CPF e senha.")
		status := http.StatusUnauthorized
		if !apiclient.IsUnauthorized(err) {
			status = statusFor(err)
		}
		h.panel.render(c, s, status, "login", page)
		return
	}

	identity := loginIdentity(resp, cpf)
	s.Session.Login(identity, resp.AccessToken)
	if err := h.panel.Cookies.Persist(c.Writer, identity, resp.AccessToken, resp.PrimaryAcess); err != nil {
		h.panel.Logger.Error("failed to persist session cookies", zap.Error(err))
		page.Error = "Erro ao realizar login. Tente novamente."
		h.panel.render(c, s, http.StatusInternalServerError, "login", page)
		return
	}
	s.Signal.Close(ctx)
	listing.Discard(ctx, s.Browser, allLists...)
	middleware.Audit(c, utils.AuditActionLogin, utils.AuditResourceSession, identity.UserID, nil, nil)

	if resp.PrimaryAcess {
		c.Redirect(http.StatusSeeOther, middleware.ChangePasswordPath)
		return
	}
	c.Redirect(http.StatusSeeOther, middleware.DashboardPath)
}

// loginIdentity is the identity in the token. The admin id of the login
// response and the typed CPF fill what the token lacks.
func loginIdentity(resp *models.LoginResponse, cpf string) models.Identity {
	fallback := models.Identity{CPF: utils.OnlyDigits(cpf), Role: models.RoleAdmin}
	if resp.ID > 0 {
		fallback.UserID = strconv.FormatInt(resp.ID, 10)
	}
	claims, err := session.ParseClaims(resp.AccessToken)
	if err != nil {
		return fallback
	}
	return claims.IdentityOver(fallback)
}

// Logout ends the session
func (h *AuthHandlers) Logout(c *gin.Context) {
	s := h.panel.Scope(c)
	middleware.Audit(c, utils.AuditActionLogout, utils.AuditResourceSession, "", nil, nil)
	h.endSession(c, s)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

// SessionExpired is where the expired modal lands. It only logs out while
// the signal is still open; a stale visit after logging in again is sent
// back to the dashboard.
func (h *AuthHandlers) SessionExpired(c *gin.Context) {
	s := h.panel.Scope(c)
	if !s.Signal.IsOpen(c.Request.Context()) {
		c.Redirect(http.StatusSeeOther, middleware.DashboardPath)
		return
	}
	h.endSession(c, s)
	s.Browser.PushToast(c.Request.Context(), uistate.ToastError, "Sua sessão expirou. Faça login novamente.")
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

func (h *AuthHandlers) endSession(c *gin.Context, s *Scope) {
	h.panel.Cookies.Clear(c.Writer)
	s.Session.Logout()
	s.Signal.Close(c.Request.Context())
	listing.Discard(c.Request.Context(), s.Browser, allLists...)
}

// ChangePasswordPage renders the first access password form
func (h *AuthHandlers) ChangePasswordPage(c *gin.Context) {
	s := h.panel.Scope(c)
	if !s.Session.IsAuthenticated() {
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		return
	}
	h.panel.render(c, s, http.StatusOK, "change_password", web.Page{Title: "Criar Nova Senha", Bare: true})
}

// ChangePassword sets the password of the logged in admin and lifts the
// forced change
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	s := h.panel.Scope(c)
	if !s.Session.IsAuthenticated() {
		c.Redirect(http.StatusSeeOther, middleware.LoginPath)
		return
	}
	page := web.Page{Title: "Criar Nova Senha", Bare: true}

	values, err := postedForm(c)
	if err != nil {
		page.Error = "Dados inválidos."
		h.panel.render(c, s, http.StatusBadRequest, "change_password", page)
		return
	}
	form, err := forms.ParsePasswordForm(values)
	if err != nil {
		page.Error = "Dados inválidos."
		h.panel.render(c, s, http.StatusBadRequest, "change_password", page)
		return
	}
	if result := form.Validate(true); !result.IsValid {
		page.Errors = result.FieldErrors()
		h.panel.render(c, s, http.StatusUnprocessableEntity, "change_password", page)
		return
	}

	id := userID(s)
	if id == 0 {
		page.Error = "Erro: Usuário não identificado. Faça login novamente."
		h.panel.render(c, s, http.StatusBadRequest, "change_password", page)
		return
	}

	err = s.Services.Admins.ChangePassword(c.Request.Context(), id, form.NewPassword)
	middleware.Audit(c, utils.AuditActionChangePassword, utils.AuditResourceAdmin, strconv.FormatInt(id, 10), nil, err)
	if err != nil {
		h.panel.backendFailure("failed to change password", err, zap.Int64("admin_id", id))
		page.Error = apiclient.MessageOr(err, "Erro ao alterar senha.")
		h.panel.render(c, s, statusFor(err), "change_password", page)
		return
	}

	h.panel.Cookies.ClearRequiresChange(c.Writer)
	h.panel.redirect(c, s, uistate.ToastSuccess, "Senha alterada com sucesso!", middleware.DashboardPath)
}

// Throttled answers a login attempt over the per IP limit
func (h *AuthHandlers) Throttled(c *gin.Context) {
	s := h.panel.Scope(c)
	cpf := strings.TrimSpace(c.PostForm("cpf"))
	page := web.Page{
		Title: "Entrar",
		Bare:  true,
		Error: "Muitas tentativas. Aguarde um minuto.",
		Data:  LoginData{CPF: cpf},
	}
	h.panel.render(c, s, http.StatusTooManyRequests, "login", page)
}
