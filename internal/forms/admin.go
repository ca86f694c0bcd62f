package forms

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
)

// MinPasswordLength is the shortest password the panel accepts
const MinPasswordLength = 8

// AdminForm holds the admin form. Password is only read on create.
type AdminForm struct {
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// AdminFormFrom fills the form from a fetched admin
func AdminFormFrom(a *models.Admin) AdminForm {
	return AdminForm{Name: a.Name, Email: a.Email}
}

// ParseAdminForm reads a posted admin form
func ParseAdminForm(values url.Values) (AdminForm, error) {
	var f AdminForm
	err := bindFlat(values, &f)
	return f, err
}

// Validate checks the form. creating adds the password rule.
func (f *AdminForm) Validate(creating bool) *utils.ValidationResult {
	result := utils.NewValidationResult()
	result.MinLength("name", f.Name, 3, "Nome obrigatório")
	if !utils.IsEmail(f.Email) {
		result.AddError("email", "Email inválido")
	}
	if creating && utf8.RuneCountInString(f.Password) < MinPasswordLength {
		result.AddError("password", "Senha deve ter ao menos 8 caracteres")
	}
	return result
}

// CreatePayload is the body of POST /admins
func (f *AdminForm) CreatePayload() models.AdminCreatePayload {
	return models.AdminCreatePayload{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Password: f.Password,
	}
}

// UpdatePayload is the body of PATCH /admins/:id
func (f *AdminForm) UpdatePayload() models.AdminUpdatePayload {
	return models.AdminUpdatePayload{
		Name:  strings.TrimSpace(f.Name),
		Email: strings.TrimSpace(f.Email),
	}
}

// PasswordForm is the change password form, used both on first access and
// from the admin edit page
type PasswordForm struct {
	NewPassword     string `form:"newPassword"`
	ConfirmPassword string `form:"confirmPassword"`
}

// ParsePasswordForm reads a posted password form
func ParsePasswordForm(values url.Values) (PasswordForm, error) {
	var f PasswordForm
	err := bindFlat(values, &f)
	return f, err
}

// Validate checks length and, when confirm is set, the confirmation
func (f *PasswordForm) Validate(confirm bool) *utils.ValidationResult {
	result := utils.NewValidationResult()
	if utf8.RuneCountInString(f.NewPassword) < MinPasswordLength {
		result.AddError("newPassword", "A senha deve ter no mínimo 8 caracteres.")
	}
	if confirm && f.NewPassword != f.ConfirmPassword {
		result.AddError("confirmPassword", "A confirmação de senha não confere.")
	}
	return result
}
