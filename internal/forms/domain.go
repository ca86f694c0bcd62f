package forms

import (
	"net/url"
	"strings"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
)

// DomainForm holds the catalog entry form
type DomainForm struct {
	Name        string `form:"name"`
	Group       string `form:"group"`
	Description string `form:"description"`
}

// DomainFormFrom fills the form from a fetched domain
func DomainFormFrom(d *models.Domain) DomainForm {
	return DomainForm{Name: d.Name, Group: d.Group, Description: d.Description}
}

// ParseDomainForm reads a posted domain form
func ParseDomainForm(values url.Values) (DomainForm, error) {
	var f DomainForm
	err := bindFlat(values, &f)
	return f, err
}

// Validate checks the form before any backend call
func (f *DomainForm) Validate() *utils.ValidationResult {
	result := utils.NewValidationResult()
	result.MinLength("name", f.Name, 3, "Nome deve ter no mínimo 3 caracteres")
	if !models.IsDomainGroup(f.Group) {
		result.AddError("group", "Selecione um grupo")
	}
	return result
}

// Payload converts the form to the backend body
func (f *DomainForm) Payload() models.DomainPayload {
	return models.DomainPayload{
		Name:        strings.TrimSpace(f.Name),
		Group:       f.Group,
		Description: utils.NullIfEmpty(f.Description),
	}
}
