package web

import (
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/instituto-brotar/painel-brotar/internal/uistate"
)

// Section identifies the sidebar entry highlighted on a page
type Section string

const (
	SectionOverview   Section = "overview"
	SectionProducers  Section = "producers"
	SectionProperties Section = "properties"
	SectionReports    Section = "reports"
	SectionDomains    Section = "domains"
	SectionAdmins     Section = "admins"
)

// MenuItem is one sidebar link
type MenuItem struct {
	Section Section
	Href    string
	Label   string
}

// Menu is the sidebar in display order
var Menu = []MenuItem{
	{SectionOverview, "/dashboard", "Visão Geral"},
	{SectionProducers, "/dashboard/produtores", "Produtores"},
	{SectionProperties, "/dashboard/propriedades", "Propriedades"},
	{SectionReports, "/dashboard/relatorios", "Relatórios PDF"},
	{SectionDomains, "/dashboard/dominios", "Domínios"},
	{SectionAdmins, "/dashboard/admins", "Administradores"},
}

// Expiry drives the session expired modal. The page refreshes to Redirect
// once Seconds have passed.
type Expiry struct {
	Seconds  int
	Redirect string
}

// Page is the data every template receives
type Page struct {
	Title   string
	Section Section
	// Bare pages render without the sidebar
	Bare   bool
	User   *models.Identity
	Toasts []uistate.Toast
	Expiry *Expiry

	// Error is shown above the content; Errors holds inline field messages
	Error  string
	Errors map[string]string

	Data interface{}
}

// Menu returns the sidebar with the page section marked
func (p Page) Menu() []MenuItem {
	return Menu
}

// Active reports whether s is the highlighted section
func (p Page) Active(s Section) bool {
	return p.Section == s
}

// FieldError returns the inline message of field, "" when it is valid
func (p Page) FieldError(field string) string {
	return p.Errors[field]
}
