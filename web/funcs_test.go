package web

import (
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole int
		want        string
	}{
		{0, 0, "0%"},
		{3, 0, "300%"},
		{1, 4, "25%"},
		{2, 3, "67%"},
		{5, 5, "100%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, percent(tt.part, tt.whole))
	}
}

func TestAttributeHelpers(t *testing.T) {
	assert.Equal(t, template.HTMLAttr("selected"), selected("CE", "CE"))
	assert.Equal(t, template.HTMLAttr(""), selected("CE", "PE"))
	assert.Equal(t, template.HTMLAttr("checked"), checked(true))
	assert.Equal(t, template.HTMLAttr(""), checked(false))
	assert.Equal(t, "Sim", yesNo(true))
	assert.Equal(t, "Não", yesNo(false))
}

func TestPageHelpers(t *testing.T) {
	p := Page{Section: SectionProducers, Errors: map[string]string{"cpf": "CPF inválido"}}

	assert.True(t, p.Active(SectionProducers))
	assert.False(t, p.Active(SectionAdmins))
	assert.Equal(t, "CPF inválido", p.FieldError("cpf"))
	assert.Empty(t, p.FieldError("name"))
	assert.Len(t, p.Menu(), 6)
	assert.Equal(t, "/dashboard", p.Menu()[0].Href)
}
