package web

import (
	"fmt"
	"html/template"

	"github.com/instituto-brotar/painel-brotar/internal/forms"
	"github.com/instituto-brotar/painel-brotar/internal/utils"
)

// Funcs are the helpers available to every template
func Funcs() template.FuncMap {
	return template.FuncMap{
		"cpf":      utils.FormatCPF,
		"phone":    utils.FormatPhone,
		"number":   utils.FormatOptionalFloat,
		"date":     utils.TruncateDate,
		"yesNo":    yesNo,
		"selected": selected,
		"checked":  checked,
		"rowField": forms.RowField,
		"add":      func(a, b int) int { return a + b },
		"percent":  percent,
	}
}

func yesNo(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

func selected(current, option string) template.HTMLAttr {
	if current == option {
		return "selected"
	}
	return ""
}

func checked(b bool) template.HTMLAttr {
	if b {
		return "checked"
	}
	return ""
}

// percent is part over whole, whole floored at one
func percent(part, whole int) string {
	if whole < 1 {
		whole = 1
	}
	return fmt.Sprintf("%.0f%%", float64(part)/float64(whole)*100)
}
