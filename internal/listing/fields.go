package listing

import (
	"github.com/instituto-brotar/painel-brotar/internal/models"
)

// Search fields of each list

func ProducerName(p models.Producer) string { return p.Name }
func ProducerCPF(p models.Producer) string  { return p.CPF }

func PropertyName(p models.Property) string { return p.ProductiveAreaName }

func PropertyOwner(p models.Property) string {
	if p.Producer == nil {
		return ""
	}
	return p.Producer.Name
}

func DomainName(d models.Domain) string  { return d.Name }
func DomainGroup(d models.Domain) string { return d.Group }

func AdminName(a models.Admin) string  { return a.Name }
func AdminEmail(a models.Admin) string { return a.Email }
