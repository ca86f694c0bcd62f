package models

// Domain groups of the item catalog
const (
	GroupInfrastructure = "INFRAESTRUTURA"
	GroupMachinery      = "MAQUINAS"
	GroupAnimals        = "ANIMAIS"
	GroupProductive     = "PRODUTIVO"
	GroupOther          = "OUTROS"
)

// DomainGroups lists the catalog groups in display order
var DomainGroups = []string{GroupInfrastructure, GroupMachinery, GroupAnimals, GroupProductive, GroupOther}

// IsDomainGroup reports whether g is a known catalog group
func IsDomainGroup(g string) bool {
	for _, known := range DomainGroups {
		if g == known {
			return true
		}
	}
	return false
}

// Domain is a catalog entry referenced by property items
type Domain struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Description string `json:"description,omitempty"`
}

// GetID returns the domain id
func (d Domain) GetID() int64 { return d.ID }

// DomainPayload is the domain body sent on create and update
type DomainPayload struct {
	Name        string  `json:"name"`
	Group       string  `json:"group"`
	Description *string `json:"description"`
}
