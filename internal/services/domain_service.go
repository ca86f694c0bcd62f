package services

import "github.com/instituto-brotar/painel-brotar/internal/models"

// DomainService manages the item catalog
type DomainService struct {
	resource[models.Domain]
}

// NewDomainService creates a domain service
func NewDomainService(backend Backend) *DomainService {
	return &DomainService{resource: newResource[models.Domain](backend, "/domains")}
}
