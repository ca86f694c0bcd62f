package services

import (
	"context"

	"github.com/instituto-brotar/painel-brotar/internal/models"
)

// PropertyService manages properties
type PropertyService struct {
	resource[models.Property]
}

// NewPropertyService creates a property service
func NewPropertyService(backend Backend) *PropertyService {
	return &PropertyService{resource: newResource[models.Property](backend, "/properties")}
}

// PropertyItemService manages inventory rows through a flat endpoint. It is
// disabled when items travel nested in the property payload.
type PropertyItemService struct {
	resource[models.PropertyItem]
}

// NewPropertyItemService creates an item service on path; an empty path
// disables it
func NewPropertyItemService(backend Backend, path string) *PropertyItemService {
	return &PropertyItemService{resource: newResource[models.PropertyItem](backend, path)}
}

// Enabled reports whether a flat item endpoint is configured
func (s *PropertyItemService) Enabled() bool {
	return s != nil && s.path != ""
}

// GetByProperty lists the items of one property, filtered here
func (s *PropertyItemService) GetByProperty(ctx context.Context, propertyID int64) ([]models.PropertyItem, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]models.PropertyItem, 0, len(all))
	for _, it := range all {
		if it.IDProperty == propertyID {
			items = append(items, it)
		}
	}
	return items, nil
}
