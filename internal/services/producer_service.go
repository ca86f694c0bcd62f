package services

import (
	"context"

	"github.com/instituto-brotar/painel-brotar/internal/models"
)

// ProducerService manages producers
type ProducerService struct {
	resource[models.Producer]
}

// NewProducerService creates a producer service
func NewProducerService(backend Backend) *ProducerService {
	return &ProducerService{resource: newResource[models.Producer](backend, "/producers")}
}

// FamilyMemberService manages household members through their flat
// endpoint
type FamilyMemberService struct {
	resource[models.FamilyMember]
}

// NewFamilyMemberService creates a family member service on path
func NewFamilyMemberService(backend Backend, path string) *FamilyMemberService {
	return &FamilyMemberService{resource: newResource[models.FamilyMember](backend, path)}
}

// GetByProducer lists the members of one producer. The backend has no
// filter, so the whole collection is fetched and filtered here.
func (s *FamilyMemberService) GetByProducer(ctx context.Context, producerID int64) ([]models.FamilyMember, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	members := make([]models.FamilyMember, 0, len(all))
	for _, m := range all {
		if m.IDProducer == producerID {
			members = append(members, m)
		}
	}
	return members, nil
}
