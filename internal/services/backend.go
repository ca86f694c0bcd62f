package services

import (
	"context"

	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
)

// Backend is the subset of the gateway client the services use.
// *apiclient.Client satisfies it.
type Backend interface {
	Get(ctx context.Context, path string, out interface{}) error
	GetRaw(ctx context.Context, path string) ([]byte, error)
	GetBinary(ctx context.Context, path string) (*apiclient.Response, error)
	Post(ctx context.Context, path string, body, out interface{}) error
	Patch(ctx context.Context, path string, body, out interface{}) error
	Delete(ctx context.Context, path string) error
}

// Paths holds the backend paths that vary between deployments
type Paths struct {
	FamilyMembers string
	// PropertyItems is empty when items travel nested in the property
	PropertyItems string
}

// DefaultPaths are the paths used when none are configured
var DefaultPaths = Paths{FamilyMembers: "/familyMembers"}

// Services bundles every service bound to one session's backend client
type Services struct {
	Auth          *AuthService
	Admins        *AdminService
	Producers     *ProducerService
	FamilyMembers *FamilyMemberService
	Properties    *PropertyService
	PropertyItems *PropertyItemService
	Domains       *DomainService
	PDF           *PDFService
	Dashboard     *DashboardService
}

// New binds all services to backend
func New(backend Backend, paths Paths) *Services {
	if paths.FamilyMembers == "" {
		paths.FamilyMembers = DefaultPaths.FamilyMembers
	}
	return &Services{
		Auth:          NewAuthService(backend),
		Admins:        NewAdminService(backend),
		Producers:     NewProducerService(backend),
		FamilyMembers: NewFamilyMemberService(backend, paths.FamilyMembers),
		Properties:    NewPropertyService(backend),
		PropertyItems: NewPropertyItemService(backend, paths.PropertyItems),
		Domains:       NewDomainService(backend),
		PDF:           NewPDFService(backend),
		Dashboard:     NewDashboardService(backend),
	}
}
