package services

import (
	"context"
	"fmt"

	"github.com/instituto-brotar/painel-brotar/internal/apiclient"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"golang.org/x/sync/errgroup"
)

// DashboardService aggregates the headline counters
type DashboardService struct {
	backend Backend
}

// NewDashboardService creates a dashboard service
func NewDashboardService(backend Backend) *DashboardService {
	return &DashboardService{backend: backend}
}

// Stats issues the four counting calls in parallel. Totals come from the
// pagination metadata; the domain count is the length of the list.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var producers, properties, pcd, domains []byte

	g, gctx := errgroup.WithContext(ctx)
	fetch := func(path string, into *[]byte) {
		g.Go(func() error {
			body, err := s.backend.GetRaw(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to fetch %s: %w", path, err)
			}
			*into = body
			return nil
		})
	}
	fetch("/producers?page=1&pageSize=1", &producers)
	fetch("/properties?page=1&pageSize=1", &properties)
	fetch("/producers?isPcd=true&page=1&pageSize=1", &pcd)
	fetch("/domains", &domains)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.DashboardStats{
		TotalProducers:    apiclient.MetaTotal(producers),
		TotalProperties:   apiclient.MetaTotal(properties),
		TotalPcdProducers: apiclient.MetaTotal(pcd),
		TotalDomains:      apiclient.ArrayLength(domains),
	}, nil
}
