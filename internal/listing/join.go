package listing

import (
	"context"
	"fmt"

	"github.com/instituto-brotar/painel-brotar/internal/models"
	"golang.org/x/sync/errgroup"
)

// LoadPropertiesWithOwners fetches properties and producers in parallel
// and fills the owner of every property the backend sent without one.
// Either fetch failing fails the whole load; a partial join is never
// returned.
func LoadPropertiesWithOwners(ctx context.Context, properties Source[models.Property], producers Source[models.Producer]) ([]models.Property, error) {
	var (
		props []models.Property
		prods []models.Producer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		props, err = properties.GetAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load properties: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		prods, err = producers.GetAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load producers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return JoinOwners(props, prods), nil
}

// JoinOwners sets Producer from the producer list, matched by idProducer,
// on every property that lacks it
func JoinOwners(props []models.Property, prods []models.Producer) []models.Property {
	owners := make(map[int64]models.Owner, len(prods))
	for _, p := range prods {
		owners[p.ID] = models.Owner{Name: p.Name, CPF: p.CPF}
	}

	joined := make([]models.Property, len(props))
	for i, p := range props {
		if p.Producer == nil {
			if owner, ok := owners[p.IDProducer]; ok {
				owner := owner
				p.Producer = &owner
			}
		}
		joined[i] = p
	}
	return joined
}

// SourceFunc adapts a function to Source
type SourceFunc[T any] func(ctx context.Context) ([]T, error)

// GetAll calls f
func (f SourceFunc[T]) GetAll(ctx context.Context) ([]T, error) {
	return f(ctx)
}

// WithOwners is a property source whose rows carry their owner
func WithOwners(properties Source[models.Property], producers Source[models.Producer]) Source[models.Property] {
	return SourceFunc[models.Property](func(ctx context.Context) ([]models.Property, error) {
		return LoadPropertiesWithOwners(ctx, properties, producers)
	})
}
