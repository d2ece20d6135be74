package ports

import (
	"context"

	"github.com/aretw0/ostia/pkg/domain"
)

// ModelStore persists learned transducers, keyed by Model.ID.
type ModelStore interface {
	// Save stores the model, replacing any previous model with the same ID.
	Save(ctx context.Context, model *domain.Model) error

	// Load retrieves a model by ID.
	// Returns domain.ErrModelNotFound if the model does not exist.
	Load(ctx context.Context, id string) (*domain.Model, error)

	// Delete removes a model. Deleting a missing model is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored models.
	List(ctx context.Context) ([]string, error)
}
