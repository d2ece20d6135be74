package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ostia/pkg/domain"
)

func contractModel(id string) *domain.Model {
	return &domain.Model{
		ID:             id,
		Name:           "contract",
		AlphabetSize:   2,
		AlphabetMode:   "chars",
		InputAlphabet:  []string{"a", "b"},
		OutputAlphabet: []string{"x"},
		States: []domain.StateRecord{
			{
				Accepting: true,
				Transitions: []domain.TransitionRecord{
					{Symbol: 0, Target: 1, Output: domain.Seq(0)},
					{Symbol: 1, Target: 0},
				},
			},
			{
				Accepting:   true,
				Final:       domain.Seq(0, 0),
				Transitions: []domain.TransitionRecord{{Symbol: 0, Target: 0}},
			},
		},
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// RunModelStoreContract runs a suite of tests to verify that a ModelStore
// implementation adheres to the defined interface contract.
func RunModelStoreContract(t *testing.T, store ModelStore) {
	ctx := context.Background()
	modelID := "contract-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		model := contractModel(modelID)
		require.NoError(t, store.Save(ctx, model), "Save should not return error")

		loaded, err := store.Load(ctx, modelID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, model.ID, loaded.ID)
		assert.Equal(t, model.Name, loaded.Name)
		assert.Equal(t, model.AlphabetSize, loaded.AlphabetSize)
		assert.Equal(t, model.InputAlphabet, loaded.InputAlphabet)
		assert.Equal(t, model.States, loaded.States)
		assert.True(t, model.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		model := contractModel(modelID)
		model.Name = "renamed"
		require.NoError(t, store.Save(ctx, model))

		loaded, err := store.Load(ctx, modelID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", loaded.Name)
	})

	t.Run("Loaded Model Is Isolated", func(t *testing.T) {
		loaded, err := store.Load(ctx, modelID)
		require.NoError(t, err)
		loaded.States[0].Transitions[0].Target = 99

		again, err := store.Load(ctx, modelID)
		require.NoError(t, err)
		assert.Equal(t, 1, again.States[0].Transitions[0].Target)
	})

	t.Run("Save Without ID", func(t *testing.T) {
		assert.Error(t, store.Save(ctx, contractModel("")))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+modelID)
		assert.ErrorIs(t, err, domain.ErrModelNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractModel(modelID)))

		require.NoError(t, store.Delete(ctx, modelID), "Delete should not return error")

		_, err := store.Load(ctx, modelID)
		assert.ErrorIs(t, err, domain.ErrModelNotFound, "Load after Delete should return ErrModelNotFound")

		assert.NoError(t, store.Delete(ctx, modelID), "Delete of a missing model should succeed")
	})

	t.Run("List", func(t *testing.T) {
		id1 := modelID + "-1"
		id2 := modelID + "-2"
		require.NoError(t, store.Save(ctx, contractModel(id1)))
		require.NoError(t, store.Save(ctx, contractModel(id2)))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.NotContains(t, ids, modelID)
	})
}
