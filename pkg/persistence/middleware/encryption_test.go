package middleware_test

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"io"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ostia/pkg/adapters/memory"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/persistence/middleware"
	"github.com/aretw0/ostia/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, 32)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func secret() *domain.Model {
	return &domain.Model{
		ID:             "plural",
		Name:           "plural",
		AlphabetSize:   2,
		InputAlphabet:  []string{"a", "b"},
		OutputAlphabet: []string{"x"},
		States: []domain.StateRecord{
			{Accepting: true, Transitions: []domain.TransitionRecord{{Symbol: 0, Target: 0, Output: domain.Seq(0)}}},
		},
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	store := mw(underlying)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, secret()))

	raw, err := underlying.Load(ctx, "plural")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Sealed)
	assert.Empty(t, raw.Name)
	assert.Empty(t, raw.InputAlphabet)
	assert.Nil(t, raw.States)
	assert.Equal(t, secret().CreatedAt, raw.CreatedAt)

	loaded, err := store.Load(ctx, "plural")
	require.NoError(t, err)
	if diff := cmp.Diff(secret(), loaded); diff != "" {
		t.Errorf("decrypted model mismatch (-want +got):\n%s", diff)
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"plural"}, ids)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	oldKey, newKey := generateKey(t), generateKey(t)

	oldMW, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: oldKey})
	require.NoError(t, err)
	require.NoError(t, oldMW(underlying).Save(ctx, secret()))

	rotated, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey, FallbackKeys: [][]byte{oldKey}})
	require.NoError(t, err)
	loaded, err := rotated(underlying).Load(ctx, "plural")
	require.NoError(t, err)
	assert.Equal(t, "plural", loaded.Name)

	strict, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: newKey})
	require.NoError(t, err)
	_, err = strict(underlying).Load(ctx, "plural")
	assert.ErrorContains(t, err, "decryption failed")
}

func TestEncryptionMiddleware_RejectsPlainModels(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, secret()))

	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	_, err = mw(underlying).Load(ctx, "plural")
	assert.ErrorIs(t, err, domain.ErrInvalidModel)

	_, err = mw(underlying).Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)})
	require.NoError(t, err)
	ports.RunModelStoreContract(t, middleware.Chain(memory.NewStore(), mw))
}

func TestParseKeys(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(generateKey(t))

	cfg, err := middleware.ParseKeys(key, key)
	require.NoError(t, err)
	assert.Len(t, cfg.ActiveKey, 32)
	assert.Len(t, cfg.FallbackKeys, 1)

	_, err = middleware.ParseKeys(base64.StdEncoding.EncodeToString([]byte("short")))
	assert.ErrorIs(t, err, middleware.ErrKeySize)

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{})
	assert.ErrorIs(t, err, middleware.ErrKeySize)
}
