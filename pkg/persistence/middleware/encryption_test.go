package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MIBbrandon/Athena/pkg/adapters/memory"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/persistence/middleware"
	"github.com/MIBbrandon/Athena/pkg/ports"
)

func generateKey(t *testing.T) []byte {
	t.Helper()
	k := make([]byte, middleware.KeySize)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func sealed(t *testing.T, cfg middleware.EncryptionConfig, next ports.SessionStore) ports.SessionStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	require.NoError(t, err)
	return middleware.Chain(next, mw)
}

func playingSession(id string) *domain.Session {
	sess := domain.NewSession(id)
	sess.Status = domain.StatusReady
	sess.Puzzle = domain.Puzzle{SwapGraph: "[(1,2)]", InteractionGraph: "[(2,1)]", Soddi: "[(2,1)]"}
	sess.Solution = &domain.Solution{
		TotalSwaps: 1,
		Steps:      domain.StepSequence{domain.Swap("1", "2"), domain.InteractionCompleted()},
		IDs:        []domain.Label{"1", "2"},
	}
	sess.Soddi = domain.SoddiList{{Source: "2", Target: "1"}}
	sess.Labels = []domain.Label{"2", "1"}
	sess.Cursor = &domain.Cursor{StepIndex: 0, SoddiIndex: 0}
	return sess
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, sealed(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, memory.NewStore()))
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	store := sealed(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, underlying)

	original := playingSession("secret-session")
	require.NoError(t, store.Save(ctx, original))

	raw, err := underlying.Load(ctx, "secret-session")
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Sealed)
	assert.Equal(t, domain.StatusReady, raw.Status, "status stays readable")
	assert.Empty(t, raw.Puzzle.Soddi, "puzzle is hidden")
	assert.Nil(t, raw.Solution)
	assert.NotContains(t, string(raw.Sealed), "[(2,1)]")

	loaded, err := store.Load(ctx, "secret-session")
	require.NoError(t, err)
	assert.Equal(t, original.Puzzle, loaded.Puzzle)
	assert.Equal(t, original.Labels, loaded.Labels)
	assert.Equal(t, *original.Cursor, *loaded.Cursor)
	assert.Equal(t, original.Solution.Steps, loaded.Solution.Steps)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	oldKey, newKey := generateKey(t), generateKey(t)

	storeOld := sealed(t, middleware.EncryptionConfig{ActiveKey: oldKey}, underlying)
	require.NoError(t, storeOld.Save(ctx, playingSession("rotation")))

	storeNew := sealed(t, middleware.EncryptionConfig{ActiveKey: newKey, FallbackKeys: [][]byte{oldKey}}, underlying)
	loaded, err := storeNew.Load(ctx, "rotation")
	require.NoError(t, err, "fallback key decrypts old data")

	require.NoError(t, storeNew.Save(ctx, loaded))
	_, err = storeOld.Load(ctx, "rotation")
	assert.Error(t, err, "data written with the new key is unreadable with the old one")
}

func TestEncryptionMiddleware_RejectsPlainSessions(t *testing.T) {
	ctx := context.Background()
	underlying := memory.NewStore()
	require.NoError(t, underlying.Save(ctx, domain.NewSession("plain")))

	store := sealed(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, underlying)
	_, err := store.Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotSealed)

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	assert.ErrorIs(t, err, middleware.ErrInvalidKey)

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.ErrorIs(t, err, middleware.ErrInvalidKey)
}
