package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MIBbrandon/Athena/internal/adapters/file"
	"github.com/MIBbrandon/Athena/pkg/domain"
	"github.com/MIBbrandon/Athena/pkg/ports"
)

var _ ports.SessionStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSessionStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_Layout(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewSession("abc")))
	assert.FileExists(t, filepath.Join(dir, "abc.json"))

	// Leftover temp files from a crashed write are not sessions.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-abc-123.json"), []byte("{"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"abc"}, ids)
}

func TestFileStore_Errors(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, domain.NewSession("")))
	assert.Error(t, store.Save(ctx, domain.NewSession("../escape")))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
	assert.NoError(t, store.Delete(ctx, "missing"))

	empty := file.New(filepath.Join(t.TempDir(), "nope"))
	ids, err := empty.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0644))

	_, err := file.New(dir).Load(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".athena", "sessions"), file.New("").BasePath)
}
