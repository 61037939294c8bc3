package credstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(context.Background(), dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, dir
}

func TestSetAndGet(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "login", "tok-123"))

	v, err := s.Get(ctx, "login")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", v)
}

func TestGet_AbsentKeyIsNotAnError(t *testing.T) {
	s, _ := openStore(t)

	v, err := s.Get(context.Background(), "login")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestSet_Upserts(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "login", "old"))
	require.NoError(t, s.Set(ctx, "login", "new"))

	v, err := s.Get(ctx, "login")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestClear_RemovesKeyAndIsIdempotent(t *testing.T) {
	s, _ := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "login", "tok"))
	require.NoError(t, s.Clear(ctx, "login"))
	require.NoError(t, s.Clear(ctx, "login"))

	v, err := s.Get(ctx, "login")
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestValuesAreSealedAtRest(t *testing.T) {
	s, dir := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "login", "tok-123"))

	// Read the raw row through a second connection to the same file.
	raw, err := sql.Open("sqlite", filepath.Join(dir, dbFileName))
	require.NoError(t, err)
	defer raw.Close()

	var stored []byte
	require.NoError(t, raw.QueryRow(`SELECT value FROM credentials WHERE key = ?`, "login").Scan(&stored))
	assert.NotContains(t, string(stored), "tok-123")
}

func TestOpen_ReusesExistingStore(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, "login", "tok-123"))
	require.NoError(t, s1.Close())

	s2, err := Open(ctx, dir)
	require.NoError(t, err)
	defer s2.Close()

	v, err := s2.Get(ctx, "login")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", v)
}
