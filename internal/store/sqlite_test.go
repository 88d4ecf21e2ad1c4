package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Set(ctx, KeyToken, []byte("tok-1")))

	v, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("tok-1"), v)

	// Overwrite.
	require.NoError(t, s.Set(ctx, KeyToken, []byte("tok-2")))
	v, err = s.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("tok-2"), v)
}

func TestStore_GetAbsentKey(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	v, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestStore_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Set(ctx, KeyToken, []byte("t")))
	require.NoError(t, s.Set(ctx, KeyIdentity, []byte(`{"id":"u1"}`)))

	require.NoError(t, s.Delete(ctx, KeyToken))
	v, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Nil(t, v)

	// Deleting an absent key is a no-op.
	require.NoError(t, s.Delete(ctx, KeyToken))

	require.NoError(t, s.Clear(ctx))
	v, err = s.Get(ctx, KeyIdentity)
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "client.db")

	s, err := Open(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyToken, []byte("persisted")))
	require.NoError(t, s.Close())

	// Migrations must be idempotent and data must survive reopen.
	s, err = Open(ctx, dsn)
	require.NoError(t, err)
	defer s.Close()

	v, err := s.Get(ctx, KeyToken)
	require.NoError(t, err)
	require.Equal(t, []byte("persisted"), v)
}
