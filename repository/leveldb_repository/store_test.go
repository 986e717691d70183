package leveldb_repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mohammad-safakhou/fitcoach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(ctx, "missing")
	require.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, s.Set(ctx, "k", []byte(`{"a":1}`)))
	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(v))

	require.NoError(t, s.Set(ctx, "k", []byte(`true`)))
	v, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "true", string(v))

	require.NoError(t, s.Delete(ctx, "k"))
	_, err = s.Get(ctx, "k")
	require.ErrorIs(t, err, models.ErrNotFound)
}
