package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Load(ctx, DocInventory)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, DocInventory, []byte(`{"rooms":[]}`)))
	body, err := s.Load(ctx, DocInventory)
	require.NoError(t, err)
	require.JSONEq(t, `{"rooms":[]}`, string(body))

	// Overwrite replaces the whole document.
	require.NoError(t, s.Save(ctx, DocInventory, []byte(`{"rooms":[1]}`)))
	body, err = s.Load(ctx, DocInventory)
	require.NoError(t, err)
	require.JSONEq(t, `{"rooms":[1]}`, string(body))
}

func TestMemoryStoreCopiesBodies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	in := []byte(`{"v":1}`)
	require.NoError(t, s.Save(ctx, DocContracts, in))
	in[2] = 'x' // mutating the caller's slice must not reach the store

	body, err := s.Load(ctx, DocContracts)
	require.NoError(t, err)
	require.Equal(t, `{"v":1}`, string(body))

	body[2] = 'y' // mutating a loaded copy must not reach the store
	again, err := s.Load(ctx, DocContracts)
	require.NoError(t, err)
	require.Equal(t, `{"v":1}`, string(again))
}
