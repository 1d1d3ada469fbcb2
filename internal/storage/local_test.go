package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaveOpenDelete(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	key := "workorders/1/before/photo.jpg"

	require.NoError(t, l.Save(ctx, key, "image/jpeg", strings.NewReader("jpegbytes")))

	r, ct, err := l.Open(ctx, key)
	require.NoError(t, err)
	defer r.Close()

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "jpegbytes", string(data))
	assert.Equal(t, "image/jpeg", ct)

	require.NoError(t, l.Delete(ctx, key))

	_, _, err = l.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalOpenMissing(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, _, err = l.Open(context.Background(), "nope.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocalRejectsTraversal(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	// Cleaned inside the base dir or rejected; either way, /etc stays safe.
	err = l.Save(ctx, "../../etc/passwd", "", strings.NewReader("confined"))
	if err == nil {
		r, _, openErr := l.Open(ctx, "etc/passwd")
		require.NoError(t, openErr, "traversal key must have been confined to the base dir")
		data, _ := io.ReadAll(r)
		r.Close()
		assert.Equal(t, "confined", string(data))
	}
}
