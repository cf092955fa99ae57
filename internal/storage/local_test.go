package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inspection-back/internal/config"
	"inspection-back/internal/errs"
)

func TestLocal_PutOpenDelete(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)

	key := "users/1/reports/a.png"
	require.NoError(t, l.Put(ctx, key, strings.NewReader("data"), 4, "image/png"))

	rc, err := l.Open(ctx, key)
	require.NoError(t, err)
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "data", string(b))

	url, err := l.URL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "/media/users/1/reports/a.png", url)

	require.NoError(t, l.Delete(ctx, key))
	_, err = l.Open(ctx, key)
	require.ErrorIs(t, err, errs.ErrNotFound)

	// deleting twice is fine
	require.NoError(t, l.Delete(ctx, key))
}

func TestLocal_RejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir(), "/media")
	require.NoError(t, err)

	for _, key := range []string{"", "../x", "users/../../etc/passwd", "/abs"} {
		assert.Error(t, l.Put(ctx, key, strings.NewReader("x"), 1, ""), key)
		_, err := l.URL(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestNew_SelectsDriver(t *testing.T) {
	ctx := context.Background()
	s, err := New(ctx, config.Storage{Driver: config.DriverLocal, MediaRoot: t.TempDir(), MediaURL: "/media"}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &Local{}, s)

	_, err = New(ctx, config.Storage{Driver: "ftp"}, zap.NewNop())
	require.Error(t, err)
}

func TestObjectName(t *testing.T) {
	a := ObjectName(7, "reports", ".png")
	b := ObjectName(7, "reports", ".png")
	assert.True(t, strings.HasPrefix(a, "users/7/reports/"))
	assert.True(t, strings.HasSuffix(a, ".png"))
	assert.NotEqual(t, a, b)
}
