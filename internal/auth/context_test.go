package auth

import (
	"context"
	"testing"

	"github.com/photogram/photogram/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewerID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ViewerID(ctx))

	ctx = ContextWithViewer(ctx, "user-1")
	assert.Equal(t, "user-1", ViewerID(ctx))
}

func TestRequireViewer(t *testing.T) {
	ctx := context.Background()

	_, err := RequireViewer(ctx)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnauthenticated, apperr.CodeOf(err))

	id, err := RequireViewer(ContextWithViewer(ctx, "user-1"))
	require.NoError(t, err)
	assert.Equal(t, "user-1", id)
}
