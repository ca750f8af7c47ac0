package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosebudapp/rosebud/internal/common"
	"github.com/rosebudapp/rosebud/internal/logging"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type render struct {
	data  []string
	stale bool
}

func TestRun_CachedRenderPrecedesNetwork(t *testing.T) {
	ctx := context.Background()

	var renders []render
	var written [][]string

	src := Source[[]string]{
		ReadCache: func(ctx context.Context) ([]string, bool, error) {
			return []string{"cached"}, true, nil
		},
		Fetch: func(ctx context.Context) ([]string, error) {
			// The cached snapshot must already have been rendered by the
			// time the fetch is issued.
			require.Len(t, renders, 1)
			require.True(t, renders[0].stale)
			return []string{"fresh"}, nil
		},
		WriteCache: func(ctx context.Context, data []string) error {
			written = append(written, data)
			return nil
		},
	}

	res := Run(ctx, testLogger(), src, func(data []string, stale bool) {
		renders = append(renders, render{data: data, stale: stale})
	})

	require.Len(t, renders, 2)
	assert.Equal(t, []string{"cached"}, renders[0].data)
	assert.True(t, renders[0].stale)
	assert.Equal(t, []string{"fresh"}, renders[1].data)
	assert.False(t, renders[1].stale)

	// The fetched value replaces the rendered state and is persisted.
	assert.Equal(t, []string{"fresh"}, res.Data)
	assert.False(t, res.Stale)
	assert.NoError(t, res.Err)
	assert.Equal(t, [][]string{{"fresh"}}, written)
}

func TestRun_FetchFailureKeepsCache(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")

	var renders []render
	src := Source[[]string]{
		ReadCache: func(ctx context.Context) ([]string, bool, error) {
			return []string{"cached"}, true, nil
		},
		Fetch: func(ctx context.Context) ([]string, error) {
			return nil, boom
		},
		WriteCache: func(ctx context.Context, data []string) error {
			t.Fatal("write-back must not run on fetch failure")
			return nil
		},
	}

	res := Run(ctx, testLogger(), src, func(data []string, stale bool) {
		renders = append(renders, render{data: data, stale: stale})
	})

	require.Len(t, renders, 1)
	assert.Equal(t, []string{"cached"}, res.Data)
	assert.True(t, res.Stale)
	assert.ErrorIs(t, res.Err, boom)
}

func TestRun_NoCacheNoNetwork(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("offline")

	src := Source[[]string]{
		ReadCache: func(ctx context.Context) ([]string, bool, error) {
			return nil, false, nil
		},
		Fetch: func(ctx context.Context) ([]string, error) {
			return nil, boom
		},
	}

	var renderCount int
	res := Run(ctx, testLogger(), src, func(data []string, stale bool) {
		renderCount++
	})

	// Nothing to paint at all: the view shows its explicit offline state.
	assert.Zero(t, renderCount)
	assert.Nil(t, res.Data)
	assert.True(t, res.Stale)
	assert.ErrorIs(t, res.Err, boom)
}

func TestRun_CacheReadErrorDegradesToNetworkOnly(t *testing.T) {
	ctx := context.Background()

	src := Source[[]string]{
		ReadCache: func(ctx context.Context) ([]string, bool, error) {
			return nil, false, common.ErrStoreUnavailable
		},
		Fetch: func(ctx context.Context) ([]string, error) {
			return []string{"fresh"}, nil
		},
	}

	var renders []render
	res := Run(ctx, testLogger(), src, func(data []string, stale bool) {
		renders = append(renders, render{data: data, stale: stale})
	})

	// The sync completes on the network result alone, without throwing.
	require.Len(t, renders, 1)
	assert.False(t, renders[0].stale)
	assert.Equal(t, []string{"fresh"}, res.Data)
	assert.False(t, res.Stale)
	assert.NoError(t, res.Err)
}

func TestRun_EmptyFetchOverwritesCache(t *testing.T) {
	ctx := context.Background()

	var written [][]string
	src := Source[[]string]{
		ReadCache: func(ctx context.Context) ([]string, bool, error) {
			return []string{"left", "over"}, true, nil
		},
		Fetch: func(ctx context.Context) ([]string, error) {
			return []string{}, nil
		},
		WriteCache: func(ctx context.Context, data []string) error {
			written = append(written, data)
			return nil
		},
	}

	res := Run[[]string](ctx, testLogger(), src, nil)

	// Cached leftovers are not artificially preserved.
	assert.Empty(t, res.Data)
	assert.False(t, res.Stale)
	require.Len(t, written, 1)
	assert.Empty(t, written[0])
}

func TestRun_WriteBackFailureDoesNotFailSync(t *testing.T) {
	ctx := context.Background()

	src := Source[[]string]{
		Fetch: func(ctx context.Context) ([]string, error) {
			return []string{"fresh"}, nil
		},
		WriteCache: func(ctx context.Context, data []string) error {
			return errors.New("disk full")
		},
	}

	res := Run[[]string](ctx, testLogger(), src, nil)
	assert.Equal(t, []string{"fresh"}, res.Data)
	assert.False(t, res.Stale)
	assert.NoError(t, res.Err)
}
