// Package sync implements the cache-then-network protocol every
// data-consuming view follows: read the cached snapshot and render it
// immediately, then fetch the authoritative copy, re-render, and persist it
// back for the next cold start.
//
// The protocol is one-shot. There is no polling and no automatic retry; a
// new attempt only happens when the consuming view runs again.
package sync

import (
	"context"

	"github.com/rosebudapp/rosebud/internal/logging"
)

// Source parameterizes one data need with its three callbacks.
//
// ReadCache returns the cached value and whether one exists; a read error is
// treated exactly like a miss so an unavailable store degrades the view to
// network-only instead of failing it. WriteCache persists the fetched value;
// it may be nil for network-only flows.
type Source[T any] struct {
	ReadCache  func(ctx context.Context) (T, bool, error)
	Fetch      func(ctx context.Context) (T, error)
	WriteCache func(ctx context.Context, data T) error
}

// Result is the terminal state of one sync attempt.
//
// Stale reports that Data is the cached snapshot (or zero) because the fetch
// failed; Err then carries the fetch error. When Stale is false, Data is the
// authoritative network value and has been written back to the cache.
type Result[T any] struct {
	Data  T
	Stale bool
	Err   error
}

// Run executes one sync attempt. The render callback is invoked with the
// cached value (stale=true) strictly before the fetch result is observed,
// and again with the fetched value (stale=false) on success; it may be nil.
//
// The fetched value fully replaces the cached one. There is no field-level
// merge: on success the network copy is the new truth even when it is empty.
// Cache write-back failures are logged and never fail the attempt.
func Run[T any](ctx context.Context, log logging.Logger, src Source[T], render func(data T, stale bool)) Result[T] {
	var cached T

	if src.ReadCache != nil {
		data, ok, err := src.ReadCache(ctx)
		if err != nil {
			log.Warn(ctx, "cache read failed, continuing network-only", "error", err)
		} else if ok {
			cached = data
			if render != nil {
				render(cached, true)
			}
		}
	}

	fetched, err := src.Fetch(ctx)
	if err != nil {
		log.Warn(ctx, "fetch failed, keeping cached state", "error", err)
		return Result[T]{Data: cached, Stale: true, Err: err}
	}

	if render != nil {
		render(fetched, false)
	}

	if src.WriteCache != nil {
		if err := src.WriteCache(ctx, fetched); err != nil {
			// The view already has fresh data; a failed write-back only
			// costs the next cold start.
			log.Warn(ctx, "cache write-back failed", "error", err)
		}
	}

	return Result[T]{Data: fetched, Stale: false}
}
