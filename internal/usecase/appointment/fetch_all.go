package appointment

import (
	"context"

	"go.uber.org/zap"
)

// FetchAll replaces the list with the backend's. On failure the previous
// list is kept and the error is returned.
func (e *Engine) FetchAll(ctx context.Context) error {
	_, err := e.fetch(ctx)
	return err
}

// Refresh drops the cached customers before refetching so renamed or
// re-registered customers show their current details.
func (e *Engine) Refresh(ctx context.Context) error {
	e.cache.Reset()
	return e.FetchAll(ctx)
}

// fetch reports whether the response was applied.
func (e *Engine) fetch(ctx context.Context) (bool, error) {
	e.mu.Lock()
	token := e.dispatch()
	e.mu.Unlock()

	list, err := e.repo.List(ctx)
	if err != nil {
		e.log.Error("fetch appointments failed", zap.Uint64("seq", token), zap.Error(err))
		return false, err
	}

	rows := e.cache.Hydrate(ctx, list)

	e.mu.Lock()
	defer e.mu.Unlock()

	if token != e.seq {
		e.log.Debug("discarding stale appointment list",
			zap.Uint64("seq", token),
			zap.Uint64("latest", e.seq),
		)
		return false, nil
	}

	e.rows = rows
	e.loaded = true
	return true, nil
}

// EnsureLoaded fetches the list when no fetch has landed yet, so a failed
// startup fetch heals on the next request. Concurrent callers share one fetch.
func (e *Engine) EnsureLoaded(ctx context.Context) error {
	if e.Loaded() {
		return nil
	}
	_, err, _ := e.loads.Do("list", func() (any, error) {
		if e.Loaded() {
			return nil, nil
		}
		return nil, e.FetchAll(context.WithoutCancel(ctx))
	})
	return err
}

// Loaded reports whether a fetch has landed at least once.
func (e *Engine) Loaded() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loaded
}
