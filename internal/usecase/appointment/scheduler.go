package appointment

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartReconciler refreshes the list on the given cron spec (for example
// "@every 1m"). The returned cron must be stopped on shutdown.
func (e *Engine) StartReconciler(spec string, timeout time.Duration) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := e.FetchAll(ctx); err != nil {
			e.log.Warn("scheduled refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	e.log.Info("appointment reconciler started", zap.String("schedule", spec))
	return c, nil
}
