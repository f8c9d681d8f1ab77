package corpus

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/productindex/internal/metrics"
)

// Settle defaults.
const (
	DefaultSettleDelay  = 20 * time.Second
	DefaultPollInterval = 2 * time.Second
	DefaultPollMaxWait  = 2 * time.Minute

	maxPollInterval = 15 * time.Second
)

// FixedDelay sleeps a fixed duration after each delete.
type FixedDelay struct {
	delay  time.Duration
	logger *zap.Logger
}

// NewFixedDelay creates a FixedDelay settler.
func NewFixedDelay(delay time.Duration, logger *zap.Logger) *FixedDelay {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FixedDelay{delay: delay, logger: logger}
}

// Settle blocks for the configured delay or until ctx is done.
func (f *FixedDelay) Settle(ctx context.Context, _, key string) error {
	if f.delay <= 0 {
		return nil
	}
	start := time.Now()
	defer func() {
		metrics.SettleWaitSeconds.WithLabelValues("fixed").Observe(time.Since(start).Seconds())
	}()

	f.logger.Info("waiting for corpus deletion to settle",
		zap.String("corpus_key", key),
		zap.Duration("delay", f.delay),
	)

	t := time.NewTimer(f.delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PollUntilAbsent polls the listing until the deleted key is gone.
// The interval doubles after each miss, capped at 15s.
type PollUntilAbsent struct {
	lister   Lister
	interval time.Duration
	maxWait  time.Duration
	logger   *zap.Logger
}

// NewPollUntilAbsent creates a polling settler. Non-positive durations use the defaults.
func NewPollUntilAbsent(lister Lister, interval, maxWait time.Duration, logger *zap.Logger) *PollUntilAbsent {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if maxWait <= 0 {
		maxWait = DefaultPollMaxWait
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PollUntilAbsent{lister: lister, interval: interval, maxWait: maxWait, logger: logger}
}

// Settle returns once no corpus named name carries key, or fails after maxWait.
func (p *PollUntilAbsent) Settle(ctx context.Context, name, key string) error {
	start := time.Now()
	defer func() {
		metrics.SettleWaitSeconds.WithLabelValues("poll").Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, p.maxWait)
	defer cancel()

	interval := p.interval
	for attempt := 1; ; attempt++ {
		present, err := p.present(ctx, name, key)
		if err != nil {
			return fmt.Errorf("poll corpus %s: %w", key, err)
		}
		if !present {
			p.logger.Debug("corpus deletion settled",
				zap.String("corpus_key", key),
				zap.Int("attempts", attempt),
			)
			return nil
		}

		t := time.NewTimer(interval)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return fmt.Errorf("corpus %s still listed after %s: %w", key, time.Since(start).Round(time.Millisecond), ctx.Err())
		}

		interval *= 2
		if interval > maxPollInterval {
			interval = maxPollInterval
		}
	}
}

func (p *PollUntilAbsent) present(ctx context.Context, name, key string) (bool, error) {
	all, err := listAll(ctx, p.lister, name)
	if err != nil {
		return false, err
	}
	for _, c := range all {
		if c.Key == key {
			return true, nil
		}
	}
	return false, nil
}
