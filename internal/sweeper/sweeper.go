package sweeper

import (
	"context"
	"fmt"
	"time"

	"ordertrack/internal/domain"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type OrderListRepository interface {
	ReadAll(ctx context.Context) ([]domain.Order, error)
	WriteAll(ctx context.Context, orders []domain.Order) error
}

// Sweeper periodically deletes delivered orders whose deliveredAt is
// older than the retention window. It shares the order list with the
// lifecycle engine under the same last-write-wins semantics; a sweep
// racing a lifecycle write can lose either update, which is accepted.
type Sweeper struct {
	orders    OrderListRepository
	retention time.Duration
	interval  time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
	now       func() time.Time
}

// New builds a sweeper. now may be nil, defaulting to time.Now.
func New(orders OrderListRepository, retentionDays int, interval time.Duration, logger *zap.Logger, now func() time.Time) *Sweeper {
	if now == nil {
		now = time.Now
	}
	return &Sweeper{
		orders:    orders,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		interval:  interval,
		// SkipIfStillRunning guards against overlapping sweeps.
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger.With(zap.String("component", "retention_sweeper")),
		now:    now,
	}
}

// Start runs one sweep immediately, then schedules the periodic job.
func (s *Sweeper) Start() error {
	s.run()

	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", s.interval), s.run); err != nil {
		return fmt.Errorf("scheduling retention sweep: %w", err)
	}

	s.cron.Start()
	s.logger.Info("retention sweeper started",
		zap.Duration("interval", s.interval),
		zap.Duration("retention", s.retention),
	)
	return nil
}

// Stop halts the schedule; an in-flight sweep finishes on its own.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	s.logger.Info("retention sweeper stopped")
}

// run wraps Sweep for the scheduler: store failures are logged and the
// next tick retries from scratch.
func (s *Sweeper) run() {
	deleted, err := s.Sweep(context.Background())
	if err != nil {
		s.logger.Error("retention sweep failed", zap.Error(err))
		return
	}
	if deleted == 0 {
		s.logger.Debug("retention sweep found nothing to delete")
	}
}

// Sweep scans the whole list once and removes expired delivered orders
// with a single whole-list write. Delivered orders missing a deliveredAt
// timestamp are data anomalies and are always kept. Returns how many
// orders were deleted.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	orders, err := s.orders.ReadAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(orders) == 0 {
		return 0, nil
	}

	cutoff := s.now().Add(-s.retention)

	toKeep := make([]domain.Order, 0, len(orders))
	var toDelete []domain.Order

	for _, order := range orders {
		if order.State != domain.StateDelivered {
			toKeep = append(toKeep, order)
			continue
		}
		if order.DeliveredAt == nil {
			s.logger.Warn("delivered order missing deliveredAt timestamp, keeping",
				zap.String("orderId", order.OrderID),
			)
			toKeep = append(toKeep, order)
			continue
		}
		if order.DeliveredAt.Before(cutoff) {
			toDelete = append(toDelete, order)
		} else {
			toKeep = append(toKeep, order)
		}
	}

	if len(toDelete) == 0 {
		return 0, nil
	}

	if err := s.orders.WriteAll(ctx, toKeep); err != nil {
		return 0, err
	}

	for _, order := range toDelete {
		s.logger.Info("deleted expired delivered order",
			zap.String("orderId", order.OrderID),
			zap.String("orderName", order.OrderName),
			zap.Timep("deliveredAt", order.DeliveredAt),
		)
	}
	s.logger.Info("retention sweep completed",
		zap.Int("deleted", len(toDelete)),
		zap.Int("kept", len(toKeep)),
	)

	return len(toDelete), nil
}
