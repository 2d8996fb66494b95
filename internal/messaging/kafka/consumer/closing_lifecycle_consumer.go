package consumer

import (
	"context"
	"encoding/json"

	"github.com/vendas-sistemas/perroni-sub000/internal/events"
	"github.com/vendas-sistemas/perroni-sub000/internal/report"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeClosingLifecycle drops cached report data whenever a weekly closing
// is closed or paid, so dashboards pick up the new totals on the next read.
func ConsumeClosingLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.closing_lifecycle")
	log.Info("closing lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("closing lifecycle consumer stopped")
				return
			}
			log.Error("fetch closing lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.ClosingLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode closing lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := rdb.Del(ctx, report.DashboardCacheKey).Err(); err != nil {
			log.Error("invalidate dashboard cache failed",
				zap.String("closing_id", event.ClosingID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit closing lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("dashboard cache invalidated",
			zap.String("event_type", event.EventType),
			zap.String("closing_id", event.ClosingID),
			zap.String("worker_id", event.WorkerID),
		)
	}
}
