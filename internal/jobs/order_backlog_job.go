package jobs

import (
	"context"

	"courierdispatch/internal/core/application/usecases/queries"
	"courierdispatch/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type BacklogReader interface {
	Handle(ctx context.Context, query queries.GetOrderBacklogQuery) (queries.GetOrderBacklogQueryResponse, error)
}

// OrderBacklogJob periodically publishes the number of unclaimed and in-flight
// orders as Prometheus gauges. It only reads.
type OrderBacklogJob struct {
	reader   BacklogReader
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

// NewOrderBacklogJob creates the job. schedule is a six-field cron spec with seconds.
func NewOrderBacklogJob(reader BacklogReader, schedule string, logger *zap.Logger) *OrderBacklogJob {
	return &OrderBacklogJob{
		reader:   reader,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With(zap.String("component", "order_backlog_job")),
	}
}

func (j *OrderBacklogJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("order backlog job started", zap.String("schedule", j.schedule))
	return nil
}

// Run refreshes the gauges once.
func (j *OrderBacklogJob) Run(ctx context.Context) {
	backlog, err := j.reader.Handle(ctx, queries.NewGetOrderBacklogQuery())
	if err != nil {
		j.logger.Error("order backlog job failed", zap.Error(err))
		return
	}

	metrics.UnclaimedOrders.Set(float64(backlog.Unclaimed))
	metrics.InFlightOrders.Set(float64(backlog.InFlight))
}

// Stop waits for a running refresh to finish.
func (j *OrderBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("order backlog job stopped")
}
