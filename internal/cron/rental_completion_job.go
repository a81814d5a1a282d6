package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/angelmondragon/rentalhub-backend/pkg/logger"
	"github.com/angelmondragon/rentalhub-backend/pkg/metrics"
	"github.com/angelmondragon/rentalhub-backend/pkg/types"
)

// RentalCompletionJobName labels the job in logs, metrics and the registry.
const RentalCompletionJobName = "rental-completion"

const defaultCompletionBatch = 200

type completionStore interface {
	ListEndedConfirmedIDs(ctx context.Context, today types.Date, limit int) ([]uuid.UUID, error)
	MarkCompleted(ctx context.Context, id uuid.UUID) (bool, error)
}

// RentalCompletionJobParams configure the completion sweep.
type RentalCompletionJobParams struct {
	Logger    *logger.Logger
	Store     completionStore
	Location  *time.Location
	Metrics   *metrics.CronJobMetrics
	BatchSize int
}

// NewRentalCompletionJob builds the job that moves confirmed rentals whose
// end date has passed to completed.
func NewRentalCompletionJob(params RentalCompletionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("rental store required")
	}
	loc := params.Location
	if loc == nil {
		loc = time.UTC
	}
	batch := params.BatchSize
	if batch <= 0 {
		batch = defaultCompletionBatch
	}
	return &rentalCompletionJob{
		logg:    params.Logger,
		store:   params.Store,
		loc:     loc,
		metrics: params.Metrics,
		batch:   batch,
		now:     time.Now,
	}, nil
}

type rentalCompletionJob struct {
	logg    *logger.Logger
	store   completionStore
	loc     *time.Location
	metrics *metrics.CronJobMetrics
	batch   int
	now     func() time.Time
}

func (j *rentalCompletionJob) Name() string { return RentalCompletionJobName }

func (j *rentalCompletionJob) Run(ctx context.Context) error {
	today := types.Today(j.now(), j.loc)
	ctx = j.logg.WithField(ctx, "today", today.String())

	var errs error
	completed := 0
	for {
		ids, err := j.store.ListEndedConfirmedIDs(ctx, today, j.batch)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("list ended rentals: %w", err))
			break
		}
		if len(ids) == 0 {
			break
		}
		progressed := 0
		for _, id := range ids {
			ok, err := j.store.MarkCompleted(ctx, id)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("complete rental %s: %w", id, err))
				continue
			}
			progressed++
			if ok {
				completed++
			}
		}
		// rows that failed stay confirmed and would be listed again
		if len(ids) < j.batch || progressed == 0 {
			break
		}
		if ctx.Err() != nil {
			errs = multierr.Append(errs, ctx.Err())
			break
		}
	}

	j.metrics.AddItems(j.Name(), completed)
	j.logg.Info(j.logg.WithField(ctx, "completed", completed), "rental completion sweep finished")
	return errs
}
