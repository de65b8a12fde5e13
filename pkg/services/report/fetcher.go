package report

import (
	"context"
	"sync"

	"github.com/de-tools/ads-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const defaultMaxWorkers = 5

// Task is one independent report fetch. Fetch must be idempotent and free of
// side effects beyond querying.
type Task struct {
	Label string
	Fetch func(ctx context.Context) ([]domain.ReportRow, error)
}

// Fetcher runs independent report fetches across a bounded worker pool. One
// task's failure never cancels or blocks the others; each outcome is
// recorded once, without retry.
type Fetcher struct {
	maxWorkers int
}

func NewFetcher(maxWorkers int) *Fetcher {
	if maxWorkers <= 0 {
		maxWorkers = defaultMaxWorkers
	}
	return &Fetcher{maxWorkers: maxWorkers}
}

// Run executes all tasks and returns one FetchResult per task label.
// Results are collected as tasks complete; the map is only read after every
// worker has finished.
func (f *Fetcher) Run(ctx context.Context, tasks []Task) map[string]domain.FetchResult {
	logger := zerolog.Ctx(ctx)

	pending := make(chan Task)
	completed := make(chan domain.FetchResult)

	var wg sync.WaitGroup
	for i := 0; i < f.maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range pending {
				completed <- f.runTask(ctx, logger, task)
			}
		}()
	}

	go func() {
		for _, task := range tasks {
			pending <- task
		}
		close(pending)
		wg.Wait()
		close(completed)
	}()

	results := make(map[string]domain.FetchResult, len(tasks))
	for result := range completed {
		results[result.Label] = result
	}
	return results
}

func (f *Fetcher) runTask(ctx context.Context, logger *zerolog.Logger, task Task) domain.FetchResult {
	logger.Info().Str("report", task.Label).Msg("starting report fetch")

	rows, err := task.Fetch(ctx)
	if err != nil {
		logger.Error().Str("report", task.Label).Err(err).Msg("report fetch failed")
		return domain.FetchResult{Label: task.Label, Rows: []domain.ReportRow{}, Err: err}
	}

	logger.Info().Str("report", task.Label).Int("rows", len(rows)).Msg("finished report fetch")
	return domain.FetchResult{Label: task.Label, Rows: rows}
}
