package sensors

import (
	"context"
	"fmt"

	"github.com/i474232898/sensor-stats/internal/dataset"
	"github.com/i474232898/sensor-stats/internal/logging"
	"github.com/i474232898/sensor-stats/internal/stats"
)

// Service answers stats queries over the loaded table, memoizing results.
type Service struct {
	loader TableLoader
	cache  ResultCache
	logger *logging.Logger
}

// NewService creates a new Service.
func NewService(loader TableLoader, cache ResultCache, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{
		loader: loader,
		cache:  cache,
		logger: logger.With("component", "sensors"),
	}
}

// Warm loads the dataset so the first request does not pay for it.
func (s *Service) Warm(ctx context.Context) error {
	if _, err := s.loader.Load(ctx); err != nil {
		return fmt.Errorf("warm dataset: %w", err)
	}
	return nil
}

// Stats returns the aggregates for p and whether they came from the cache.
// Load errors, including *dataset.SchemaError, are returned as is.
func (s *Service) Stats(ctx context.Context, p Params) (stats.Result, bool, error) {
	table, err := s.loader.Load(ctx)
	if err != nil {
		return stats.Result{}, false, err
	}

	criteria := stats.NewCriteria(p.Location, p.Sensor, p.StartDate, p.EndDate)
	key := criteria.Key()

	res, hit := s.cache.GetOrCompute(key, func() stats.Result {
		return stats.Query(table, criteria)
	})

	s.logger.Debug("stats served",
		"key", key.String(),
		"count", res.Count,
		"hit", hit,
	)
	return res, hit, nil
}

// Readings returns the number of readings in the loaded table, or zero if
// the dataset could not be loaded.
func (s *Service) Readings(ctx context.Context) int {
	table, err := s.loader.Load(ctx)
	if err != nil {
		return 0
	}
	return table.Len()
}

// CachedResults returns the number of memoized results.
func (s *Service) CachedResults() int {
	return s.cache.Len()
}

var _ TableLoader = (*dataset.Loader)(nil)
