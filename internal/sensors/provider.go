package sensors

import (
	"context"

	"github.com/i474232898/sensor-stats/internal/dataset"
	"github.com/i474232898/sensor-stats/internal/stats"
)

// TableLoader supplies the normalized table, loading it at most once.
type TableLoader interface {
	Load(ctx context.Context) (*dataset.Table, error)
}

// ResultCache memoizes query results by canonical key.
type ResultCache interface {
	GetOrCompute(key stats.Key, compute func() stats.Result) (stats.Result, bool)
	Len() int
}
