package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/i474232898/sensor-stats/internal/dataset"
)

// Query computes the aggregates of the readings in t that satisfy every
// present criterion. The time window is inclusive on both ends.
func Query(t *dataset.Table, c Criteria) Result {
	var values []float64
	t.Each(func(r dataset.Reading) {
		if c.matches(r) {
			values = append(values, r.Value)
		}
	})
	return aggregate(values)
}

func (c Criteria) matches(r dataset.Reading) bool {
	if c.Location != "" && r.LocationNorm != c.Location {
		return false
	}
	if c.Sensor != "" && r.SensorNorm != c.Sensor {
		return false
	}
	if c.Start != nil && r.Timestamp.Before(*c.Start) {
		return false
	}
	if c.End != nil && r.Timestamp.After(*c.End) {
		return false
	}
	return true
}

func aggregate(values []float64) Result {
	if len(values) == 0 {
		return Result{}
	}

	avg := stat.Mean(values, nil)
	lo := floats.Min(values)
	hi := floats.Max(values)

	return Result{
		Count: len(values),
		Avg:   &avg,
		Min:   &lo,
		Max:   &hi,
	}
}
