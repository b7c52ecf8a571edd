package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/i474232898/sensor-stats/internal/common"
)

// Criteria are the optional filters of one query. An empty string or a nil
// time means the dimension is unconstrained.
type Criteria struct {
	Location string // normalized
	Sensor   string // normalized
	Start    *time.Time
	End      *time.Time
}

// NewCriteria builds Criteria from raw request values. Blank values are
// ignored, and so is a date that does not parse.
func NewCriteria(location, sensor, startDate, endDate string) Criteria {
	c := Criteria{
		Location: common.Normalize(location),
		Sensor:   common.Normalize(sensor),
	}
	if ts, ok := common.ParseInstant(startDate); ok {
		c.Start = &ts
	}
	if ts, ok := common.ParseInstant(endDate); ok {
		c.End = &ts
	}
	return c
}

// Key is the canonical, comparable form of Criteria used for memoization.
// An empty field means absent; present fields are never empty.
type Key struct {
	Location string
	Sensor   string
	Start    string
	End      string
}

// Key returns the cache key of c. Criteria that filter the same readings
// produce equal keys regardless of how the request spelled them.
func (c Criteria) Key() Key {
	k := Key{
		Location: c.Location,
		Sensor:   c.Sensor,
	}
	if c.Start != nil {
		k.Start = common.CanonicalInstant(*c.Start)
	}
	if c.End != nil {
		k.End = common.CanonicalInstant(*c.End)
	}
	return k
}

// String returns a form of k that is unique per key.
func (k Key) String() string {
	var b strings.Builder
	for i, f := range []string{k.Location, k.Sensor, k.Start, k.End} {
		if i > 0 {
			b.WriteByte('|')
		}
		if f == "" {
			b.WriteByte('-')
			continue
		}
		fmt.Fprintf(&b, "%q", f)
	}
	return b.String()
}

// Result holds the aggregates over the matching readings. Avg, Min and Max
// are nil when Count is zero and serialize as null.
type Result struct {
	Count int      `json:"count"`
	Avg   *float64 `json:"avg"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
}
