package dataset

import (
	"fmt"
	"strings"
	"time"
)

// Required columns of the source table. Other columns are ignored.
const (
	ColumnTimestamp = "timestamp"
	ColumnLocation  = "location"
	ColumnSensor    = "sensor"
	ColumnValue     = "value"
)

var requiredColumns = []string{ColumnTimestamp, ColumnLocation, ColumnSensor, ColumnValue}

// Reading is one valid sensor observation.
type Reading struct {
	Timestamp time.Time // always UTC

	// Location and Sensor keep the source text; the Norm fields are the
	// trimmed, lower-cased forms used for matching.
	Location     string
	Sensor       string
	LocationNorm string
	SensorNorm   string

	Value float64
}

// Table is the normalized, read-only set of readings. It is never modified
// after Parse returns.
type Table struct {
	readings []Reading
	rows     int
}

// Len returns the number of valid readings.
func (t *Table) Len() int {
	return len(t.readings)
}

// At returns the i-th reading in ingestion order.
func (t *Table) At(i int) Reading {
	return t.readings[i]
}

// Each calls fn for every reading in ingestion order.
func (t *Table) Each(fn func(Reading)) {
	for _, r := range t.readings {
		fn(r)
	}
}

// Rows returns the number of data rows read from the source.
func (t *Table) Rows() int {
	return t.rows
}

// Dropped returns the number of rows excluded for a bad timestamp or value.
func (t *Table) Dropped() int {
	return t.rows - len(t.readings)
}

// SchemaError reports required columns missing from the source header.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset missing required columns: %s", strings.Join(e.Missing, ", "))
}
