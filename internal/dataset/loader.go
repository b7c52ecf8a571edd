package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/i474232898/sensor-stats/internal/common"
	"github.com/i474232898/sensor-stats/internal/logging"
)

// OpenFunc opens the raw tabular source.
type OpenFunc func() (io.ReadCloser, error)

// Loader reads the source once and hands out the same Table afterwards.
type Loader struct {
	name   string
	open   OpenFunc
	logger *logging.Logger

	mu    sync.Mutex
	done  bool
	table *Table
	err   error
}

// NewLoader creates a Loader reading from open. name only appears in logs.
func NewLoader(name string, open OpenFunc, logger *logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Loader{
		name:   name,
		open:   open,
		logger: logger.With("component", "dataset"),
	}
}

// NewFileLoader creates a Loader for a CSV file on disk.
func NewFileLoader(path string, logger *logging.Logger) *Loader {
	return NewLoader(path, func() (io.ReadCloser, error) {
		return os.Open(path)
	}, logger)
}

// Load returns the table, reading the source on the first successful open.
// Concurrent first callers wait for that single read. Once the source has
// been opened the outcome is final: a *SchemaError or malformed CSV is
// returned on every later call. A failed open is not remembered.
func (l *Loader) Load(ctx context.Context) (*Table, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.done {
		return l.table, l.err
	}
	// A caller whose context is already gone does not consume the one load.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rc, err := l.open()
	if err != nil {
		l.logger.Error("failed to open dataset", "source", l.name, "error", err)
		return nil, fmt.Errorf("open dataset %s: %w", l.name, err)
	}
	defer rc.Close()

	l.table, l.err = l.read(rc)
	l.done = true
	return l.table, l.err
}

func (l *Loader) read(r io.Reader) (*Table, error) {
	table, err := Parse(r)
	if err != nil {
		l.logger.Error("failed to load dataset", "source", l.name, "error", err)
		return nil, err
	}

	l.logger.Info("dataset loaded",
		"source", l.name,
		"rows", table.Rows(),
		"readings", table.Len(),
		"dropped", table.Dropped(),
	)
	if table.Dropped() > 0 {
		l.logger.Warn("rows with unparseable timestamp or value were excluded",
			"source", l.name,
			"dropped", table.Dropped(),
		)
	}
	return table, nil
}

// Parse reads a CSV with a header row into a Table. Rows whose timestamp
// cannot be parsed, or whose value is not a finite number, are excluded.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &SchemaError{Missing: append([]string(nil), requiredColumns...)}
		}
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	table := &Table{}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset row %d: %w", table.rows+1, err)
		}
		table.rows++

		reading, ok := parseRecord(record, idx)
		if !ok {
			continue
		}
		table.readings = append(table.readings, reading)
	}
	return table, nil
}

type columns struct {
	timestamp, location, sensor, value int
}

func columnIndex(header []string) (columns, error) {
	pos := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.TrimSpace(name)
		if _, seen := pos[name]; !seen {
			pos[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := pos[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return columns{}, &SchemaError{Missing: missing}
	}

	return columns{
		timestamp: pos[ColumnTimestamp],
		location:  pos[ColumnLocation],
		sensor:    pos[ColumnSensor],
		value:     pos[ColumnValue],
	}, nil
}

func parseRecord(record []string, idx columns) (Reading, bool) {
	ts, ok := common.ParseInstant(field(record, idx.timestamp))
	if !ok {
		return Reading{}, false
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(field(record, idx.value)), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return Reading{}, false
	}

	// Detach from the row buffer so the table does not pin whole lines.
	location := strings.Clone(field(record, idx.location))
	sensor := strings.Clone(field(record, idx.sensor))

	return Reading{
		Timestamp:    ts,
		Location:     location,
		Sensor:       sensor,
		LocationNorm: common.Normalize(location),
		SensorNorm:   common.Normalize(sensor),
		Value:        value,
	}, true
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
