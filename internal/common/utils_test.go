package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "building a", Normalize("  Building A\t"))
	assert.Equal(t, "temp", Normalize("TEMP"))
	assert.Equal(t, "", Normalize("   "))
}

func TestParseInstant(t *testing.T) {
	jan1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	noon := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"date only", "2024-01-01", jan1},
		{"rfc3339 zulu", "2024-01-01T12:00:00Z", noon},
		{"lower case zulu", "2024-01-01t12:00:00z", noon},
		{"offset with colon", "2024-01-01T14:00:00+02:00", noon},
		{"offset without colon", "2024-01-01T07:00:00-0500", noon},
		{"naive is utc", "2024-01-01T12:00:00", noon},
		{"space separator", "2024-01-01 12:00:00", noon},
		{"space separator with zone", "2024-01-01 13:00:00+01:00", noon},
		{"minutes only", "2024-01-01T12:00", noon},
		{"fractional seconds", "2024-01-01T12:00:00.500Z", noon.Add(500 * time.Millisecond)},
		{"surrounding whitespace", "  2024-01-01  ", jan1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInstant(tt.input)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseInstantRejects(t *testing.T) {
	for _, s := range []string{"", "   ", "not-a-date", "2024-13-01", "01/02/2024", "yesterday"} {
		_, ok := ParseInstant(s)
		assert.False(t, ok, "expected %q to be rejected", s)
	}
}

func TestCanonicalInstant(t *testing.T) {
	a, ok := ParseInstant("2024-01-01T12:00:00Z")
	require.True(t, ok)
	b, ok := ParseInstant("2024-01-01 14:00:00+02:00")
	require.True(t, ok)

	assert.Equal(t, CanonicalInstant(a), CanonicalInstant(b))
	assert.Equal(t, "2024-01-01T12:00:00Z", CanonicalInstant(a))
}
