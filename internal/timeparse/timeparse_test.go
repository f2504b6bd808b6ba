package timeparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalize_DayFirstString(t *testing.T) {
	t.Parallel()

	got, err := Normalize("01/11/2025 08:01:55")
	require.NoError(t, err)

	// Day before month: 1 November, not January 11.
	want := time.Date(2025, time.November, 1, 8, 1, 55, 0, time.UTC).Unix()
	require.Equal(t, want, got)
}

func TestNormalize_DateOnlyString(t *testing.T) {
	t.Parallel()

	got, err := Normalize("02/11/2025")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.November, 2, 0, 0, 0, 0, time.UTC).Unix(), got)
}

func TestNormalize_ISOStringFallsThrough(t *testing.T) {
	t.Parallel()

	got, err := Normalize("2025-11-01 08:01:55")
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.November, 1, 8, 1, 55, 0, time.UTC).Unix(), got)
}

func TestNormalize_IntegerPassthrough(t *testing.T) {
	t.Parallel()

	// JSON numbers arrive as float64.
	got, err := Normalize(float64(1700000000))
	require.NoError(t, err)
	require.Equal(t, int64(1700000000), got)

	got, err = Normalize(int64(42))
	require.NoError(t, err)
	require.Equal(t, int64(42), got)
}

func TestNormalize_AbsentDefaultsToNow(t *testing.T) {
	t.Parallel()

	before := time.Now().UTC().Unix()
	got, err := Normalize(nil)
	require.NoError(t, err)
	after := time.Now().UTC().Unix()

	require.GreaterOrEqual(t, got, before)
	require.LessOrEqual(t, got, after)
}

func TestNormalize_UnsupportedShapes(t *testing.T) {
	t.Parallel()

	_, err := Normalize("yesterday at noon")
	require.ErrorIs(t, err, ErrUnparseableTimestamp)

	_, err = Normalize(true)
	require.ErrorIs(t, err, ErrUnparseableTimestamp)

	_, err = Normalize(map[string]any{"epoch": 1})
	require.ErrorIs(t, err, ErrUnparseableTimestamp)
}
