package sale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeFromPresetLast7(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	r, err := RangeFromPreset(PresetLast7, now)
	require.NoError(t, err)
	assert.Equal(t, DateRange{From: "2024-06-09", To: "2024-06-15"}, r)
}

func TestRangeFromPresetMonths(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	r, err := RangeFromPreset(PresetThisMonth, now)
	require.NoError(t, err)
	assert.Equal(t, DateRange{From: "2024-06-01", To: "2024-06-15"}, r)

	r, err = RangeFromPreset(PresetLastMonth, now)
	require.NoError(t, err)
	assert.Equal(t, DateRange{From: "2024-05-01", To: "2024-05-31"}, r)

	r, err = RangeFromPreset(PresetLast3Months, now)
	require.NoError(t, err)
	assert.Equal(t, DateRange{From: "2024-03-15", To: "2024-06-15"}, r)

	r, err = RangeFromPreset(PresetLast12Months, now)
	require.NoError(t, err)
	assert.Equal(t, DateRange{From: "2023-06-15", To: "2024-06-15"}, r)
}

func TestRangeFromPresetUnknown(t *testing.T) {
	_, err := RangeFromPreset("lastCentury", time.Now())
	assert.Error(t, err)
}

func TestFormatPeriodSameDay(t *testing.T) {
	got := FormatPeriod("2024-06-15", "2024-06-15", "", "")
	assert.Equal(t, "Jun 15, 2024", got)
	assert.NotContains(t, got, "-")
}

func TestFormatPeriodShortSpan(t *testing.T) {
	assert.Equal(t, "2 days", FormatPeriod("2024-06-14", "2024-06-15", "", ""))
	assert.Equal(t, "7 days", FormatPeriod("2024-06-09", "2024-06-15", "", ""))
}

func TestFormatPeriodCalendarMonth(t *testing.T) {
	assert.Equal(t, "June 2024", FormatPeriod("2024-06-01", "2024-06-30", "", ""))
	assert.Equal(t, "February 2024", FormatPeriod("2024-02-01", "2024-02-29", "", ""))
}

func TestFormatPeriodWithinMonth(t *testing.T) {
	assert.Equal(t, "Jun 2 - Jun 20, 2024", FormatPeriod("2024-06-02", "2024-06-20", "", ""))
}

func TestFormatPeriodLongRange(t *testing.T) {
	assert.Equal(t, "Jan 15, 2024 - Mar 4, 2025", FormatPeriod("2024-01-15", "2025-03-04", "", ""))
}

func TestFormatPeriodOpenEnds(t *testing.T) {
	assert.Equal(t, "Since Jan 15, 2024", FormatPeriod("2024-01-15", "", "", ""))
	assert.Equal(t, "Until Jan 15, 2024", FormatPeriod("", "2024-01-15", "", ""))
}

func TestFormatPeriodFallbacks(t *testing.T) {
	assert.Equal(t, "Jan 1, 2023 - Dec 1, 2024", FormatPeriod("", "", "2023-01-01", "2024-12-01"))
	assert.Equal(t, "All time", FormatPeriod("", "", "", ""))
}

func TestDatasetBounds(t *testing.T) {
	assert.Equal(t, DateRange{}, DatasetBounds(nil))

	at := func(y int, m time.Month, d int) Enriched {
		return Enriched{Sale: Sale{SaleDate: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}}
	}
	sales := []Enriched{at(2024, 5, 1), at(2024, 3, 10), at(2024, 3, 20)}
	assert.Equal(t, DateRange{From: "2024-03-10", To: "2024-05-01"}, DatasetBounds(sales))
}

func TestFormatPeriodNeverThrows(t *testing.T) {
	assert.Equal(t, "Selected period", FormatPeriod("not-a-date", "2024-06-15", "", ""))
	assert.Equal(t, "Selected period", FormatPeriod("2024-06-15", "garbage", "", ""))
	assert.Equal(t, "Selected period", FormatPeriod("junk", "", "", ""))
}
