package offer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Blane-SchedulingService/internal/domain"
)

func wantRange(t *testing.T, start, end string) domain.DateRange {
	t.Helper()
	r, err := domain.ParseDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestDecodeRanges_CanonicalFlat(t *testing.T) {
	raw := []byte(`[
		{"start": "2026-06-01", "end": "2026-06-10"},
		{"start": "2026-07-01", "end": "2026-07-05"}
	]`)

	ranges, err := decodeRanges(raw)
	require.NoError(t, err)

	require.Len(t, ranges, 2)
	assert.Equal(t, wantRange(t, "2026-06-01", "2026-06-10"), ranges[0])
	assert.Equal(t, wantRange(t, "2026-07-01", "2026-07-05"), ranges[1])
}

func TestDecodeRanges_LegacyNestedObject(t *testing.T) {
	// Старый писатель вложил объект диапазона в каждую границу
	raw := []byte(`[
		{
			"start": {"start": "2026-06-01", "end": "2026-06-10"},
			"end": {"start": "2026-06-01", "end": "2026-06-10"}
		}
	]`)

	ranges, err := decodeRanges(raw)
	require.NoError(t, err)

	require.Len(t, ranges, 1)
	assert.Equal(t, wantRange(t, "2026-06-01", "2026-06-10"), ranges[0])
}

func TestDecodeRanges_MixedFlatAndNested(t *testing.T) {
	raw := []byte(`[
		{"start": "2026-06-01", "end": "2026-06-10"},
		{
			"start": {"start": "2026-08-01", "end": "2026-08-05"},
			"end": {"start": "2026-08-01", "end": "2026-08-05"}
		}
	]`)

	ranges, err := decodeRanges(raw)
	require.NoError(t, err)

	require.Len(t, ranges, 2)
	assert.Equal(t, wantRange(t, "2026-06-01", "2026-06-10"), ranges[0])
	assert.Equal(t, wantRange(t, "2026-08-01", "2026-08-05"), ranges[1])
}

func TestDecodeRanges_CorruptedEntryKeepsPosition(t *testing.T) {
	// Повреждённая граница превращается в нулевой диапазон, но позиция
	// в списке сохраняется, чтобы удаление по индексу работало
	raw := []byte(`[
		{"start": 12345, "end": "2026-06-10"},
		{"start": "2026-07-01", "end": "2026-07-05"}
	]`)

	ranges, err := decodeRanges(raw)
	require.NoError(t, err)

	require.Len(t, ranges, 2)
	assert.True(t, ranges[0].IsZero())
	assert.Equal(t, wantRange(t, "2026-07-01", "2026-07-05"), ranges[1])
}

func TestDecodeRanges_InvertedEntryBecomesZero(t *testing.T) {
	raw := []byte(`[{"start": "2026-06-10", "end": "2026-06-01"}]`)

	ranges, err := decodeRanges(raw)
	require.NoError(t, err)

	require.Len(t, ranges, 1)
	assert.True(t, ranges[0].IsZero())
}

func TestDecodeRanges_Empty(t *testing.T) {
	ranges, err := decodeRanges(nil)
	require.NoError(t, err)
	assert.Empty(t, ranges)

	ranges, err = decodeRanges([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, ranges)
}

func TestEncodeRanges_CanonicalFormat(t *testing.T) {
	raw, err := encodeRanges([]domain.DateRange{wantRange(t, "2026-06-01", "2026-06-10")})
	require.NoError(t, err)

	assert.JSONEq(t, `[{"start": "2026-06-01", "end": "2026-06-10"}]`, string(raw))
}

func TestEncodeDecodeRanges_RoundTrip(t *testing.T) {
	original := []domain.DateRange{
		wantRange(t, "2026-03-01", "2026-03-05"),
		wantRange(t, "2026-06-01", "2026-06-10"),
	}

	raw, err := encodeRanges(original)
	require.NoError(t, err)

	decoded, err := decodeRanges(raw)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeCalendar_SlotMode(t *testing.T) {
	cal, err := decodeCalendar(domain.ModeSlot, calendarColumns{
		weekdays:            []string{"monday", "friday"},
		slotIntervalMinutes: 30,
	})
	require.NoError(t, err)

	slotCal, ok := cal.(domain.SlotCalendar)
	require.True(t, ok)
	assert.True(t, slotCal.Weekdays.Contains(time.Monday))
	assert.True(t, slotCal.Weekdays.Contains(time.Friday))
	assert.False(t, slotCal.Weekdays.Contains(time.Sunday))
	assert.Equal(t, 30, slotCal.SlotIntervalMinutes)
}

func TestDecodeCalendar_RangeMode(t *testing.T) {
	cal, err := decodeCalendar(domain.ModeRange, calendarColumns{
		dateRanges: []byte(`[{"start": "2026-06-01", "end": "2026-06-10"}]`),
	})
	require.NoError(t, err)

	rangeCal, ok := cal.(domain.RangeCalendar)
	require.True(t, ok)
	require.Len(t, rangeCal.Ranges, 1)
	assert.Equal(t, wantRange(t, "2026-06-01", "2026-06-10"), rangeCal.Ranges[0])
}
