package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/Blane-SchedulingService/pkg/types"
)

func ts(t *testing.T, s string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return v
}

func offerBounds(t *testing.T) DateRange {
	t.Helper()
	return mustRange(t, "2026-01-01", "2026-12-31")
}

func TestRangeCalendar_AddRange_MergesOverlapping(t *testing.T) {
	cal := RangeCalendar{Ranges: []DateRange{mustRange(t, "2026-06-01", "2026-06-10")}}

	cal, err := cal.AddRange(mustRange(t, "2026-06-05", "2026-06-15"), offerBounds(t))
	require.NoError(t, err)

	require.Len(t, cal.Ranges, 1)
	assert.Equal(t, mustRange(t, "2026-06-01", "2026-06-15"), cal.Ranges[0])
}

func TestRangeCalendar_AddRange_MergesAdjacent(t *testing.T) {
	cal := RangeCalendar{Ranges: []DateRange{mustRange(t, "2026-06-01", "2026-06-10")}}

	cal, err := cal.AddRange(mustRange(t, "2026-06-11", "2026-06-20"), offerBounds(t))
	require.NoError(t, err)

	require.Len(t, cal.Ranges, 1)
	assert.Equal(t, mustRange(t, "2026-06-01", "2026-06-20"), cal.Ranges[0])
}

func TestRangeCalendar_AddRange_BridgesMultipleRanges(t *testing.T) {
	// Кандидат склеивает два диапазона, которые между собой не соприкасаются
	cal := RangeCalendar{Ranges: []DateRange{
		mustRange(t, "2026-06-01", "2026-06-05"),
		mustRange(t, "2026-06-10", "2026-06-15"),
		mustRange(t, "2026-08-01", "2026-08-05"),
	}}

	cal, err := cal.AddRange(mustRange(t, "2026-06-06", "2026-06-09"), offerBounds(t))
	require.NoError(t, err)

	require.Len(t, cal.Ranges, 2)
	assert.Equal(t, mustRange(t, "2026-06-01", "2026-06-15"), cal.Ranges[0])
	assert.Equal(t, mustRange(t, "2026-08-01", "2026-08-05"), cal.Ranges[1])
}

func TestRangeCalendar_AddRange_ContainedCandidateKeepsDaySet(t *testing.T) {
	outer := mustRange(t, "2026-06-01", "2026-06-30")
	cal := RangeCalendar{Ranges: []DateRange{outer}}

	updated, err := cal.AddRange(mustRange(t, "2026-06-10", "2026-06-12"), offerBounds(t))
	require.NoError(t, err)

	require.Len(t, updated.Ranges, 1)
	assert.Equal(t, outer, updated.Ranges[0])
}

func TestRangeCalendar_AddRange_RejectsDuplicate(t *testing.T) {
	cal := RangeCalendar{Ranges: []DateRange{mustRange(t, "2026-06-01", "2026-06-10")}}

	_, err := cal.AddRange(mustRange(t, "2026-06-01", "2026-06-10"), offerBounds(t))
	assert.ErrorIs(t, err, ErrDuplicateRange)
}

func TestRangeCalendar_AddRange_RejectsOutOfBounds(t *testing.T) {
	cal := RangeCalendar{}

	_, err := cal.AddRange(mustRange(t, "2026-12-20", "2027-01-05"), offerBounds(t))
	assert.ErrorIs(t, err, ErrRangeOutOfBounds)

	_, err = cal.AddRange(mustRange(t, "2025-12-25", "2026-01-05"), offerBounds(t))
	assert.ErrorIs(t, err, ErrRangeOutOfBounds)
}

func TestRangeCalendar_AddRange_SortsByStart(t *testing.T) {
	cal := RangeCalendar{Ranges: []DateRange{mustRange(t, "2026-09-01", "2026-09-05")}}

	cal, err := cal.AddRange(mustRange(t, "2026-03-01", "2026-03-05"), offerBounds(t))
	require.NoError(t, err)

	require.Len(t, cal.Ranges, 2)
	assert.Equal(t, mustRange(t, "2026-03-01", "2026-03-05"), cal.Ranges[0])
	assert.Equal(t, mustRange(t, "2026-09-01", "2026-09-05"), cal.Ranges[1])
	assert.NoError(t, cal.Validate())
}

func TestRangeCalendar_AddRange_DoesNotMutateReceiver(t *testing.T) {
	original := RangeCalendar{Ranges: []DateRange{mustRange(t, "2026-06-01", "2026-06-10")}}

	_, err := original.AddRange(mustRange(t, "2026-06-05", "2026-06-20"), offerBounds(t))
	require.NoError(t, err)

	require.Len(t, original.Ranges, 1)
	assert.Equal(t, mustRange(t, "2026-06-01", "2026-06-10"), original.Ranges[0])
}

func TestRangeCalendar_RemoveRange(t *testing.T) {
	cal := RangeCalendar{Ranges: []DateRange{
		mustRange(t, "2026-03-01", "2026-03-05"),
		mustRange(t, "2026-06-01", "2026-06-10"),
		mustRange(t, "2026-09-01", "2026-09-05"),
	}}

	cal, err := cal.RemoveRange(1)
	require.NoError(t, err)

	require.Len(t, cal.Ranges, 2)
	assert.Equal(t, mustRange(t, "2026-03-01", "2026-03-05"), cal.Ranges[0])
	assert.Equal(t, mustRange(t, "2026-09-01", "2026-09-05"), cal.Ranges[1])
}

func TestRangeCalendar_RemoveRange_InvalidIndex(t *testing.T) {
	cal := RangeCalendar{Ranges: []DateRange{mustRange(t, "2026-06-01", "2026-06-10")}}

	_, err := cal.RemoveRange(-1)
	assert.ErrorIs(t, err, ErrRangeNotFound)

	_, err = cal.RemoveRange(1)
	assert.ErrorIs(t, err, ErrRangeNotFound)
}

func TestRangeCalendar_RemoveRange_CorruptedEntryStaysRemovable(t *testing.T) {
	// Испорченная запись из легаси-хранилища: нулевой диапазон
	cal := RangeCalendar{Ranges: []DateRange{
		{},
		mustRange(t, "2026-06-01", "2026-06-10"),
	}}

	assert.False(t, cal.ContainsDay(day(2026, 1, 1)))
	assert.True(t, cal.ContainsDay(day(2026, 6, 5)))
	assert.Len(t, cal.ValidRanges(), 1)

	cal, err := cal.RemoveRange(0)
	require.NoError(t, err)
	require.Len(t, cal.Ranges, 1)
	assert.True(t, cal.Ranges[0].Valid())
}

func TestRangeCalendar_AddThenRemoveRoundTrip(t *testing.T) {
	cal := RangeCalendar{}

	cal, err := cal.AddRange(mustRange(t, "2026-06-01", "2026-06-10"), offerBounds(t))
	require.NoError(t, err)
	cal, err = cal.AddRange(mustRange(t, "2026-07-01", "2026-07-10"), offerBounds(t))
	require.NoError(t, err)

	cal, err = cal.RemoveRange(1)
	require.NoError(t, err)

	require.Len(t, cal.Ranges, 1)
	assert.True(t, cal.ContainsDay(day(2026, 6, 5)))
	assert.False(t, cal.ContainsDay(day(2026, 7, 5)))
}

func TestSlotCalendar_SlotsForDate(t *testing.T) {
	cal := SlotCalendar{
		Weekdays:            NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
		DailyStart:          ts(t, "09:00"),
		DailyEnd:            ts(t, "18:00"),
		SlotIntervalMinutes: 30,
	}

	// 2026-06-01 - понедельник
	slots := cal.SlotsForDate(day(2026, 6, 1), offerBounds(t))
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "17:30", slots[17].StartTime.String())

	// 2026-06-06 - суббота, выходной
	assert.Empty(t, cal.SlotsForDate(day(2026, 6, 6), offerBounds(t)))
}

func TestSlotCalendar_SlotsForDate_DropsPartialTrailingSlot(t *testing.T) {
	cal := SlotCalendar{
		Weekdays:            NewWeekdaySet(time.Monday),
		DailyStart:          ts(t, "09:00"),
		DailyEnd:            ts(t, "10:15"),
		SlotIntervalMinutes: 30,
	}

	slots := cal.SlotsForDate(day(2026, 6, 1), offerBounds(t))
	require.Len(t, slots, 2)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, "09:30", slots[1].StartTime.String())
}

func TestSlotCalendar_SlotsForDate_OutsideBounds(t *testing.T) {
	cal := SlotCalendar{
		Weekdays:            NewWeekdaySet(time.Monday),
		DailyStart:          ts(t, "09:00"),
		DailyEnd:            ts(t, "18:00"),
		SlotIntervalMinutes: 60,
	}
	narrow := mustRange(t, "2026-06-01", "2026-06-05")

	// 2026-06-08 - понедельник, но за границей окна действия оффера
	assert.Empty(t, cal.SlotsForDate(day(2026, 6, 8), narrow))
}

func TestSlotCalendar_Validate(t *testing.T) {
	valid := SlotCalendar{
		Weekdays:            NewWeekdaySet(time.Monday),
		DailyStart:          ts(t, "09:00"),
		DailyEnd:            ts(t, "18:00"),
		SlotIntervalMinutes: 30,
	}
	assert.NoError(t, valid.Validate())

	empty := valid
	empty.Weekdays = 0
	assert.ErrorIs(t, empty.Validate(), ErrEmptyWeekdays)

	inverted := valid
	inverted.DailyStart = ts(t, "18:00")
	inverted.DailyEnd = ts(t, "09:00")
	assert.ErrorIs(t, inverted.Validate(), ErrInvalidDailyWindow)

	badInterval := valid
	badInterval.SlotIntervalMinutes = 3
	assert.ErrorIs(t, badInterval.Validate(), ErrInvalidSlotInterval)
}

func TestRangeCalendar_Validate_DetectsUnmergedRanges(t *testing.T) {
	overlapping := RangeCalendar{Ranges: []DateRange{
		mustRange(t, "2026-06-01", "2026-06-10"),
		mustRange(t, "2026-06-05", "2026-06-15"),
	}}
	assert.Error(t, overlapping.Validate())

	adjacent := RangeCalendar{Ranges: []DateRange{
		mustRange(t, "2026-06-01", "2026-06-10"),
		mustRange(t, "2026-06-11", "2026-06-15"),
	}}
	assert.Error(t, adjacent.Validate())

	disjoint := RangeCalendar{Ranges: []DateRange{
		mustRange(t, "2026-06-01", "2026-06-10"),
		mustRange(t, "2026-06-20", "2026-06-25"),
	}}
	assert.NoError(t, disjoint.Validate())
}
