package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	d, err := ParseWeekday("monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d)

	d, err = ParseWeekday("Sunday")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d)

	_, err = ParseWeekday("someday")
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestWeekdaySet_Toggle(t *testing.T) {
	s := NewWeekdaySet(time.Monday, time.Friday)

	s = s.Toggle(time.Wednesday)
	assert.True(t, s.Contains(time.Wednesday))
	assert.Equal(t, 3, s.Count())

	s = s.Toggle(time.Wednesday)
	assert.False(t, s.Contains(time.Wednesday))
	assert.Equal(t, 2, s.Count())
}

func TestWeekdaySet_Strings(t *testing.T) {
	s, err := ParseWeekdaySet([]string{"monday", "wednesday", "friday"})
	require.NoError(t, err)

	assert.Equal(t, []string{"monday", "wednesday", "friday"}, s.Strings())
}

func TestWeekdaySet_Empty(t *testing.T) {
	var s WeekdaySet
	assert.True(t, s.IsEmpty())
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Weekdays())
}
