package domain

import "github.com/m04kA/Blane-SchedulingService/pkg/types"

// TimeSlot represents one bookable slot of a slot-mode calendar day
type TimeSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
}

// EndTime returns the end of the slot.
// The zero value is returned if the start does not parse.
func (s TimeSlot) EndTime() types.TimeString {
	end, err := s.StartTime.AddMinutes(s.DurationMinutes)
	if err != nil {
		return ""
	}
	return end
}

// Matches reports whether the slot starts at the given time
func (s TimeSlot) Matches(start types.TimeString) bool {
	return s.StartTime == start
}
