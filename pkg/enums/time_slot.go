package enums

import "fmt"

// TimeSlot is one of the fixed hourly delivery windows the shop offers.
type TimeSlot string

const (
	TimeSlot11AM TimeSlot = "11:00 AM"
	TimeSlot12PM TimeSlot = "12:00 PM"
	TimeSlot1PM  TimeSlot = "01:00 PM"
	TimeSlot2PM  TimeSlot = "02:00 PM"
	TimeSlot3PM  TimeSlot = "03:00 PM"
	TimeSlot4PM  TimeSlot = "04:00 PM"
	TimeSlot5PM  TimeSlot = "05:00 PM"
)

var validTimeSlots = []TimeSlot{
	TimeSlot11AM,
	TimeSlot12PM,
	TimeSlot1PM,
	TimeSlot2PM,
	TimeSlot3PM,
	TimeSlot4PM,
	TimeSlot5PM,
}

// TimeSlots returns the offered slots in display order.
func TimeSlots() []TimeSlot {
	out := make([]TimeSlot, len(validTimeSlots))
	copy(out, validTimeSlots)
	return out
}

// String implements fmt.Stringer.
func (t TimeSlot) String() string {
	return string(t)
}

// IsValid reports whether the value is a known TimeSlot.
func (t TimeSlot) IsValid() bool {
	for _, candidate := range validTimeSlots {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTimeSlot converts raw input into a TimeSlot.
func ParseTimeSlot(value string) (TimeSlot, error) {
	for _, candidate := range validTimeSlots {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid time slot %q", value)
}
