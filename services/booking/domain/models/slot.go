package models

import "fmt"

// Slot is a bookable start time label such as "9:00 AM".
type Slot string

// Slots is the ordered set of bookable hours, 9 AM through 6 PM.
var Slots = []Slot{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM", "1:00 PM",
	"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM", "6:00 PM",
}

// firstSlotHour is the 24h hour of Slots[0].
const firstSlotHour = 9

// ParseSlot returns s as a Slot when it is one of Slots.
func ParseSlot(s string) (Slot, error) {
	for _, slot := range Slots {
		if string(slot) == s {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown time slot %q", s)
}

// Valid reports whether s is one of Slots.
func (s Slot) Valid() bool {
	_, err := ParseSlot(string(s))
	return err == nil
}

// Hour returns the 24h start hour, or -1 for an unknown slot.
func (s Slot) Hour() int {
	for i, slot := range Slots {
		if slot == s {
			return firstSlotHour + i
		}
	}
	return -1
}

func (s Slot) String() string { return string(s) }
