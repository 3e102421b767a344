package services

import (
	"fmt"
	"time"

	"github.com/ghuser/homebook/services/booking/domain"
	"github.com/ghuser/homebook/services/booking/domain/models"
)

// SlotCapacity is how many active bookings one slot accepts.
const SlotCapacity = 5

// CheckSlot returns ErrSlotUnavailable when date is outside the window that
// starts on now's calendar day, or when the slot has already started today.
// now's location decides what "today" means.
func CheckSlot(now time.Time, date models.Date, slot models.Slot) error {
	today := models.DateOf(now)
	if !models.InWindow(today, date) {
		return fmt.Errorf("%w: %s is outside the booking window", domain.ErrSlotUnavailable, date)
	}
	hour := slot.Hour()
	if hour < 0 {
		return fmt.Errorf("%w: unknown slot %q", domain.ErrSlotUnavailable, slot)
	}
	if date == today && hour <= now.Hour() {
		return fmt.Errorf("%w: %s has already started", domain.ErrSlotUnavailable, slot)
	}
	return nil
}

// CheckCapacity returns ErrSlotUnavailable when active has reached SlotCapacity.
func CheckCapacity(active int) error {
	if active >= SlotCapacity {
		return fmt.Errorf("%w: fully booked", domain.ErrSlotUnavailable)
	}
	return nil
}
