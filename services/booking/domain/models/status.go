package models

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanCancel reports whether a booking in state s may still be cancelled.
// Work that has started, finished or was already cancelled cannot be.
func (s Status) CanCancel() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusScheduled:
		return true
	}
	return false
}

// Active reports whether the booking still occupies its slot.
func (s Status) Active() bool {
	return s != StatusCancelled && s != StatusCompleted
}
