package booking

import "time"

type AvailabilityInput struct {
	SalonID     uint
	StaffID     uint
	DurationMin int
	Date        time.Time
}
