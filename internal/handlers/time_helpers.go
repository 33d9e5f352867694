package handlers

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// --------------------------------------------------
// Timezone centralizado por salão
// --------------------------------------------------

func locationFromSalon(salon *models.Salon) *time.Location {
	if salon != nil {
		return timezone.Location(salon.Timezone)
	}
	return timezone.Location("")
}

func parseDateInSalon(salon *models.Salon, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromSalon(salon),
	)
}

// validHourRange aceita "09:00"/"18:00" com início antes do fim
func validHourRange(startHM, endHM string) bool {
	start, err := time.Parse("15:04", startHM)
	if err != nil {
		return false
	}

	end, err := time.Parse("15:04", endHM)
	if err != nil {
		return false
	}

	return start.Before(end)
}
