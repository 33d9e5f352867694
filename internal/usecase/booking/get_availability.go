package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo        domain.Repository
	defaultStep int

	// injetável nos testes
	now func(tz string) time.Time
}

func NewGetAvailability(repo domain.Repository, defaultStepMin int) *GetAvailability {
	return &GetAvailability{
		repo:        repo,
		defaultStep: defaultStepMin,
		now:         timezone.NowIn,
	}
}

// Execute devolve os inícios de horário livres ("15:04") para o
// profissional no dia pedido, em ordem crescente.
//
// Profissional sem expediente no dia → lista vazia, sem erro.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]string, error) {

	if in.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	step := salon.SlotGranularityMin
	if step <= 0 {
		step = uc.defaultStep
	}

	weekday := int(in.Date.Weekday())

	wh, err := uc.repo.GetWorkingHours(ctx, in.StaffID, weekday)
	if err != nil {
		// sem expediente cadastrado = agenda vazia; falha de storage sobe
		if errors.Is(err, domain.ErrNotFound) {
			return []string{}, nil
		}
		return nil, err
	}
	if !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return []string{}, nil
	}

	loc := in.Date.Location()

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			in.Date.Year(), in.Date.Month(), in.Date.Day(),
			t.Hour(), t.Minute(), 0, 0,
			loc,
		)
	}

	workStart := parseHM(wh.StartTime)
	workEnd := parseHM(wh.EndTime)

	dayStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	bookings, err := uc.repo.ListActiveBookingsForDay(
		ctx,
		in.StaffID,
		dayStart,
		dayEnd,
	)
	if err != nil {
		return nil, err
	}

	busy := make([]domain.Interval, 0, len(bookings))
	for _, bk := range bookings {
		busy = append(busy, domain.Interval{
			Start: bk.StartTime,
			End:   bk.EndTime,
		})
	}

	starts := domain.AvailableSlots(
		workStart,
		workEnd,
		time.Duration(in.DurationMin)*time.Minute,
		time.Duration(step)*time.Minute,
		busy,
		uc.now(salon.Timezone),
	)

	slots := make([]string, 0, len(starts))
	for _, s := range starts {
		slots = append(slots, s.Format("15:04"))
	}

	return slots, nil
}
