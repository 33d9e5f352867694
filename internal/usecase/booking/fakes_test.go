package booking

import (
	"context"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// FAKE REPOSITORY (em memória)
// ======================================================

type fakeRepo struct {
	mu sync.Mutex

	salon    *models.Salon
	services map[uint]*models.Service
	hours    *models.WorkingHours

	bookings []models.Booking
	nextID   uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salon: &models.Salon{
			ID:       1,
			Name:     "Studio Central",
			Slug:     "studio-central",
			Timezone: "UTC",
		},
		services: map[uint]*models.Service{
			10: {ID: 10, SalonID: 1, Name: "Corte", DurationMin: 30, Active: true},
			11: {ID: 11, SalonID: 1, Name: "Coloração", DurationMin: 90, Active: true},
			12: {ID: 12, SalonID: 1, Name: "Desativado", DurationMin: 30, Active: false},
		},
		hours: &models.WorkingHours{
			StaffID:   5,
			StartTime: "09:00",
			EndTime:   "18:00",
			Active:    true,
		},
	}
}

func (r *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if r.salon == nil || r.salon.ID != id {
		return nil, domain.ErrNotFound
	}
	return r.salon, nil
}

func (r *fakeRepo) GetService(_ context.Context, salonID, serviceID uint) (*models.Service, error) {
	svc, ok := r.services[serviceID]
	if !ok || svc.SalonID != salonID {
		return nil, domain.ErrNotFound
	}
	return svc, nil
}

func (r *fakeRepo) GetOrCreateClient(_ context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	return &models.Client{ID: 99, SalonID: salonID, Name: name, Phone: phone, Email: email}, nil
}

// CreateBooking imita a janela check-then-insert do repositório real:
// a checagem e o insert não são atômicos entre si, então a exclusão
// mútua tem que vir do Locker.
func (r *fakeRepo) CreateBooking(_ context.Context, bk *models.Booking) error {
	r.mu.Lock()
	for _, existing := range r.bookings {
		if existing.StaffID != bk.StaffID {
			continue
		}
		if !isActive(existing.Status) {
			continue
		}
		if bk.StartTime.Before(existing.EndTime) && bk.EndTime.After(existing.StartTime) {
			r.mu.Unlock()
			return httperr.ErrBusiness("slot_unavailable")
		}
	}
	r.mu.Unlock()

	time.Sleep(2 * time.Millisecond)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	bk.ID = r.nextID
	r.bookings = append(r.bookings, *bk)
	return nil
}

func isActive(status string) bool {
	for _, s := range domain.ActiveStatuses() {
		if s == status {
			return true
		}
	}
	return false
}

func (r *fakeRepo) GetBookingForStaff(_ context.Context, bookingID, staffID uint) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.bookings {
		if r.bookings[i].ID == bookingID && r.bookings[i].StaffID == staffID {
			bk := r.bookings[i]
			return &bk, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) UpdateBooking(_ context.Context, bk *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.bookings {
		if r.bookings[i].ID == bk.ID {
			r.bookings[i] = *bk
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeRepo) GetWorkingHours(_ context.Context, staffID uint, _ int) (*models.WorkingHours, error) {
	if r.hours == nil || r.hours.StaffID != staffID {
		return nil, domain.ErrNotFound
	}
	return r.hours, nil
}

func (r *fakeRepo) ListActiveBookingsForDay(_ context.Context, staffID uint, start, end time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, bk := range r.bookings {
		if bk.StaffID != staffID || !isActive(bk.Status) {
			continue
		}
		if bk.StartTime.Before(end) && bk.EndTime.After(start) {
			out = append(out, bk)
		}
	}
	return out, nil
}

func (r *fakeRepo) IsWithinWorkingHours(_ context.Context, staffID uint, start, end time.Time) (bool, error) {
	if r.hours == nil || r.hours.StaffID != staffID || !r.hours.Active {
		return false, nil
	}

	parseHM := func(hm string) time.Time {
		t, _ := time.Parse("15:04", hm)
		return time.Date(
			start.Year(), start.Month(), start.Day(),
			t.Hour(), t.Minute(), 0, 0,
			start.Location(),
		)
	}

	ws := parseHM(r.hours.StartTime)
	we := parseHM(r.hours.EndTime)

	return !start.Before(ws) && !end.After(we), nil
}

func (r *fakeRepo) ListBookingsForPeriod(_ context.Context, staffID uint, start, end time.Time) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Booking
	for _, bk := range r.bookings {
		if bk.StaffID != staffID {
			continue
		}
		if bk.StartTime.Before(end) && bk.EndTime.After(start) {
			out = append(out, bk)
		}
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// FAKE REPOSITORY COM FALHA DE STORAGE
// ======================================================

// failingRepo injeta erros de infraestrutura em operações específicas;
// o resto delega para o fakeRepo embutido.
type failingRepo struct {
	*fakeRepo

	hoursErr   error
	serviceErr error
	bookingErr error
	withinErr  error
}

func (r *failingRepo) GetWorkingHours(ctx context.Context, staffID uint, weekday int) (*models.WorkingHours, error) {
	if r.hoursErr != nil {
		return nil, r.hoursErr
	}
	return r.fakeRepo.GetWorkingHours(ctx, staffID, weekday)
}

func (r *failingRepo) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	if r.serviceErr != nil {
		return nil, r.serviceErr
	}
	return r.fakeRepo.GetService(ctx, salonID, serviceID)
}

func (r *failingRepo) GetBookingForStaff(ctx context.Context, bookingID, staffID uint) (*models.Booking, error) {
	if r.bookingErr != nil {
		return nil, r.bookingErr
	}
	return r.fakeRepo.GetBookingForStaff(ctx, bookingID, staffID)
}

func (r *failingRepo) IsWithinWorkingHours(ctx context.Context, staffID uint, start, end time.Time) (bool, error) {
	if r.withinErr != nil {
		return false, r.withinErr
	}
	return r.fakeRepo.IsWithinWorkingHours(ctx, staffID, start, end)
}

var _ domain.Repository = (*failingRepo)(nil)

// ======================================================
// FAKE LOCKER (mutex por chave)
// ======================================================

type fakeLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{locks: make(map[string]*sync.Mutex)}
}

func (l *fakeLocker) WithLock(_ context.Context, key string, fn func() error) error {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	defer m.Unlock()
	return fn()
}

var _ domain.Locker = (*fakeLocker)(nil)

// ======================================================
// AUDIT (descarta eventos)
// ======================================================

type noopSink struct{}

func (noopSink) Log(uint, *uint, string, string, *uint, any) error { return nil }
