package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func newCreateUC(repo *fakeRepo) *CreateBooking {
	uc := NewCreateBooking(repo, newFakeLocker(), audit.NewDispatcher(noopSink{}))
	uc.now = frozen(testDate().Add(-24 * time.Hour))
	return uc
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		SalonID:     1,
		StaffID:     5,
		ClientName:  "Maria Souza",
		ClientPhone: "11987654321",
		ServiceID:   10,
		Date:        "2026-03-10",
		Time:        "10:00",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	bk, err := uc.Execute(context.Background(), validInput())

	require.NoError(t, err)
	require.NotNil(t, bk)

	assert.NotEmpty(t, bk.Code)
	assert.Equal(t, string(domain.StatusConfirmed), bk.Status)
	assert.Equal(t, testDate().Add(10*time.Hour), bk.StartTime)
	assert.Equal(t, testDate().Add(10*time.Hour+30*time.Minute), bk.EndTime)
	assert.Len(t, repo.bookings, 1)
}

func TestCreateBooking_InvalidDateTime(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	in := validInput()
	in.Time = "25:99"

	_, err := uc.Execute(context.Background(), in)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestCreateBooking_SlotInPast(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, newFakeLocker(), audit.NewDispatcher(noopSink{}))
	uc.now = frozen(testDate().Add(11 * time.Hour))

	_, err := uc.Execute(context.Background(), validInput())

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "slot_in_past"))
}

func TestCreateBooking_InactiveService(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	in := validInput()
	in.ServiceID = 12

	_, err := uc.Execute(context.Background(), in)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateBooking_UnknownService(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	in := validInput()
	in.ServiceID = 999

	_, err := uc.Execute(context.Background(), in)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

// Erro de infraestrutura na busca do serviço sobe como erro,
// nunca como service_not_found.
func TestCreateBooking_ServiceStorageErrorSurfaces(t *testing.T) {
	errDB := errors.New("db connection refused")

	repo := &failingRepo{fakeRepo: newFakeRepo(), serviceErr: errDB}

	uc := NewCreateBooking(repo, newFakeLocker(), audit.NewDispatcher(noopSink{}))
	uc.now = frozen(testDate().Add(-24 * time.Hour))

	_, err := uc.Execute(context.Background(), validInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, errDB)
	assert.False(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateBooking_WorkingHoursStorageErrorSurfaces(t *testing.T) {
	errDB := errors.New("db connection refused")

	repo := &failingRepo{fakeRepo: newFakeRepo(), withinErr: errDB}

	uc := NewCreateBooking(repo, newFakeLocker(), audit.NewDispatcher(noopSink{}))
	uc.now = frozen(testDate().Add(-24 * time.Hour))

	_, err := uc.Execute(context.Background(), validInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, errDB)
	assert.False(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateBooking_OutsideWorkingHours(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	in := validInput()
	in.Time = "22:00"

	_, err := uc.Execute(context.Background(), in)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateBooking_ServiceMustEndBeforeClosing(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	// 17:30 + 90min passa das 18:00
	in := validInput()
	in.ServiceID = 11
	in.Time = "17:30"

	_, err := uc.Execute(context.Background(), in)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateBooking_OverlapConflict(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	// mesmo horário, mesmo profissional
	_, err = uc.Execute(context.Background(), validInput())

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}

func TestCreateBooking_PartialOverlapConflict(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	// 10:00–11:30 (coloração)
	in := validInput()
	in.ServiceID = 11
	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// 11:00–11:30 cruza o final da reserva anterior, mesmo sem
	// compartilhar o horário de início
	in2 := validInput()
	in2.Time = "11:00"
	_, err = uc.Execute(context.Background(), in2)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
}

func TestCreateBooking_TouchingBookingsAllowed(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	in := validInput()
	in.Time = "10:30"
	_, err = uc.Execute(context.Background(), in)

	require.NoError(t, err)
	assert.Len(t, repo.bookings, 2)
}

func TestCreateBooking_CancelledBookingFreesSlot(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	bk, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, domain.Cancel(bk, testDate()))
	require.NoError(t, repo.UpdateBooking(context.Background(), bk))

	_, err = uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
}

func TestCreateBooking_OtherStaffUnaffected(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	repo.hours = &models.WorkingHours{
		StaffID:   6,
		StartTime: "09:00",
		EndTime:   "18:00",
		Active:    true,
	}

	in := validInput()
	in.StaffID = 6
	_, err = uc.Execute(context.Background(), in)

	require.NoError(t, err)
}

// Duas criações simultâneas para o mesmo horário: exatamente
// uma ganha, as outras recebem slot_unavailable.
func TestCreateBooking_ConcurrentSameSlot(t *testing.T) {
	repo := newFakeRepo()
	uc := newCreateUC(repo)

	const n = 8

	var wg sync.WaitGroup
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), validInput())
		}(i)
	}

	wg.Wait()

	success := 0
	conflicts := 0
	for _, err := range errs {
		switch {
		case err == nil:
			success++
		case httperr.IsBusiness(err, "slot_unavailable"):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, success)
	assert.Equal(t, n-1, conflicts)
	assert.Len(t, repo.bookings, 1)
}
