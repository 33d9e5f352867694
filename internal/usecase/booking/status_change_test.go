package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func seedConfirmedBooking(t *testing.T, repo *fakeRepo) *models.Booking {
	t.Helper()

	uc := newCreateUC(repo)
	bk, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	return bk
}

func TestCompleteBooking(t *testing.T) {
	repo := newFakeRepo()
	bk := seedConfirmedBooking(t, repo)

	uc := NewCompleteBooking(repo, audit.NewDispatcher(noopSink{}))

	out, err := uc.Execute(context.Background(), 1, 5, bk.ID)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), out.Status)
	assert.NotNil(t, out.CompletedAt)
}

func TestCancelBooking(t *testing.T) {
	repo := newFakeRepo()
	bk := seedConfirmedBooking(t, repo)

	uc := NewCancelBooking(repo, audit.NewDispatcher(noopSink{}))

	out, err := uc.Execute(context.Background(), 1, 5, bk.ID)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), out.Status)
	assert.NotNil(t, out.CancelledAt)
}

func TestMarkNoShowBooking(t *testing.T) {
	repo := newFakeRepo()
	bk := seedConfirmedBooking(t, repo)

	uc := NewMarkNoShow(repo, audit.NewDispatcher(noopSink{}))

	out, err := uc.Execute(context.Background(), 1, 5, bk.ID)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusNoShow), out.Status)
	assert.NotNil(t, out.NoShowAt)
}

func TestStatusChange_BookingNotFound(t *testing.T) {
	repo := newFakeRepo()

	uc := NewCancelBooking(repo, audit.NewDispatcher(noopSink{}))

	_, err := uc.Execute(context.Background(), 1, 5, 999)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestStatusChange_WrongStaffIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	bk := seedConfirmedBooking(t, repo)

	uc := NewCancelBooking(repo, audit.NewDispatcher(noopSink{}))

	_, err := uc.Execute(context.Background(), 1, 6, bk.ID)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

// Falha de storage na busca da reserva sobe como erro,
// nunca como booking_not_found.
func TestStatusChange_StorageErrorSurfaces(t *testing.T) {
	errDB := errors.New("db connection refused")

	base := newFakeRepo()
	seedConfirmedBooking(t, base)

	repo := &failingRepo{fakeRepo: base, bookingErr: errDB}

	uc := NewCancelBooking(repo, audit.NewDispatcher(noopSink{}))

	_, err := uc.Execute(context.Background(), 1, 5, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, errDB)
	assert.False(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestStatusChange_TerminalStateRejected(t *testing.T) {
	repo := newFakeRepo()
	bk := seedConfirmedBooking(t, repo)

	completeUC := NewCompleteBooking(repo, audit.NewDispatcher(noopSink{}))
	cancelUC := NewCancelBooking(repo, audit.NewDispatcher(noopSink{}))

	_, err := completeUC.Execute(context.Background(), 1, 5, bk.ID)
	require.NoError(t, err)

	_, err = cancelUC.Execute(context.Background(), 1, 5, bk.ID)

	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
