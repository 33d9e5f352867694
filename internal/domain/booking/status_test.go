package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestActiveStatuses(t *testing.T) {
	active := ActiveStatuses()

	assert.Contains(t, active, "confirmed")
	assert.Contains(t, active, "completed")
	assert.NotContains(t, active, "cancelled")
	assert.NotContains(t, active, "no_show")
}

func TestTransitions_OnlyFromConfirmed(t *testing.T) {
	terminal := []Status{StatusCompleted, StatusCancelled, StatusNoShow}

	for _, s := range terminal {
		assert.Error(t, CanCancel(s), "cancel from %s", s)
		assert.Error(t, CanComplete(s), "complete from %s", s)
		assert.Error(t, CanMarkNoShow(s), "no_show from %s", s)
	}

	assert.NoError(t, CanCancel(StatusConfirmed))
	assert.NoError(t, CanComplete(StatusConfirmed))
	assert.NoError(t, CanMarkNoShow(StatusConfirmed))
}

func TestCancel_SetsStatusAndTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bk := &models.Booking{Status: string(StatusConfirmed)}

	require.NoError(t, Cancel(bk, now))

	assert.Equal(t, string(StatusCancelled), bk.Status)
	require.NotNil(t, bk.CancelledAt)
	assert.Equal(t, now, *bk.CancelledAt)
}

func TestComplete_SetsStatusAndTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bk := &models.Booking{Status: string(StatusConfirmed)}

	require.NoError(t, Complete(bk, now))

	assert.Equal(t, string(StatusCompleted), bk.Status)
	require.NotNil(t, bk.CompletedAt)
}

func TestMarkNoShow_SetsStatusAndTimestamp(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	bk := &models.Booking{Status: string(StatusConfirmed)}

	require.NoError(t, MarkNoShow(bk, now))

	assert.Equal(t, string(StatusNoShow), bk.Status)
	require.NotNil(t, bk.NoShowAt)
}

func TestTransitions_TerminalStatesRejectFurtherChanges(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	bk := &models.Booking{Status: string(StatusConfirmed)}
	require.NoError(t, Complete(bk, now))

	err := Cancel(bk, now)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
