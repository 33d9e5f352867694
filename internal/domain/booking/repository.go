package booking

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ErrNotFound marca registro inexistente. Qualquer outro erro do
// repositório é falha de storage e sobe como 500 — nunca vira
// resposta de negócio.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		salonID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Booking (create / conflict) --------

	// CreateBooking roda checagem de conflito + insert na mesma transação.
	// Conflito de intervalo com reserva ativa → ErrBusiness("slot_unavailable").
	CreateBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBookingForStaff(
		ctx context.Context,
		bookingID uint,
		staffID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		bk *models.Booking,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		staffID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// Reservas ativas (confirmed/completed) do dia, ordenadas por início
	ListActiveBookingsForDay(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	IsWithinWorkingHours(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) (bool, error)

	ListBookingsForPeriod(
		ctx context.Context,
		staffID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}

// Locker serializa a seção check+insert por profissional.
// Duas criações simultâneas para o mesmo staff nunca entram juntas.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func() error) error
}
