package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucBooking "github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db     *gorm.DB
	cfg    *config.Config
	audit  *audit.Dispatcher
	locker domain.Locker
}

func NewPublicHandler(
	db *gorm.DB,
	cfg *config.Config,
	dispatcher *audit.Dispatcher,
	locker domain.Locker,
) *PublicHandler {
	return &PublicHandler{
		db:     db,
		cfg:    cfg,
		audit:  dispatcher,
		locker: locker,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	StaffID     uint   `json:"staff_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("salon_id = ? AND active = true", salon.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon":    salon,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// STAFF
////////////////////////////////////////////////////////

func (h *PublicHandler) ListStaff(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var staff []models.User
	if err := h.db.
		Select("id", "name", "role").
		Where("salon_id = ? AND active = true", salon.ID).
		Order("id ASC").
		Find(&staff).Error; err != nil {

		httperr.Internal(c, "failed_to_list_staff", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"salon": gin.H{"id": salon.ID, "name": salon.Name, "slug": salon.Slug},
		"staff": staff,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	staffIDStr := c.Query("staff_id")
	durationStr := c.Query("duration")

	if dateStr == "" || staffIDStr == "" || durationStr == "" {
		httperr.BadRequest(c, "missing_params", "Data, profissional e duração obrigatórios.")
		return
	}

	staffID, err := strconv.ParseUint(staffIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_staff_id", "Profissional inválido.")
		return
	}

	duration, err := strconv.Atoi(durationStr)
	if err != nil || duration <= 0 {
		httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
		return
	}

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	// profissional desconhecido = sem expediente = lista vazia
	var staff models.User
	if err := h.db.
		Where("id = ? AND salon_id = ? AND active = true", staffID, salon.ID).
		First(&staff).Error; err != nil {

		c.JSON(http.StatusOK, gin.H{"date": dateStr, "slots": []string{}})
		return
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		dateStr,
		timezone.Location(salon.Timezone),
	)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := ucBooking.NewGetAvailability(repo, h.cfg.SlotGranularityMin)

	slots, err := uc.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			SalonID:     salon.ID,
			StaffID:     uint(staffID),
			DurationMin: duration,
			Date:        date,
		},
	)

	if err != nil {
		if httperr.IsBusiness(err, "invalid_duration") {
			httperr.BadRequest(c, "invalid_duration", "Duração inválida.")
			return
		}

		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var staff models.User
	if err := h.db.
		Where("id = ? AND salon_id = ? AND active = true", req.StaffID, salon.ID).
		First(&staff).Error; err != nil {

		httperr.BadRequest(c, "staff_not_found", "Profissional não encontrado.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := ucBooking.NewCreateBooking(repo, h.locker, h.audit)

	bk, err := uc.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			SalonID:     salon.ID,
			StaffID:     staff.ID,
			ClientName:  req.ClientName,
			ClientPhone: req.ClientPhone,
			ClientEmail: req.ClientEmail,
			ServiceID:   req.ServiceID,
			Date:        req.Date,
			Time:        req.Time,
			Notes:       req.Notes,
		},
	)

	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, bk)
}

////////////////////////////////////////////////////////
// MY BOOKINGS (CONSULTA POR TELEFONE + NOME)
////////////////////////////////////////////////////////

func (h *PublicHandler) SearchBookings(c *gin.Context) {
	slug := c.Param("slug")
	phone := strings.TrimSpace(c.Query("phone"))
	name := strings.TrimSpace(c.Query("name"))

	if phone == "" || name == "" {
		httperr.BadRequest(c, "missing_params", "Telefone e nome obrigatórios.")
		return
	}

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	cleanPhone := cleanPhoneNumber(phone)
	like := "%" + strings.ToLower(name) + "%"

	var bookings []models.Booking
	err := h.db.
		Preload("Service").
		Preload("Staff").
		Joins("JOIN clients ON clients.id = bookings.client_id").
		Where(
			"bookings.salon_id = ? AND clients.phone LIKE ? AND LOWER(clients.name) LIKE ? AND bookings.start_time >= ?",
			salon.ID,
			"%"+cleanPhone+"%",
			like,
			timezone.NowIn(salon.Timezone),
		).
		Order("bookings.start_time ASC").
		Limit(10).
		Find(&bookings).Error

	if err != nil {
		httperr.Internal(c, "failed_to_search_bookings", "Erro ao buscar reservas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func cleanPhoneNumber(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
