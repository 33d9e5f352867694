package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// mapCreateErrors traduz os erros de negócio da criação de reserva
// para HTTP. Conflito de horário é SEMPRE 409 — o front reconsulta
// a disponibilidade e oferece outro horário.
func mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")

	case httperr.IsBusiness(err, "slot_in_past"):
		httperr.BadRequest(c, "slot_in_past", "Não é possível reservar um horário no passado.")

	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço inválido.")

	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Fora do horário de atendimento.")

	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.Conflict(c, "slot_unavailable", "Este horário acabou de ser reservado. Escolha outro.")

	case httperr.IsBusiness(err, "staff_busy"):
		httperr.Conflict(c, "staff_busy", "Agenda ocupada no momento. Tente novamente.")

	default:
		httperr.Internal(c, "failed_to_create_booking", "Erro ao criar reserva.")
	}
}
