package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// QRHandler gera o QR code impresso no balcão do salão,
// apontando para a página pública de reservas.
type QRHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewQRHandler(db *gorm.DB, cfg *config.Config) *QRHandler {
	return &QRHandler{db: db, cfg: cfg}
}

func (h *QRHandler) Get(c *gin.Context) {
	slug := c.Param("slug")

	var salon models.Salon
	if err := h.db.Where("slug = ?", slug).First(&salon).Error; err != nil {
		httperr.NotFound(c, "salon_not_found", "Salão não encontrado.")
		return
	}

	url := fmt.Sprintf("%s/%s", h.cfg.AppBaseURL, salon.Slug)

	png, err := qrcode.Encode(url, qrcode.Medium, 400)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_qr", "Erro ao gerar QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
