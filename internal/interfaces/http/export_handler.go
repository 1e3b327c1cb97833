package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/reporting"
)

// ExportHandler exportación de reportes en PDF.
type ExportHandler struct {
	uc *reporting.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *reporting.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// TransactionsPDF godoc
// @Summary      Exportar transacciones del período en PDF
// @Description  Sin parámetros exporta el mes en curso.
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        date_from  query  string  false  "Desde (2006-01-02)"
// @Param        date_to    query  string  false  "Hasta (2006-01-02)"
// @Success      200  {file}  binary
// @Router       /api/reports/transactions/pdf [get]
func (h *ExportHandler) TransactionsPDF(c *fiber.Ctx) error {
	var from, to time.Time
	if p, err := parseDateQuery(c.Query("date_from"), false); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_from inválido"})
	} else if p != nil {
		from = *p
	}
	if p, err := parseDateQuery(c.Query("date_to"), true); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_to inválido"})
	} else if p != nil {
		to = *p
	}

	bytes, filename, err := h.uc.ExportTransactionsPDF(c.UserContext(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(bytes)
}
