package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// TransactionHandler operaciones sobre el libro de stock.
type TransactionHandler struct {
	uc *ledger.LedgerUseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *ledger.LedgerUseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar transacción de stock
// @Description  in/out: quantity es la magnitud. adjustment: quantity es el stock objetivo.
// @Tags         transactions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransactionRequest  true  "Transacción"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/transactions [post]
func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateTransaction(c.UserContext(), ledger.CreateTransactionInput{
		ProductID: in.ProductID,
		UserID:    GetUserID(c),
		Type:      in.Type,
		Quantity:  in.Quantity,
		Status:    in.Status,
		Notes:     in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Complete godoc
// @Summary      Completar transacción pendiente
// @Tags         transactions
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "no está pendiente"
// @Router       /api/transactions/{id}/complete [post]
func (h *TransactionHandler) Complete(c *fiber.Ctx) error {
	if err := h.uc.CompleteTransaction(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cancel godoc
// @Summary      Cancelar transacción completada (revierte el stock)
// @Tags         transactions
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "no está completada o dejaría stock negativo"
// @Router       /api/transactions/{id}/cancel [post]
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.CancelTransaction(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar transacción (revierte si estaba completada)
// @Tags         transactions
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Success      204
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteTransaction(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar transacciones con filtros
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        date_from   query  string  false  "Desde (2006-01-02 o RFC3339)"
// @Param        date_to     query  string  false  "Hasta (2006-01-02 o RFC3339)"
// @Param        type        query  string  false  "in | out | adjustment"
// @Param        status      query  string  false  "pending | completed | cancelled"
// @Param        product_id  query  string  false  "Producto"
// @Param        user_id     query  string  false  "Usuario"
// @Param        search      query  string  false  "Producto o notas"
// @Param        limit       query  int     false  "Límite"
// @Param        offset      query  int     false  "Offset"
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	dateFrom, err := parseDateQuery(c.Query("date_from"), false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_from inválido"})
	}
	dateTo, err := parseDateQuery(c.Query("date_to"), true)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_to inválido"})
	}
	limit, offset := parsePage(c)
	out, err := h.uc.ListTransactions(c.UserContext(), repository.TransactionFilter{
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Type:      c.Query("type"),
		Status:    c.Query("status"),
		ProductID: c.Query("product_id"),
		UserID:    c.Query("user_id"),
		Search:    c.Query("search"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Recent godoc
// @Summary      Últimas transacciones
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite (default 10)"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions/recent [get]
func (h *TransactionHandler) Recent(c *fiber.Ctx) error {
	out, err := h.uc.GetRecentTransactions(c.UserContext(), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByProduct godoc
// @Summary      Historial de un producto
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "Producto"
// @Param        limit      query  int     false  "Límite (default 20)"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions/product/{productId} [get]
func (h *TransactionHandler) ByProduct(c *fiber.Ctx) error {
	out, err := h.uc.GetTransactionsByProduct(c.UserContext(), c.Params("productId"), c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByUser godoc
// @Summary      Transacciones registradas por un usuario
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        userId  path   string  true   "Usuario"
// @Param        limit   query  int     false  "Límite (default 20)"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions/user/{userId} [get]
func (h *TransactionHandler) ByUser(c *fiber.Ctx) error {
	out, err := h.uc.GetTransactionsByUser(c.UserContext(), c.Params("userId"), c.QueryInt("limit", 20))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Rebuild godoc
// @Summary      Reconstruir el stock de un producto desde el log
// @Tags         transactions
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "Producto"
// @Success      200  {object}  dto.RebuildStockResponse
// @Router       /api/transactions/rebuild/{productId} [post]
func (h *TransactionHandler) Rebuild(c *fiber.Ctx) error {
	out, err := h.uc.RebuildStock(c.UserContext(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseDateQuery acepta fecha sola (2006-01-02) o RFC3339. Para el límite
// superior, la fecha sola cubre el día completo (fin de día).
func parseDateQuery(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
