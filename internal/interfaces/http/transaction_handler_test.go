package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/ledger"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos: el handler se prueba contra el motor del libro real sobre
// repos en memoria (la lógica fina del motor tiene su propia suite).
// ──────────────────────────────────────────────────────────────────────────────

const handlerTestProductID = "00000000-0000-0000-0000-0000000000aa"

type memTxRepo struct {
	byID map[string]*entity.StockTransaction
}

func (r *memTxRepo) Create(tx *entity.StockTransaction) error {
	cp := *tx
	r.byID[tx.ID] = &cp
	return nil
}

func (r *memTxRepo) GetByID(id string) (*entity.StockTransaction, error) {
	tx, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *tx
	return &cp, nil
}

func (r *memTxRepo) UpdateStatus(id, status string) error {
	if tx, ok := r.byID[id]; ok {
		tx.Status = status
	}
	return nil
}

func (r *memTxRepo) Delete(id string) error { delete(r.byID, id); return nil }

func (r *memTxRepo) List(repository.TransactionFilter) ([]repository.TransactionRow, error) {
	return nil, nil
}
func (r *memTxRepo) Count(repository.TransactionFilter) (int64, error)   { return 0, nil }
func (r *memTxRepo) ListRecent(int) ([]repository.TransactionRow, error) { return nil, nil }
func (r *memTxRepo) ListByProduct(string, int) ([]repository.TransactionRow, error) {
	return nil, nil
}
func (r *memTxRepo) ListByUser(string, int) ([]repository.TransactionRow, error) {
	return nil, nil
}
func (r *memTxRepo) Stats() (*repository.TransactionStats, error) {
	return &repository.TransactionStats{}, nil
}
func (r *memTxRepo) SumCompletedDeltas(string) (int64, error) { return 0, nil }

type memProductRepo struct {
	product *entity.Product
}

func (r *memProductRepo) Create(*entity.Product) error { return nil }

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if r.product == nil || r.product.ID != id {
		return nil, nil
	}
	cp := *r.product
	return &cp, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProductRepo) Update(*entity.Product) error { return nil }

func (r *memProductRepo) UpdateStock(_ string, quantity int64) error {
	r.product.StockQuantity = quantity
	return nil
}

func (r *memProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Stats(int64) (*repository.ProductStats, error) {
	return &repository.ProductStats{}, nil
}
func (r *memProductRepo) Delete(string) error { return nil }

type memTxRunner struct {
	txRepo      *memTxRepo
	productRepo *memProductRepo
}

func (r *memTxRunner) Run(_ context.Context, fn func(
	txRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.txRepo, r.productRepo)
}

// buildTransactionApp monta las rutas de transacciones con auth real y un
// libro sobre repos en memoria.
func buildTransactionApp(stock int64) (*fiber.App, *memProductRepo) {
	txRepo := &memTxRepo{byID: map[string]*entity.StockTransaction{}}
	productRepo := &memProductRepo{product: &entity.Product{
		ID: handlerTestProductID, Name: "Café molido", StockQuantity: stock,
	}}
	runner := &memTxRunner{txRepo: txRepo, productRepo: productRepo}
	uc := ledger.NewLedgerUseCase(runner, txRepo, productRepo)
	h := apphttp.NewTransactionHandler(uc)

	app := fiber.New()
	g := app.Group("/api/transactions", apphttp.AuthMiddleware(testJWTSecret))
	warehouse := apphttp.RequireRole("admin", "bodeguero")
	g.Post("", warehouse, h.Create)
	g.Post("/:id/cancel", warehouse, h.Cancel)
	return app, productRepo
}

func postJSON(t *testing.T, app *fiber.App, path, token, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestTransactionHandler_CreateEntrada(t *testing.T) {
	app, productRepo := buildTransactionApp(100)

	resp := postJSON(t, app, "/api/transactions", tokenForRole(t, "bodeguero"),
		`{"product_id":"`+handlerTestProductID+`","type":"in","quantity":50}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.TransactionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, int64(100), out.QuantityBefore)
	assert.Equal(t, int64(150), out.QuantityAfter)
	assert.Equal(t, "completed", out.Status)
	assert.Equal(t, int64(150), productRepo.product.StockQuantity)
}

func TestTransactionHandler_SalidaSinStockRetorna409(t *testing.T) {
	app, productRepo := buildTransactionApp(20)

	resp := postJSON(t, app, "/api/transactions", tokenForRole(t, "admin"),
		`{"product_id":"`+handlerTestProductID+`","type":"out","quantity":200}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, int64(20), productRepo.product.StockQuantity, "rechazo sin efecto")
}

func TestTransactionHandler_TipoInvalidoRetorna400(t *testing.T) {
	app, _ := buildTransactionApp(20)

	resp := postJSON(t, app, "/api/transactions", tokenForRole(t, "admin"),
		`{"product_id":"`+handlerTestProductID+`","type":"transfer","quantity":5}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTransactionHandler_ProductoInexistenteRetorna404(t *testing.T) {
	app, _ := buildTransactionApp(20)

	resp := postJSON(t, app, "/api/transactions", tokenForRole(t, "admin"),
		`{"product_id":"otro","type":"in","quantity":5}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTransactionHandler_ContadorNoPuedeCrear(t *testing.T) {
	app, _ := buildTransactionApp(20)

	resp := postJSON(t, app, "/api/transactions", tokenForRole(t, "contador"),
		`{"product_id":"`+handlerTestProductID+`","type":"in","quantity":5}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTransactionHandler_CancelInexistenteRetorna404(t *testing.T) {
	app, _ := buildTransactionApp(20)

	resp := postJSON(t, app, "/api/transactions/no-existe/cancel", tokenForRole(t, "admin"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTransactionHandler_CancelRevierteStock(t *testing.T) {
	app, productRepo := buildTransactionApp(100)

	resp := postJSON(t, app, "/api/transactions", tokenForRole(t, "bodeguero"),
		`{"product_id":"`+handlerTestProductID+`","type":"in","quantity":50}`)
	var created dto.TransactionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.Equal(t, int64(150), productRepo.product.StockQuantity)

	resp = postJSON(t, app, "/api/transactions/"+created.ID+"/cancel", tokenForRole(t, "bodeguero"), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, int64(100), productRepo.product.StockQuantity)
}
