// Package pdf implementa el reporte tabular de transacciones de stock.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + rango de fechas                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | Tipo | Cant | Antes→Después |    │
//	│         Usuario | Estado | Notas                            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de transacciones del período                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Almacen-api/internal/application/reporting"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 0, Green: 120, Blue: 60}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ reporting.TransactionsPDFGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reporting.TransactionsPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateTransactionsPDF genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateTransactionsPDF(
	_ context.Context,
	from, to time.Time,
	rows []repository.TransactionRow,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de Transacciones de Stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(from, to))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(detailRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(rows)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y rango de fechas (der).
func headerRow(from, to time.Time) core.Row {
	rango := from.Format("02/01/2006") + " — " + to.Format("02/01/2006")
	return row.New(14).Add(
		col.New(7).Add(
			text.New("Reporte de Transacciones de Stock", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Período", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorGray, Top: 2,
			}),
			text.New(rango, props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Tipo", 1, align.Center),
		h("Cant.", 1, align.Right),
		h("Stock", 2, align.Center),
		h("Usuario", 2, align.Left),
		h("Estado", 1, align.Center),
	)
}

// detailRow: una fila por transacción. Las notas, si existen, no caben en la
// tabla y se omiten del PDF (están en el listado HTML).
func detailRow(r repository.TransactionRow) core.Row {
	return row.New(6).Add(
		col.New(2).Add(text.New(
			r.CreatedAt.Format("02/01/2006 15:04"),
			props.Text{Size: 7, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(3).Add(text.New(
			r.ProductName,
			props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(1).Add(text.New(
			typeLabel(r.Type),
			props.Text{Size: 7.5, Align: align.Center, Top: 1, Color: typeColor(r.Type)},
		)),
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", r.Quantity),
			props.Text{Size: 7.5, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(2).Add(text.New(
			fmt.Sprintf("%d → %d", r.QuantityBefore, r.QuantityAfter),
			props.Text{Size: 7.5, Align: align.Center, Top: 1},
		)),
		col.New(2).Add(text.New(
			r.UserName,
			props.Text{Size: 7.5, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(1).Add(text.New(
			statusLabel(r.Status),
			props.Text{Size: 7.5, Align: align.Center, Top: 1, Color: statusColor(r.Status)},
		)),
	)
}

// footerRow: total de filas del período.
func footerRow(total int) core.Row {
	return row.New(8).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("Total de transacciones en el período: %d", total),
			props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2, Right: 1},
		)),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func typeLabel(t string) string {
	switch t {
	case entity.TransactionTypeIn:
		return "Entrada"
	case entity.TransactionTypeOut:
		return "Salida"
	case entity.TransactionTypeAdjustment:
		return "Ajuste"
	}
	return t
}

func typeColor(t string) *props.Color {
	switch t {
	case entity.TransactionTypeIn:
		return colorGreen
	case entity.TransactionTypeOut:
		return colorRed
	}
	return colorPrimary
}

func statusLabel(s string) string {
	switch s {
	case entity.TransactionStatusPending:
		return "Pendiente"
	case entity.TransactionStatusCompleted:
		return "Completada"
	case entity.TransactionStatusCancelled:
		return "Cancelada"
	}
	return s
}

func statusColor(s string) *props.Color {
	switch s {
	case entity.TransactionStatusCompleted:
		return colorGreen
	case entity.TransactionStatusCancelled:
		return colorRed
	}
	return colorGray
}
