package export

import (
	"encoding/csv"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Jkennedy2004/StokyGesti-n/internal/finance"
)

// Amounts are printed with Spanish number formatting, matching the
// locale of the rest of the API surface.
var printer = message.NewPrinter(language.Spanish)

func formatAmount(v float64) string {
	return printer.Sprintf("%.2f", v)
}

func formatPercent(v float64) string {
	return printer.Sprintf("%.2f%%", v)
}

// WriteStatementCSV serialises the financial statement as CSV rows.
func WriteStatementCSV(w io.Writer, st finance.Statement) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Concepto", "Valor"}); err != nil {
		return err
	}
	records := [][]string{
		{"Ingresos totales", formatAmount(st.TotalRevenue)},
		{"Costo de materiales", formatAmount(st.MaterialsCost)},
		{"Gastos operativos", formatAmount(st.OperatingExpenses)},
		{"Costo total", formatAmount(st.TotalCost)},
		{"Costo de produccion de ventas", formatAmount(st.ProductionCostOfSales)},
		{"Ganancia bruta", formatAmount(st.GrossProfit)},
		{"Ganancia neta", formatAmount(st.NetProfit)},
		{"Margen bruto", formatPercent(st.GrossMarginPercent)},
		{"Margen neto", formatPercent(st.NetMarginPercent)},
		{"ROI", formatPercent(st.ROIPercent)},
		{"Punto de equilibrio (ventas)", formatAmount(st.BreakEvenSales)},
		{"Gastos fijos", formatAmount(st.FixedExpenses)},
		{"Gastos variables", formatAmount(st.VariableExpenses)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteProfitabilityCSV emits the per-product ranking as CSV.
func WriteProfitabilityCSV(w io.Writer, ranking []finance.ProductProfitability) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Producto", "Categoria", "Unidades", "Ingresos", "Costo", "Ganancia", "Margen"}); err != nil {
		return err
	}
	for _, p := range ranking {
		if err := writer.Write([]string{
			p.Name,
			p.Category,
			formatAmount(p.UnitsSold),
			formatAmount(p.Revenue),
			formatAmount(p.ProductionCost),
			formatAmount(p.Profit),
			formatPercent(p.MarginPercent),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
