package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Jkennedy2004/StokyGesti-n/internal/finance"
)

func TestWriteStatementCSV(t *testing.T) {
	st := finance.Statement{TotalRevenue: 200, NetProfit: 70, NetMarginPercent: 35}
	buf := &bytes.Buffer{}
	require.NoError(t, WriteStatementCSV(buf, st))

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 14)
	require.Equal(t, []string{"Concepto", "Valor"}, records[0])
	require.Equal(t, "Ingresos totales", records[1][0])
}

func TestWriteProfitabilityCSV(t *testing.T) {
	ranking := []finance.ProductProfitability{
		{ProductID: uuid.New(), Name: "Pulsera", Category: "joyeria", UnitsSold: 3, Revenue: 150, Profit: 90},
	}
	buf := &bytes.Buffer{}
	require.NoError(t, WriteProfitabilityCSV(buf, ranking))

	reader := csv.NewReader(bytes.NewReader(buf.Bytes()))
	records, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "Pulsera", records[1][0])
}
