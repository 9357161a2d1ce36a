package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/chartkit/engine"
)

// Sample finance CSV
var financeCSV = []byte(`Month,Location,Category,Currency,Amount,Year
Jan-2026,Singapore,Income,SGD,8500.00,2026
Jan-2026,Singapore,Expense,SGD,2200.00,2026
Jan-2026,India,Income,INR,,2026
Feb-2026,Singapore,Expense,SGD,49.90,2026
`)

func TestParseCSVClassifiesColumns(t *testing.T) {
	records, keys, err := ParseCSV(financeCSV)
	require.NoError(t, err)

	assert.Equal(t, []string{"month", "location", "category", "currency", "amount", "year"}, keys)
	require.Len(t, records, 4)

	first := records[0]
	assert.Equal(t, "Jan-2026", first.Dimensions["month"])
	assert.Equal(t, "Singapore", first.Dimensions["location"])
	assert.Equal(t, 8500.0, first.Measures["amount"])
	assert.Equal(t, 2026.0, first.Measures["year"])

	_, ok := records[2].Measures["amount"]
	assert.False(t, ok, "empty cell is missing, not zero")
}

func TestParseCSVForcedDimensions(t *testing.T) {
	records, _, err := ParseCSV(financeCSV, "Year")
	require.NoError(t, err)

	assert.Equal(t, "2026", records[0].Dimensions["year"])
	_, ok := records[0].Measures["year"]
	assert.False(t, ok)
}

func TestParseCSVViewFeedsEngine(t *testing.T) {
	view, _, err := ParseCSVView(financeCSV)
	require.NoError(t, err)

	chart, err := engine.Build(view, engine.BarLineConfig{
		Type: engine.KindBar, X: "category", Y: "amount", How: "sum",
	})
	require.NoError(t, err)

	assert.Equal(t, []any{"Expense", "Income"}, chart.XAxis.Data)
	assert.Equal(t, engine.Data{2249.9, 8500}, chart.Series[0].Data)
}

func TestParseCSVErrors(t *testing.T) {
	_, _, err := ParseCSV(nil)
	assert.ErrorIs(t, err, ErrNoHeader)

	_, _, err = ParseCSV([]byte("a,b\n\"unterminated,1\n"))
	assert.Error(t, err)
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Story Points":     "story_points",
		"Time-Spent Hours": "time_spent_hours",
		"amount":           "amount",
	}
	for in, want := range tests {
		assert.Equal(t, want, toSnakeCase(in), in)
	}
}
