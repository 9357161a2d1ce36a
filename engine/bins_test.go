package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tenValues() RecordView {
	var rs []row
	for i := 0; i < 10; i++ {
		group := "even"
		if i%2 == 1 {
			group = "odd"
		}
		rs = append(rs, row{"v": i, "g": group})
	}
	return rows(rs...)
}

func TestBinEqualWidth(t *testing.T) {
	h, err := Bin(tenValues(), "v", "", BinConfig{Bins: 3})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 3, 6, 9}, h.Edges)
	assert.Equal(t, []any{0, 3, 6}, h.Labels())
	assert.Equal(t, []float64{3, 3, 4}, h.Frame.Column(0), "last bin is closed")
	assert.Equal(t, 3, h.Frame.Len())
}

func TestBinDefaultCount(t *testing.T) {
	h, err := Bin(tenValues(), "v", "", BinConfig{})
	require.NoError(t, err)
	assert.Equal(t, DefaultBins, h.Frame.Len())

	var total float64
	for _, c := range h.Frame.Column(0) {
		total += c
	}
	assert.Equal(t, 10.0, total)
}

func TestBinNormedIntegratesToOne(t *testing.T) {
	h, err := Bin(tenValues(), "v", "", BinConfig{Bins: 3, Normed: true})
	require.NoError(t, err)

	densities := h.Frame.Column(0)
	assert.InDeltaSlice(t, []float64{0.1, 0.1, 4.0 / 30}, densities, 1e-9)

	var area float64
	for _, d := range densities {
		area += d * 3
	}
	assert.InDelta(t, 1.0, area, 1e-9)
}

func TestBinExplicitEdges(t *testing.T) {
	h, err := Bin(tenValues(), "v", "", BinConfig{Edges: []float64{0, 5, 10}, Bins: 7})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 5, 10}, h.Edges)
	assert.Equal(t, []float64{5, 5}, h.Frame.Column(0))
}

func TestBinOutsideEdgesDropped(t *testing.T) {
	h, err := Bin(tenValues(), "v", "", BinConfig{Edges: []float64{2, 4}})
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, h.Frame.Column(0), "2, 3 and 4")
}

func TestBinByCategorySharesEdges(t *testing.T) {
	h, err := Bin(tenValues(), "v", "g", BinConfig{Bins: 3})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 3, 6, 9}, h.Edges)
	assert.Equal(t, []string{"even", "odd"}, h.Frame.Columns)
	// even: 0 2 | 4 | 6 8    odd: 1 | 3 5 | 7 9
	assert.Equal(t, []float64{2, 1, 2}, h.Frame.Column(0))
	assert.Equal(t, []float64{1, 2, 2}, h.Frame.Column(1))
	assert.Equal(t, []float64{3, 3, 4}, h.Frame.RowSums())
}

func TestBinConstantColumn(t *testing.T) {
	h, err := Bin(rows(row{"v": 4}, row{"v": 4}), "v", "", BinConfig{Bins: 2})
	require.NoError(t, err)

	assert.Len(t, h.Edges, 3)
	assert.Equal(t, []float64{0, 2}, h.Frame.Column(0))
}

func TestBinErrors(t *testing.T) {
	tests := []struct {
		name string
		x    string
		cfg  BinConfig
	}{
		{"missing x", "", BinConfig{}},
		{"negative bins", "v", BinConfig{Bins: -1}},
		{"single edge", "v", BinConfig{Edges: []float64{1}}},
		{"unsorted edges", "v", BinConfig{Edges: []float64{0, 5, 5}}},
		{"no numeric values", "g", BinConfig{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bin(tenValues(), tt.x, "", tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
