package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frameOf(labels []string, values ...float64) *Frame {
	f := &Frame{Index: make([]Key, len(labels)), Values: make([][]float64, len(labels))}
	for i, l := range labels {
		f.Index[i] = LabelKey(l)
		f.Values[i] = []float64{values[i]}
	}
	return f
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		isIndex bool
	}{
		{"", "index", true},
		{"index", "index", true},
		{"values", "values", false},
		{"mean", "mean", false},
		{"50%", "50%", false},
		{"2.5", "2.5", false},
		{"-10", "-10", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			k, err := ParseSortKey(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k.String())
			assert.Equal(t, tt.isIndex, k.IsIndex())
		})
	}

	_, err := ParseSortKey("alphabetical")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSortByIndex(t *testing.T) {
	f := frameOf([]string{"b", "c", "a"}, 1, 2, 3)

	require.NoError(t, sortFrame(f, ByIndex(), "", true))
	assert.Equal(t, []any{"a", "b", "c"}, f.Labels())
	assert.Equal(t, []float64{3, 1, 2}, f.Column(0), "values follow their keys")

	require.NoError(t, sortFrame(f, ByIndex(), "", true))
	assert.Equal(t, []any{"a", "b", "c"}, f.Labels(), "idempotent")

	require.NoError(t, sortFrame(f, ByIndex(), "", false))
	assert.Equal(t, []any{"c", "b", "a"}, f.Labels())
}

func TestSortShiftOnlyAffectsOrdering(t *testing.T) {
	f := frameOf([]string{"a", "b", "c"}, 1, 5, 3)

	require.NoError(t, sortFrame(f, ByStatistic("mean"), "", true))
	assert.Equal(t, []any{"a", "c", "b"}, f.Labels())
	assert.Equal(t, []float64{1, 3, 5}, f.Column(0), "values are not shifted")

	require.NoError(t, sortFrame(f, ByConstant(100), "", false))
	assert.Equal(t, []any{"b", "c", "a"}, f.Labels())

	calls := 0
	shift := func(values []float64) float64 {
		calls++
		return values[0]
	}
	require.NoError(t, sortFrame(f, ByShift(shift), "", true))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []any{"a", "c", "b"}, f.Labels())
}

func TestSortPutsNaNLast(t *testing.T) {
	f := frameOf([]string{"a", "b", "c"}, math.NaN(), 1, 2)

	require.NoError(t, sortFrame(f, ByValues(), "", false))
	assert.Equal(t, []any{"c", "b", "a"}, f.Labels())

	require.NoError(t, sortFrame(f, ByValues(), "", true))
	assert.Equal(t, []any{"b", "c", "a"}, f.Labels())
}

func TestSortBySubCategory(t *testing.T) {
	f := &Frame{
		Index:   []Key{LabelKey("a"), LabelKey("b")},
		Columns: []string{"u", "v"},
		Values:  [][]float64{{1, 9}, {2, 3}},
	}

	require.NoError(t, sortFrame(f, ByValues(), "v", true))
	assert.Equal(t, []any{"b", "a"}, f.Labels())

	err := sortFrame(f, ByValues(), "", true)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	err = sortFrame(f, ByValues(), "w", true)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestSortKeyValidation(t *testing.T) {
	assert.ErrorIs(t, ByShift(nil).validate(), ErrInvalidConfig)
	assert.ErrorIs(t, ByStatistic("mode").validate(), ErrInvalidConfig)
	assert.NoError(t, ByStatistic("75%").validate())
	assert.NoError(t, SortKey{}.validate())
	assert.True(t, SortKey{}.IsIndex(), "zero value sorts by index")
}
