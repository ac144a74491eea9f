package ordermatrix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractDimensionsRowOrderIsFirstSeen(t *testing.T) {
	items := []LineItem{
		{Brand: "Zeta", Style: "9", Size: "32", Quantity: 1},
		{Brand: "Alpha", Style: "1", Size: "30", Quantity: 1},
		{Brand: "Zeta", Style: "9", Size: "30", Quantity: 1},
		{Brand: "Zeta", Style: "2", Size: "34", Quantity: 1},
	}

	rows, cols := ExtractDimensions(items)
	require.Equal(t, []RowKey{{"Zeta", "9"}, {"Alpha", "1"}, {"Zeta", "2"}}, rows)
	require.Equal(t, []ColumnKey{"30", "32", "34"}, cols)
}

func TestExtractDimensionsNumericSizes(t *testing.T) {
	items := []LineItem{
		{Brand: "A", Style: "1", Size: "100"},
		{Brand: "A", Style: "1", Size: "75"},
		{Brand: "A", Style: "1", Size: "90"},
		{Brand: "A", Style: "1", Size: "80"},
	}

	_, cols := ExtractDimensions(items)
	require.Equal(t, []ColumnKey{"75", "80", "90", "100"}, cols)
}

func TestExtractDimensionsAlphaSizesKeepEncounterOrder(t *testing.T) {
	items := []LineItem{
		{Brand: "A", Style: "1", Size: "XL"},
		{Brand: "A", Style: "1", Size: "S"},
		{Brand: "A", Style: "1", Size: "M"},
		{Brand: "A", Style: "1", Size: "S"},
	}

	_, cols := ExtractDimensions(items)
	require.Equal(t, []ColumnKey{"XL", "S", "M"}, cols)
}

func TestExtractDimensionsMixedSizesIsDeterministic(t *testing.T) {
	items := []LineItem{
		{Brand: "A", Style: "1", Size: "32"},
		{Brand: "A", Style: "1", Size: "XL"},
		{Brand: "A", Style: "1", Size: "30"},
	}

	_, first := ExtractDimensions(items)
	_, second := ExtractDimensions(items)
	require.Equal(t, first, second)
	require.ElementsMatch(t, []ColumnKey{"30", "32", "XL"}, first)
}

func TestExtractDimensionsEmpty(t *testing.T) {
	rows, cols := ExtractDimensions(nil)
	require.Empty(t, rows)
	require.Empty(t, cols)
}

func TestSizeLess(t *testing.T) {
	require.True(t, SizeLess("30", "32"))
	require.False(t, SizeLess("32", "30"))
	require.True(t, SizeLess("9.5", "10"))
	require.False(t, SizeLess("S", "M"))
	require.False(t, SizeLess("30", "XL"))
	require.False(t, SizeLess("XL", "30"))
}
