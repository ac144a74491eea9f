package ordermatrix

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDropsIncompleteRecords(t *testing.T) {
	items := Normalize([]Record{
		{"brand": "A", "style": "S1", "size": "30", "quantity": 5},
		{"brand": "A", "style": "S1", "quantity": 7},
		{"brand": "", "style": "S1", "size": "32", "quantity": 1},
		{"brand": "B", "style": "  ", "size": "32", "quantity": 1},
		{"brand": "B", "style": "S2", "size": nil, "quantity": 1},
	})

	require.Equal(t, []LineItem{{Brand: "A", Style: "S1", Size: "30", Quantity: 5}}, items)
}

func TestNormalizeFieldAliases(t *testing.T) {
	items := Normalize([]Record{
		{"name": "Essa", "style": "R-01", "size": "75", "qty": "12.000"},
		{"brand": "Lux", "name": "ignored", "style": "T-9", "size": 80.0, "qty": 3},
	})

	require.Equal(t, []LineItem{
		{Brand: "Essa", Style: "R-01", Size: "75", Quantity: 12},
		{Brand: "Lux", Style: "T-9", Size: "80", Quantity: 3},
	}, items)
}

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"int", 4, 4},
		{"float", 2.0, 2},
		{"decimal string", "5.00", 5},
		{"padded string", " 7 ", 7},
		{"rounds half up", "2.5", 3},
		{"rounds down", 2.4, 2},
		{"negative", -3, 0},
		{"negative string", "-1", 0},
		{"garbage", "abc", 0},
		{"empty", "", 0},
		{"bool", true, 0},
		{"json number", json.Number("9"), 9},
		{"at cap", json.Number("2147483647"), MaxQuantity},
		{"above cap", "2147483648", 0},
		{"exponent string", "1e19", 0},
		{"huge json number", json.Number("9223372036854775808"), 0},
		{"huge float", float64(1e20), 0},
		{"wraps uint64", "18446744073709551617", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ParseQuantity(tc.in))
		})
	}
}

func TestNormalizeJSON(t *testing.T) {
	data := []byte(`[
		{"name": "A", "style": "S1", "size": "30", "qty": "5"},
		{"name": "A", "style": "S1", "size": 32, "qty": 3},
		"not a record",
		null,
		{"name": "B", "style": "S2", "qty": 9}
	]`)

	items, err := NormalizeJSON(data)
	require.NoError(t, err)
	require.Equal(t, []LineItem{
		{Brand: "A", Style: "S1", Size: "30", Quantity: 5},
		{Brand: "A", Style: "S1", Size: "32", Quantity: 3},
	}, items)
}

func TestNormalizeJSONRejectsNonList(t *testing.T) {
	for _, payload := range []string{`{"name": "A"}`, `"items"`, `null`, `42`, `not json`} {
		_, err := NormalizeJSON([]byte(payload))
		require.ErrorIs(t, err, ErrNotList, payload)
	}
}

func TestNormalizeJSONHugeQuantity(t *testing.T) {
	items, err := NormalizeJSON([]byte(`[
		{"brand": "A", "style": "S1", "size": "30", "quantity": "1e19"},
		{"brand": "A", "style": "S1", "size": "30", "quantity": 5}
	]`))
	require.NoError(t, err)
	require.Equal(t, []LineItem{
		{Brand: "A", Style: "S1", Size: "30", Quantity: 0},
		{Brand: "A", Style: "S1", Size: "30", Quantity: 5},
	}, items)
}

func TestNormalizeJSONEmptyList(t *testing.T) {
	items, err := NormalizeJSON([]byte(`[]`))
	require.NoError(t, err)
	require.Empty(t, items)
}
