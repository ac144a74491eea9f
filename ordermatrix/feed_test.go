package ordermatrix

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var testHeader = Header{
	OrderNo:   "1042",
	Date:      "2024-11-05",
	Contact:   "Ravi Textiles",
	Address:   "12 Market Road, Tirupur",
	Phone:     "9876543210",
	CreatedBy: "meena",
	Remarks:   "Deliver before Diwali",
}

func TestBuildScenario(t *testing.T) {
	doc, err := Build(scenarioItems(), testHeader, Options{PageSize: 10})
	require.NoError(t, err)

	h := testHeader
	want := &Document{
		Header:     testHeader,
		Columns:    []string{"30", "32"},
		PageSize:   10,
		GrandTotal: 10,
		Pages: []PageDescriptor{{
			Number:     1,
			TotalPages: 1,
			Columns:    []string{"30", "32"},
			Rows: []RowView{
				{Serial: 1, Brand: "A", Style: "S1", Quantities: []int{5, 3}, Total: 8},
				{Serial: 2, Brand: "B", Style: "S2", Quantities: []int{2, 0}, Total: 2},
			},
			Header: &h,
			Footer: &Footer{ColumnTotals: []int{7, 3}, GrandTotal: 10, Remarks: "Deliver before Diwali"},
		}},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "", doc.Pages[0].Rows[1].Cell(1))
	require.Equal(t, "2", doc.Pages[0].Rows[1].Cell(0))
}

func TestBuildEmptyInput(t *testing.T) {
	doc, err := Build([]LineItem{}, testHeader, Options{})
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)

	page := doc.Pages[0]
	require.Empty(t, page.Rows)
	require.Empty(t, page.Columns)
	require.True(t, page.IsFirst())
	require.True(t, page.IsLast())
	require.NotNil(t, page.Header)
	require.NotNil(t, page.Footer)
	require.Equal(t, 0, page.Footer.GrandTotal)
	require.Equal(t, 0, doc.GrandTotal)
}

func TestBuildHeaderAndFooterPlacement(t *testing.T) {
	items := make([]LineItem, 0, 25)
	for i := 0; i < 25; i++ {
		items = append(items, LineItem{Brand: fmt.Sprintf("B%02d", i), Style: "X", Size: "30", Quantity: i + 1})
	}

	doc, err := Build(items, testHeader, Options{PageSize: 10})
	require.NoError(t, err)
	require.Len(t, doc.Pages, 3)

	for i, page := range doc.Pages {
		require.Equal(t, i+1, page.Number)
		require.Equal(t, 3, page.TotalPages)
		require.Equal(t, i == 0, page.Header != nil, "page %d header", page.Number)
		require.Equal(t, i == 2, page.Footer != nil, "page %d footer", page.Number)
	}
	require.Equal(t, 11, doc.Pages[1].Rows[0].Serial)
	require.Equal(t, 25, doc.Pages[2].Rows[4].Serial)
	require.Equal(t, 325, doc.Pages[2].Footer.GrandTotal)
}

func TestBuildExactPageMultiple(t *testing.T) {
	items := make([]LineItem, 0, 20)
	for i := 0; i < 20; i++ {
		items = append(items, LineItem{Brand: "B", Style: fmt.Sprintf("S%02d", i), Size: "M", Quantity: 1})
	}

	doc, err := Build(items, testHeader, Options{PageSize: 10})
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	require.Len(t, doc.Pages[0].Rows, 10)
	require.Len(t, doc.Pages[1].Rows, 10)
}

func TestBuildColumnsStableAcrossPages(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	items := randomItems(rng, 200)

	doc, err := Build(items, testHeader, Options{PageSize: 3})
	require.NoError(t, err)
	require.Greater(t, len(doc.Pages), 1)
	for _, page := range doc.Pages {
		require.Equal(t, doc.Columns, page.Columns)
		for _, row := range page.Rows {
			require.Len(t, row.Quantities, len(doc.Columns))
		}
	}
}

func TestBuildPartitionsRowsInOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	items := randomItems(rng, 120)
	rows, _ := ExtractDimensions(items)

	doc, err := Build(items, testHeader, Options{PageSize: 4})
	require.NoError(t, err)

	var got []RowKey
	serial := 0
	for _, page := range doc.Pages {
		for _, row := range page.Rows {
			serial++
			require.Equal(t, serial, row.Serial)
			got = append(got, RowKey{Brand: row.Brand, Style: row.Style})
		}
	}
	require.Equal(t, rows, got)
}

func TestBuildIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	items := randomItems(rng, 90)

	first, err := Build(items, testHeader, Options{PageSize: 7})
	require.NoError(t, err)
	second, err := Build(items, testHeader, Options{PageSize: 7})
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	require.Equal(t, string(a), string(b))
}

func TestBuildJSONDropsRecordMissingSize(t *testing.T) {
	data := []byte(`[
		{"name": "A", "style": "S1", "size": "30", "qty": 5},
		{"name": "C", "style": "S9", "qty": 40},
		{"name": "A", "style": "S1", "size": "32", "qty": 3}
	]`)

	doc, err := BuildJSON(data, testHeader, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"30", "32"}, doc.Columns)
	require.Equal(t, 8, doc.GrandTotal)
	require.Len(t, doc.Pages[0].Rows, 1)
	require.Equal(t, "A", doc.Pages[0].Rows[0].Brand)
}

func TestBuildJSONRejectsNonList(t *testing.T) {
	_, err := BuildJSON([]byte(`{"details": []}`), testHeader, Options{})
	require.ErrorIs(t, err, ErrNotList)
}

func TestBuildSanitizesItems(t *testing.T) {
	items := []LineItem{
		{Brand: "A", Style: "S1", Size: "30", Quantity: -5},
		{Brand: "", Style: "", Size: "", Quantity: 3},
		{Brand: "A", Style: "S1", Size: " ", Quantity: 4},
		{Brand: "A", Style: "S1", Size: "32", Quantity: 2},
	}

	doc, err := Build(items, testHeader, Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"30", "32"}, doc.Columns)
	require.Equal(t, 2, doc.GrandTotal)
	require.Len(t, doc.Pages[0].Rows, 1)
	require.Equal(t, []int{0, 2}, doc.Pages[0].Rows[0].Quantities)
	require.Equal(t, []int{0, 2}, doc.Pages[0].Footer.ColumnTotals)
}

func TestBuildJSONIgnoresHugeQuantity(t *testing.T) {
	data := []byte(`[
		{"brand": "A", "style": "S1", "size": "30", "quantity": "1e19"},
		{"brand": "A", "style": "S1", "size": "30", "quantity": 5}
	]`)

	doc, err := BuildJSON(data, testHeader, Options{})
	require.NoError(t, err)
	require.Equal(t, 5, doc.GrandTotal)
	require.Equal(t, []int{5}, doc.Pages[0].Rows[0].Quantities)
}

func TestBuildRejectsNegativePageSize(t *testing.T) {
	_, err := Build(scenarioItems(), testHeader, Options{PageSize: -2})
	require.ErrorIs(t, err, ErrInvalidPageSize)
}

func TestRowViewCell(t *testing.T) {
	row := RowView{Quantities: []int{0, 12}}
	require.Equal(t, "", row.Cell(0))
	require.Equal(t, "12", row.Cell(1))
	require.Equal(t, "", row.Cell(5))
	require.Equal(t, "", row.Cell(-1))
}
