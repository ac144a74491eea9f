package ordermatrix

import (
	"errors"
	"fmt"
)

// ErrConservation signals that pivoted quantities do not add up to the input.
// It always indicates a bug in the pivot, never bad data.
var ErrConservation = errors.New("pivot totals do not match line item totals")

// Row is one pivot row. Quantities is aligned with Matrix.Columns.
type Row struct {
	Key        RowKey `json:"key"`
	Quantities []int  `json:"quantities"`
	Total      int    `json:"total"`
}

// Matrix is the size-by-(brand, style) pivot of an order
type Matrix struct {
	Columns      []ColumnKey `json:"columns"`
	Rows         []Row       `json:"rows"`
	ColumnTotals []int       `json:"columnTotals"`
	GrandTotal   int         `json:"grandTotal"`
}

type cellKey struct {
	row RowKey
	col ColumnKey
}

// Pivot resolves a quantity for every (row, column) pair.
// Items hitting the same pair are summed; absent pairs are 0.
func Pivot(items []LineItem) Matrix {
	rowKeys, columns := ExtractDimensions(items)

	cells := make(map[cellKey]int, len(items))
	for _, item := range items {
		k := cellKey{row: RowKey{Brand: item.Brand, Style: item.Style}, col: ColumnKey(item.Size)}
		cells[k] += item.Quantity
	}

	m := Matrix{
		Columns:      columns,
		Rows:         make([]Row, 0, len(rowKeys)),
		ColumnTotals: make([]int, len(columns)),
	}
	for _, key := range rowKeys {
		row := Row{Key: key, Quantities: make([]int, len(columns))}
		for i, col := range columns {
			qty := cells[cellKey{row: key, col: col}]
			row.Quantities[i] = qty
			row.Total += qty
			m.ColumnTotals[i] += qty
		}
		m.GrandTotal += row.Total
		m.Rows = append(m.Rows, row)
	}
	return m
}

// Verify checks the conservation law against the items the matrix was built from
func (m Matrix) Verify(items []LineItem) error {
	want := 0
	for _, item := range items {
		want += item.Quantity
	}
	if m.GrandTotal != want {
		return fmt.Errorf("%w: grand total %d, line items %d", ErrConservation, m.GrandTotal, want)
	}

	rowSum := 0
	for _, row := range m.Rows {
		cellSum := 0
		for _, qty := range row.Quantities {
			cellSum += qty
		}
		if cellSum != row.Total {
			return fmt.Errorf("%w: row %s/%s cells %d, total %d", ErrConservation, row.Key.Brand, row.Key.Style, cellSum, row.Total)
		}
		rowSum += row.Total
	}
	if rowSum != want {
		return fmt.Errorf("%w: row totals %d, line items %d", ErrConservation, rowSum, want)
	}

	colSum := 0
	for _, total := range m.ColumnTotals {
		colSum += total
	}
	if colSum != want {
		return fmt.Errorf("%w: column totals %d, line items %d", ErrConservation, colSum, want)
	}
	return nil
}
