package ordermatrix

import (
	"sort"
	"strconv"
	"strings"
)

// RowKey identifies one pivot row
type RowKey struct {
	Brand string `json:"brand"`
	Style string `json:"style"`
}

// ColumnKey is a distinct size label
type ColumnKey string

// ExtractDimensions returns the row keys in first-seen order and the
// distinct size labels sorted by SizeLess.
func ExtractDimensions(items []LineItem) ([]RowKey, []ColumnKey) {
	rows := make([]RowKey, 0)
	columns := make([]ColumnKey, 0)
	seenRows := make(map[RowKey]bool)
	seenColumns := make(map[ColumnKey]bool)

	for _, item := range items {
		row := RowKey{Brand: item.Brand, Style: item.Style}
		if !seenRows[row] {
			seenRows[row] = true
			rows = append(rows, row)
		}
		col := ColumnKey(item.Size)
		if !seenColumns[col] {
			seenColumns[col] = true
			columns = append(columns, col)
		}
	}

	sort.SliceStable(columns, func(i, j int) bool {
		return SizeLess(columns[i], columns[j])
	})
	return rows, columns
}

// SizeLess orders two size labels numerically when both are numbers.
// Any pair involving a non-numeric label compares equal, so a stable sort
// keeps those labels in encounter order. With mixed labels ("30", "XL", "28")
// the result is best-effort and not guaranteed to be monotonic.
func SizeLess(a, b ColumnKey) bool {
	x, okA := sizeNumber(a)
	y, okB := sizeNumber(b)
	if !okA || !okB {
		return false
	}
	return x < y
}

func sizeNumber(c ColumnKey) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(string(c)), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
