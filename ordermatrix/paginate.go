package ordermatrix

import (
	"errors"
	"fmt"
)

// DefaultPageSize is the number of pivot rows on one printed page
const DefaultPageSize = 10

// ErrInvalidPageSize is returned for a page size that is not positive
var ErrInvalidPageSize = errors.New("page size must be positive")

// Page is a slice of consecutive rows handed to the renderer as one sheet
type Page struct {
	Index int      `json:"index"`
	Rows  []RowKey `json:"rows"`
	First bool     `json:"first"`
	Last  bool     `json:"last"`
}

// Paginate splits rows into consecutive chunks of at most pageSize rows.
// No rows still yield one empty page so the header and totals get printed.
func Paginate(rows []RowKey, pageSize int) ([]Page, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPageSize, pageSize)
	}

	if len(rows) == 0 {
		return []Page{{Index: 0, Rows: []RowKey{}, First: true, Last: true}}, nil
	}

	count := (len(rows) + pageSize - 1) / pageSize
	pages := make([]Page, 0, count)
	for i := 0; i < len(rows); i += pageSize {
		end := i + pageSize
		if end > len(rows) {
			end = len(rows)
		}
		pages = append(pages, Page{
			Index: len(pages),
			Rows:  rows[i:end:end],
		})
	}
	pages[0].First = true
	pages[len(pages)-1].Last = true
	return pages, nil
}
