package ordermatrix

import (
	"fmt"
	"strconv"
)

// Header is the order master block. Values are passed through untouched.
type Header struct {
	OrderNo   string `json:"orderNo"`
	Date      string `json:"date"`
	Contact   string `json:"contact"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	CreatedBy string `json:"createdBy"`
	Remarks   string `json:"remarks"`
}

// Footer closes the document on the last page
type Footer struct {
	ColumnTotals []int  `json:"columnTotals"`
	GrandTotal   int    `json:"grandTotal"`
	Remarks      string `json:"remarks"`
}

// RowView is a resolved pivot row as printed
type RowView struct {
	Serial     int    `json:"serial"`
	Brand      string `json:"brand"`
	Style      string `json:"style"`
	Quantities []int  `json:"quantities"`
	Total      int    `json:"total"`
}

// Cell returns the printed value of column i; zero prints blank
func (r RowView) Cell(i int) string {
	if i < 0 || i >= len(r.Quantities) || r.Quantities[i] == 0 {
		return ""
	}
	return strconv.Itoa(r.Quantities[i])
}

// PageDescriptor is everything a renderer needs to lay out one page.
// Header is set on the first page only, Footer on the last page only.
type PageDescriptor struct {
	Number     int       `json:"number"`
	TotalPages int       `json:"totalPages"`
	Columns    []string  `json:"columns"`
	Rows       []RowView `json:"rows"`
	Header     *Header   `json:"header,omitempty"`
	Footer     *Footer   `json:"footer,omitempty"`
}

// IsFirst reports whether this is the first page
func (p PageDescriptor) IsFirst() bool { return p.Number == 1 }

// IsLast reports whether this is the last page
func (p PageDescriptor) IsLast() bool { return p.Number == p.TotalPages }

// Document is the full render feed of one order
type Document struct {
	Header     Header           `json:"header"`
	Columns    []string         `json:"columns"`
	Pages      []PageDescriptor `json:"pages"`
	PageSize   int              `json:"pageSize"`
	GrandTotal int              `json:"grandTotal"`
}

// Options configures a pipeline run
type Options struct {
	// PageSize is the number of rows per page; 0 means DefaultPageSize
	PageSize int
}

func (o Options) pageSize() (int, error) {
	if o.PageSize == 0 {
		return DefaultPageSize, nil
	}
	if o.PageSize < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidPageSize, o.PageSize)
	}
	return o.PageSize, nil
}

// BuildJSON normalizes a raw JSON list of records and builds the document
func BuildJSON(data []byte, header Header, opts Options) (*Document, error) {
	items, err := NormalizeJSON(data)
	if err != nil {
		return nil, err
	}
	return Build(items, header, opts)
}

// Build runs pivot, pagination and feed assembly over normalized items.
// Items missing brand, style or size are dropped and out-of-range quantities
// count as 0, as Normalize would have done.
func Build(items []LineItem, header Header, opts Options) (*Document, error) {
	pageSize, err := opts.pageSize()
	if err != nil {
		return nil, err
	}
	items = sanitizeItems(items)

	matrix := Pivot(items)
	if err := matrix.Verify(items); err != nil {
		return nil, err
	}

	keys := make([]RowKey, len(matrix.Rows))
	byKey := make(map[RowKey]Row, len(matrix.Rows))
	for i, row := range matrix.Rows {
		keys[i] = row.Key
		byKey[row.Key] = row
	}

	pages, err := Paginate(keys, pageSize)
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(matrix.Columns))
	for i, c := range matrix.Columns {
		columns[i] = string(c)
	}

	doc := &Document{
		Header:     header,
		Columns:    columns,
		Pages:      make([]PageDescriptor, 0, len(pages)),
		PageSize:   pageSize,
		GrandTotal: matrix.GrandTotal,
	}
	for _, page := range pages {
		desc := PageDescriptor{
			Number:     page.Index + 1,
			TotalPages: len(pages),
			Columns:    columns,
			Rows:       make([]RowView, 0, len(page.Rows)),
		}
		for i, key := range page.Rows {
			row := byKey[key]
			desc.Rows = append(desc.Rows, RowView{
				Serial:     page.Index*pageSize + i + 1,
				Brand:      key.Brand,
				Style:      key.Style,
				Quantities: row.Quantities,
				Total:      row.Total,
			})
		}
		if page.First {
			h := header
			desc.Header = &h
		}
		if page.Last {
			desc.Footer = &Footer{
				ColumnTotals: matrix.ColumnTotals,
				GrandTotal:   matrix.GrandTotal,
				Remarks:      header.Remarks,
			}
		}
		doc.Pages = append(doc.Pages, desc)
	}
	return doc, nil
}
