package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"sales-pulse/config"
	"sales-pulse/ordermatrix"
)

// XLSXSheetName is the single sheet of the exported workbook
const XLSXSheetName = "Order Form"

// a4PaperSize is the OOXML paper size code for A4
const a4PaperSize = 9

// ExportOrderFormXLSX writes the document as a workbook laid out like the printed form.
// Each page starts with the table header, separated from the previous one by a page break.
func ExportOrderFormXLSX(company config.CompanyOptions, doc *ordermatrix.Document) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("document is nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", XLSXSheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	w := &sheetWriter{f: f, sheet: XLSXSheetName, row: 1}
	lastCol := len(doc.Columns) + 4

	w.write(bold, lastCol, company.Name)
	if company.Address != "" {
		w.write(0, 0, company.Address)
	}
	if company.GSTIN != "" {
		w.write(0, 0, "GSTIN : "+company.GSTIN)
	}
	w.write(bold, lastCol, "ORDER FORM")

	for _, page := range doc.Pages {
		if page.Number > 1 {
			w.pageBreak()
		}
		if h := page.Header; h != nil {
			w.write(0, 0, "FROM :", h.Contact, "", "Order No", h.OrderNo)
			w.write(0, 0, "", h.Address, "", "Date", h.Date)
			w.write(0, 0, "Phone :", h.Phone, "", "Prepared By", h.CreatedBy)
			w.row++
		}

		head := []any{"S No", "Brand", "Style"}
		for _, c := range page.Columns {
			head = append(head, c)
		}
		head = append(head, "Total")
		w.write(bold, lastCol, head...)

		for _, r := range page.Rows {
			values := []any{r.Serial, r.Brand, r.Style}
			for _, q := range r.Quantities {
				values = append(values, blankCell(q))
			}
			values = append(values, r.Total)
			w.write(0, 0, values...)
		}

		if ft := page.Footer; ft != nil {
			totals := []any{nil, nil, "Total"}
			for _, q := range ft.ColumnTotals {
				totals = append(totals, blankCell(q))
			}
			totals = append(totals, ft.GrandTotal)
			w.write(bold, lastCol, totals...)
			w.row++
			w.write(0, 0, "Remarks :", ft.Remarks)
		}
		w.write(0, 0, fmt.Sprintf("Page %d of %d", page.Number, page.TotalPages))
	}
	if w.err != nil {
		return nil, w.err
	}

	if err := f.SetColWidth(XLSXSheetName, "B", "B", 28); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	orientation, size := "landscape", a4PaperSize
	if err := f.SetPageLayout(XLSXSheetName, &excelize.PageLayoutOptions{
		Orientation: &orientation,
		Size:        &size,
	}); err != nil {
		return nil, fmt.Errorf("failed to set page layout: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func blankCell(q int) any {
	if q == 0 {
		return nil
	}
	return q
}

// sheetWriter appends rows and keeps the first error
type sheetWriter struct {
	f     *excelize.File
	sheet string
	row   int
	err   error
}

// write puts values on the next row; a non-zero style is applied up to styleCols columns
func (w *sheetWriter) write(style, styleCols int, values ...any) {
	if w.err != nil {
		return
	}
	start, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(w.sheet, start, &values); err != nil {
		w.err = fmt.Errorf("failed to write row %d: %w", w.row, err)
		return
	}
	if style != 0 && styleCols > 0 {
		end, err := excelize.CoordinatesToCellName(styleCols, w.row)
		if err != nil {
			w.err = err
			return
		}
		if err := w.f.SetCellStyle(w.sheet, start, end, style); err != nil {
			w.err = fmt.Errorf("failed to style row %d: %w", w.row, err)
			return
		}
	}
	w.row++
}

func (w *sheetWriter) pageBreak() {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.InsertPageBreak(w.sheet, cell); err != nil {
		w.err = fmt.Errorf("failed to insert page break: %w", err)
	}
}
