package models

import (
	"encoding/json"

	"sales-pulse/ordermatrix"
)

// OrderMaster represents the order header row as returned by the sales API
// Example: {"id": 1042, "date": "05-11-2024", "contact": "Ravi Textiles", "address": "12 Market Road", "phone": "9876543210", "remarks": "", "user": "meena"}
type OrderMaster struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Contact string `json:"contact"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Remarks string `json:"remarks"`
	User    string `json:"user"`
}

// MasterFromRecord reads a master row of uncertain shape (ids may be numbers)
func MasterFromRecord(rec ordermatrix.Record) OrderMaster {
	return OrderMaster{
		ID:      rec.Text("id", "order_no"),
		Date:    rec.Text("date"),
		Contact: rec.Text("contact"),
		Address: rec.Text("address"),
		Phone:   rec.Text("phone"),
		Remarks: rec.Text("remarks"),
		User:    rec.Text("user", "created_by"),
	}
}

// Header converts the master row into the order form header block
func (m OrderMaster) Header() ordermatrix.Header {
	return ordermatrix.Header{
		OrderNo:   m.ID,
		Date:      m.Date,
		Contact:   m.Contact,
		Address:   m.Address,
		Phone:     m.Phone,
		CreatedBy: m.User,
		Remarks:   m.Remarks,
	}
}

// OrderForm is everything needed to print one order: the header and its raw lines
type OrderForm struct {
	Header ordermatrix.Header   `json:"header"`
	Items  []ordermatrix.Record `json:"items"`
}

// BuildOrderFormRequest represents the request body for building a form from raw items
// Example: {"header": {"orderNo": "1042"}, "items": [{"name": "A", "style": "S1", "size": "30", "qty": "5"}], "pageSize": 10}
type BuildOrderFormRequest struct {
	Header   ordermatrix.Header `json:"header"`
	Items    json.RawMessage    `json:"items" validate:"required"`
	PageSize int                `json:"pageSize" validate:"gte=0,lte=100"`
}

// EmailOrderFormRequest represents the request body for mailing an order form
// Example: {"to": "orders@example.com"}
type EmailOrderFormRequest struct {
	To string `json:"to" validate:"omitempty,email"`
}

// PreviewPageLink points to one PNG page of a preview session
type PreviewPageLink struct {
	Page     int    `json:"page"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// PreviewResponse represents the response of a preview request
type PreviewResponse struct {
	SessionID  string            `json:"sessionId"`
	OrderNo    string            `json:"orderNo"`
	TotalPages int               `json:"totalPages"`
	Pages      []PreviewPageLink `json:"pages"`
}

// ArchiveResponse represents the response after archiving an order form
type ArchiveResponse struct {
	FileID   string `json:"fileId"`
	Filename string `json:"filename"`
	Link     string `json:"link,omitempty"`
}
