package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"sales-pulse/config"
	"sales-pulse/logging"
	"sales-pulse/models"
	"sales-pulse/ordermatrix"
	"sales-pulse/repository"
)

var testCompany = config.CompanyOptions{
	Name:    "ESSA GARMENTS PRIVATE LIMITED",
	Address: "4 Mill Street, Tirupur",
	GSTIN:   "33AAACE1234F1Z5",
}

var testHeader = ordermatrix.Header{
	OrderNo:   "1042",
	Date:      "05-11-2024",
	Contact:   "Ravi Textiles",
	Address:   "12 Market Road",
	Phone:     "9876543210",
	CreatedBy: "meena",
	Remarks:   "Deliver before Diwali",
}

func testLogger() *logrus.Entry {
	return logging.Component(logging.NewWithOutput("error", io.Discard), "test")
}

// scenarioRecords is the two-brand order used across the tests: A/S1 5+3, B/S2 2
func scenarioRecords() []ordermatrix.Record {
	return []ordermatrix.Record{
		{"brand": "A", "style": "S1", "size": "30", "quantity": 5},
		{"brand": "A", "style": "S1", "size": "32", "quantity": "3"},
		{"name": "B", "style": "S2", "size": "30", "qty": "2.00"},
		{"brand": "C", "style": "", "size": "30", "quantity": 9},
	}
}

func scenarioDocument(t *testing.T) *ordermatrix.Document {
	t.Helper()
	doc, err := ordermatrix.Build(ordermatrix.Normalize(scenarioRecords()), testHeader, ordermatrix.Options{})
	require.NoError(t, err)
	return doc
}

// manyRowsDocument has n rows with one size column
func manyRowsDocument(t *testing.T, n, pageSize int) *ordermatrix.Document {
	t.Helper()
	items := make([]ordermatrix.LineItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, ordermatrix.LineItem{Brand: fmt.Sprintf("B%02d", i), Style: "X", Size: "30", Quantity: i + 1})
	}
	doc, err := ordermatrix.Build(items, testHeader, ordermatrix.Options{PageSize: pageSize})
	require.NoError(t, err)
	return doc
}

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fakeOrders struct {
	forms map[string]*models.OrderForm
	calls int
}

func (f *fakeOrders) GetOrderForm(ctx context.Context, orderID string) (*models.OrderForm, error) {
	f.calls++
	form, ok := f.forms[orderID]
	if !ok {
		return nil, fmt.Errorf("%w: id=%s", repository.ErrOrderNotFound, orderID)
	}
	return form, nil
}

type fakeRenderer struct {
	pdf      []byte
	pages    map[int][]byte
	err      error
	lastHTML string
}

func (f *fakeRenderer) PrintPDF(ctx context.Context, html string) ([]byte, error) {
	f.lastHTML = html
	if f.err != nil {
		return nil, f.err
	}
	return f.pdf, nil
}

func (f *fakeRenderer) CapturePages(ctx context.Context, html string) (map[int][]byte, error) {
	f.lastHTML = html
	if f.err != nil {
		return nil, f.err
	}
	return f.pages, nil
}

type sentMail struct {
	to, orderNo, filename string
	pdf                   []byte
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (f *fakeMailer) SendOrderForm(ctx context.Context, to, orderNo, filename string, pdf []byte) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, sentMail{to: to, orderNo: orderNo, filename: filename, pdf: pdf})
	return nil
}

type uploadedFile struct {
	filename, mimeType string
	data               []byte
}

type fakeArchive struct {
	uploads []uploadedFile
}

func (f *fakeArchive) Upload(ctx context.Context, filename, mimeType string, data []byte) (string, string, error) {
	f.uploads = append(f.uploads, uploadedFile{filename: filename, mimeType: mimeType, data: data})
	id := fmt.Sprintf("file-%d", len(f.uploads))
	return id, "https://drive.example.com/" + id, nil
}
