package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"sales-pulse/config"
	"sales-pulse/models"
	"sales-pulse/ordermatrix"
	"sales-pulse/repository"
	"sales-pulse/utils"
)

// Output formats
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
	FormatJSON = "json"
)

// Formats lists the formats Render accepts
var Formats = []string{FormatHTML, FormatPDF, FormatXLSX, FormatJSON}

var contentTypes = map[string]string{
	FormatHTML: "text/html; charset=utf-8",
	FormatPDF:  "application/pdf",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatJSON: "application/json",
}

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrMailDisabled      = errors.New("mail delivery is not configured")
	ErrArchiveDisabled   = errors.New("archiving is not configured")
	ErrNoRecipient       = errors.New("no recipient given and MAIL_TO is empty")
	ErrInvalidPreview    = errors.New("invalid preview image")
)

// PreviewPagePath is where a stored preview page can be downloaded
const PreviewPagePath = "/admin/order-forms/png-page"

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

// RenderedFile is a rendered order form ready to be served or stored
type RenderedFile struct {
	Data        []byte
	ContentType string
	Filename    string
}

// OrderFormDeps are the collaborators of OrderFormService. Mailer and Archive may be nil.
type OrderFormDeps struct {
	Orders   repository.OrderRepositoryInterface
	Renderer PageRendererInterface
	Store    DocumentStoreInterface
	Mailer   MailerInterface
	Archive  ArchiveInterface
}

// OrderFormSettings holds the configuration OrderFormService needs
type OrderFormSettings struct {
	Company    config.CompanyOptions
	PageSize   int
	PreviewTTL time.Duration
	DefaultTo  string
}

// OrderFormService builds and renders order forms
type OrderFormService struct {
	deps     OrderFormDeps
	settings OrderFormSettings
	logger   *logrus.Entry
	newID    func() string
}

// NewOrderFormService creates a new OrderFormService
func NewOrderFormService(deps OrderFormDeps, settings OrderFormSettings, logger *logrus.Entry) *OrderFormService {
	return &OrderFormService{
		deps:     deps,
		settings: settings,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// IsSupportedFormat reports whether Render accepts format
func IsSupportedFormat(format string) bool {
	_, ok := contentTypes[format]
	return ok
}

// BuildDocument loads an order and runs it through the matrix pipeline
func (s *OrderFormService) BuildDocument(ctx context.Context, orderID string) (*ordermatrix.Document, error) {
	form, err := s.deps.Orders.GetOrderForm(ctx, orderID)
	if err != nil {
		return nil, err
	}

	items := ordermatrix.Normalize(form.Items)
	if dropped := len(form.Items) - len(items); dropped > 0 {
		s.logger.WithFields(logrus.Fields{"order_id": orderID, "dropped": dropped}).Warn("⚠️  BuildDocument: dropped malformed lines")
	}

	doc, err := ordermatrix.Build(items, form.Header, ordermatrix.Options{PageSize: s.settings.PageSize})
	if err != nil {
		return nil, fmt.Errorf("failed to build order form %s: %w", orderID, err)
	}
	orderFormPages.Observe(float64(len(doc.Pages)))

	s.logger.WithFields(logrus.Fields{
		"order_id":    orderID,
		"columns":     len(doc.Columns),
		"pages":       len(doc.Pages),
		"grand_total": doc.GrandTotal,
	}).Info("✓ BuildDocument: order form built")
	return doc, nil
}

// BuildFromJSON builds a document from a raw JSON list of line records.
// pageSize 0 falls back to the configured page size.
func (s *OrderFormService) BuildFromJSON(header ordermatrix.Header, items []byte, pageSize int) (*ordermatrix.Document, error) {
	if pageSize == 0 {
		pageSize = s.settings.PageSize
	}
	doc, err := ordermatrix.BuildJSON(items, header, ordermatrix.Options{PageSize: pageSize})
	if err != nil {
		return nil, err
	}
	orderFormPages.Observe(float64(len(doc.Pages)))
	return doc, nil
}

// RenderHTML renders the printable HTML of a document
func (s *OrderFormService) RenderHTML(doc *ordermatrix.Document) (string, error) {
	return RenderOrderFormHTML(s.settings.Company, doc)
}

// Render loads an order and renders it in format
func (s *OrderFormService) Render(ctx context.Context, orderID, format string) (*RenderedFile, error) {
	if !IsSupportedFormat(format) {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnsupportedFormat, format, strings.Join(Formats, ", "))
	}
	doc, err := s.BuildDocument(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.RenderDocument(ctx, doc, format)
}

// RenderDocument renders an already built document in format
func (s *OrderFormService) RenderDocument(ctx context.Context, doc *ordermatrix.Document, format string) (file *RenderedFile, err error) {
	contentType, ok := contentTypes[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnsupportedFormat, format, strings.Join(Formats, ", "))
	}

	start := time.Now()
	defer func() {
		orderFormRenders.WithLabelValues(format, resultLabel(err)).Inc()
		orderFormRenderLatency.WithLabelValues(format).Observe(time.Since(start).Seconds())
	}()

	var data []byte
	switch format {
	case FormatJSON:
		data, err = json.MarshalIndent(doc, "", "  ")
	case FormatXLSX:
		data, err = ExportOrderFormXLSX(s.settings.Company, doc)
	case FormatHTML, FormatPDF:
		var html string
		html, err = s.RenderHTML(doc)
		if err != nil {
			break
		}
		if format == FormatHTML {
			data = []byte(html)
			break
		}
		data, err = s.deps.Renderer.PrintPDF(ctx, html)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", format, err)
	}

	return &RenderedFile{
		Data:        data,
		ContentType: contentType,
		Filename:    utils.OrderFormFilename(doc.Header.OrderNo, format),
	}, nil
}

// Preview screenshots every page and keeps the images for the preview TTL
func (s *OrderFormService) Preview(ctx context.Context, orderID string) (*models.PreviewResponse, error) {
	doc, err := s.BuildDocument(ctx, orderID)
	if err != nil {
		return nil, err
	}
	html, err := s.RenderHTML(doc)
	if err != nil {
		return nil, err
	}

	pages, err := s.deps.Renderer.CapturePages(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("failed to capture pages: %w", err)
	}

	// session ids look like <orderNo>_<uuid> so page downloads can be named
	sessionID := utils.SanitizeFilenamePart(doc.Header.OrderNo) + "_" + s.newID()
	if err := s.deps.Store.Put(ctx, sessionID, pages, s.settings.PreviewTTL); err != nil {
		return nil, fmt.Errorf("failed to store preview: %w", err)
	}

	resp := &models.PreviewResponse{
		SessionID:  sessionID,
		OrderNo:    doc.Header.OrderNo,
		TotalPages: len(pages),
		Pages:      make([]models.PreviewPageLink, 0, len(pages)),
	}
	for _, n := range pageNumbers(pages) {
		resp.Pages = append(resp.Pages, models.PreviewPageLink{
			Page:     n,
			URL:      fmt.Sprintf("%s?session=%s&page=%d", PreviewPagePath, sessionID, n),
			Filename: utils.OrderFormPageFilename(doc.Header.OrderNo, n, len(pages), "png"),
		})
	}

	s.logger.WithFields(logrus.Fields{"order_id": orderID, "session": sessionID, "pages": len(pages)}).Info("🖼️  Preview: pages stored")
	return resp, nil
}

// PreviewPage returns one stored page. size "" returns the PNG screenshot,
// "thumb" or "medium" a scaled JPEG.
func (s *OrderFormService) PreviewPage(ctx context.Context, sessionID string, page int, size string) (*RenderedFile, error) {
	pages, err := s.deps.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	data, ok := pages[page]
	if !ok {
		return nil, fmt.Errorf("%w: page %d", ErrDocumentNotFound, page)
	}
	if !bytes.HasPrefix(data, pngSignature) {
		return nil, fmt.Errorf("%w: page %d is not a PNG", ErrInvalidPreview, page)
	}

	orderNo := sessionID
	if i := strings.LastIndex(sessionID, "_"); i >= 0 {
		orderNo = sessionID[:i]
	}

	if size == "" {
		return &RenderedFile{
			Data:        data,
			ContentType: "image/png",
			Filename:    utils.OrderFormPageFilename(orderNo, page, len(pages), "png"),
		}, nil
	}

	optimized, err := OptimizePreview(data, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPreview, err)
	}
	return &RenderedFile{
		Data:        optimized,
		ContentType: "image/jpeg",
		Filename:    utils.OrderFormPageFilename(orderNo, page, len(pages), "jpg"),
	}, nil
}

// EmailOrderForm renders the PDF and mails it. An empty to falls back to MAIL_TO.
// Returns the recipient actually used.
func (s *OrderFormService) EmailOrderForm(ctx context.Context, orderID, to string) (string, error) {
	if s.deps.Mailer == nil {
		return "", ErrMailDisabled
	}
	to = strings.TrimSpace(to)
	if to == "" {
		to = s.settings.DefaultTo
	}
	if to == "" {
		return "", ErrNoRecipient
	}

	doc, err := s.BuildDocument(ctx, orderID)
	if err != nil {
		return "", err
	}
	pdf, err := s.RenderDocument(ctx, doc, FormatPDF)
	if err != nil {
		return "", err
	}

	if err := s.deps.Mailer.SendOrderForm(ctx, to, doc.Header.OrderNo, pdf.Filename, pdf.Data); err != nil {
		return "", fmt.Errorf("failed to mail order form %s: %w", orderID, err)
	}
	return to, nil
}

// ArchiveOrderForm renders the PDF and uploads it to the archive folder
func (s *OrderFormService) ArchiveOrderForm(ctx context.Context, orderID string) (*models.ArchiveResponse, error) {
	if s.deps.Archive == nil {
		return nil, ErrArchiveDisabled
	}

	pdf, err := s.Render(ctx, orderID, FormatPDF)
	if err != nil {
		return nil, err
	}

	fileID, link, err := s.deps.Archive.Upload(ctx, pdf.Filename, pdf.ContentType, pdf.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to archive order form %s: %w", orderID, err)
	}

	s.logger.WithFields(logrus.Fields{"order_id": orderID, "file_id": fileID}).Info("📦 ArchiveOrderForm: uploaded")
	return &models.ArchiveResponse{FileID: fileID, Filename: pdf.Filename, Link: link}, nil
}

// pageNumbers returns the page numbers of a page map in ascending order
func pageNumbers(pages map[int][]byte) []int {
	numbers := make([]int, 0, len(pages))
	for n := range pages {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}
