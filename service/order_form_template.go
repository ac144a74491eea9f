package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"sales-pulse/config"
	"sales-pulse/ordermatrix"
)

//go:embed templates/order_form.html
var templateFS embed.FS

var orderFormTemplate = template.Must(
	template.New("order_form.html").
		Funcs(template.FuncMap{
			"upper": strings.ToUpper,
			"blank": blankZero,
		}).
		ParseFS(templateFS, "templates/order_form.html"),
)

func blankZero(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// RenderOrderFormHTML renders the printable order form.
// The template only lays out the descriptors; every number is computed upstream.
func RenderOrderFormHTML(company config.CompanyOptions, doc *ordermatrix.Document) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("document is nil")
	}

	templateData := struct {
		Company  config.CompanyOptions
		Document *ordermatrix.Document
	}{
		Company:  company,
		Document: doc,
	}

	var buf bytes.Buffer
	if err := orderFormTemplate.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}
