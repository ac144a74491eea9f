package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sales-pulse/config"
	"sales-pulse/logging"
	"sales-pulse/ordermatrix"
	"sales-pulse/service"
)

func newRenderCmd() *cobra.Command {
	var (
		envFile   string
		itemsPath string
		format    string
		output    string
		pageSize  int
		header    ordermatrix.Header
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an order form from a JSON file of line items",
		Example: `  sales-pulse render --items lines.json --order-no 1042 --contact "Ravi Textiles" --format pdf
  sales-pulse render --items lines.json --format json --output -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if !service.IsSupportedFormat(format) {
				return fmt.Errorf("invalid --format %q, valid formats: %s", format, strings.Join(service.Formats, ", "))
			}

			if _, err := config.LoadEnv(envFile); err != nil {
				return err
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			// stdout may carry the rendered file
			logger := logging.NewWithOutput(cfg.LogLevel, cmd.ErrOrStderr())

			data, err := os.ReadFile(itemsPath)
			if err != nil {
				return fmt.Errorf("failed to read items: %w", err)
			}

			svc := service.NewOrderFormService(service.OrderFormDeps{
				Renderer: service.NewChromeRenderer(cfg.OrderForm.ChromePath, cfg.OrderForm.PDFTimeout, logging.Component(logger, "chrome")),
			}, service.OrderFormSettings{
				Company:  cfg.Company,
				PageSize: cfg.OrderForm.PageSize,
			}, logging.Component(logger, "render"))

			doc, err := svc.BuildFromJSON(header, data, pageSize)
			if err != nil {
				return err
			}
			file, err := svc.RenderDocument(cmd.Context(), doc, format)
			if err != nil {
				return err
			}

			if output == "-" {
				_, err := cmd.OutOrStdout().Write(file.Data)
				return err
			}
			if output == "" {
				output = file.Filename
			} else if info, statErr := os.Stat(output); statErr == nil && info.IsDir() {
				output = filepath.Join(output, file.Filename)
			}
			if err := os.WriteFile(output, file.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			logger.Infof("✅ Wrote %s (%d pages, grand total %d)", output, len(doc.Pages), doc.GrandTotal)
			return nil
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Environment file loaded outside production")
	cmd.Flags().StringVar(&itemsPath, "items", "", "JSON file holding the list of line items (required)")
	cmd.Flags().StringVar(&format, "format", service.FormatPDF, "Output format: html, pdf, xlsx or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file or directory; - writes to stdout (default order_<no>.<format>)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "Rows per page (default ORDER_FORM_PAGE_SIZE)")
	cmd.Flags().StringVar(&header.OrderNo, "order-no", "", "Order number")
	cmd.Flags().StringVar(&header.Date, "date", "", "Order date as printed")
	cmd.Flags().StringVar(&header.Contact, "contact", "", "Party name")
	cmd.Flags().StringVar(&header.Address, "address", "", "Party address")
	cmd.Flags().StringVar(&header.Phone, "phone", "", "Party phone")
	cmd.Flags().StringVar(&header.CreatedBy, "created-by", "", "User who prepared the order")
	cmd.Flags().StringVar(&header.Remarks, "remarks", "", "Remarks printed on the last page")
	_ = cmd.MarkFlagRequired("items")
	return cmd
}
