package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// MailerInterface sends an order form to a recipient
type MailerInterface interface {
	SendOrderForm(ctx context.Context, to, orderNo, filename string, pdf []byte) error
}

// SendGridMailer implements MailerInterface
type SendGridMailer struct {
	apiKey   string
	from     string
	fromName string
	logger   *logrus.Entry
}

// NewSendGridMailer creates a SendGridMailer; fromName is usually the company name
func NewSendGridMailer(apiKey, from, fromName string, logger *logrus.Entry) *SendGridMailer {
	return &SendGridMailer{apiKey: apiKey, from: from, fromName: fromName, logger: logger}
}

var _ MailerInterface = (*SendGridMailer)(nil)

// buildOrderFormMessage assembles the mail with the PDF attached
func buildOrderFormMessage(fromName, from, to, orderNo, filename string, pdf []byte) *mail.SGMailV3 {
	subject := fmt.Sprintf("Order Form %s", orderNo)
	body := fmt.Sprintf("Please find attached the order form for order %s.", orderNo)

	message := mail.NewSingleEmail(
		mail.NewEmail(fromName, from),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<p>%s</p>", body),
	)

	attachment := mail.NewAttachment()
	attachment.SetContent(base64.StdEncoding.EncodeToString(pdf))
	attachment.SetType("application/pdf")
	attachment.SetFilename(filename)
	attachment.SetDisposition("attachment")
	message.AddAttachment(attachment)
	return message
}

// SendOrderForm mails the PDF as an attachment
func (m *SendGridMailer) SendOrderForm(ctx context.Context, to, orderNo, filename string, pdf []byte) error {
	if m.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if m.from == "" {
		return fmt.Errorf("from address is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	message := buildOrderFormMessage(m.fromName, m.from, to, orderNo, filename, pdf)
	client := sendgrid.NewSendClient(m.apiKey)

	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		m.logger.WithFields(logrus.Fields{"status": response.StatusCode, "body": response.Body}).Error("❌ SendOrderForm: sendgrid rejected mail")
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	m.logger.WithFields(logrus.Fields{"status": response.StatusCode, "to": to, "order_no": orderNo}).Info("✉️  SendOrderForm: mail sent")
	return nil
}
