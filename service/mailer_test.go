package service

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildOrderFormMessage(t *testing.T) {
	pdf := []byte("%PDF-1.4 fake")
	msg := buildOrderFormMessage("ESSA GARMENTS", "orders@essa.example", "buyer@example.com", "1042", "order_1042.pdf", pdf)

	require.Equal(t, "Order Form 1042", msg.Subject)
	require.Equal(t, "orders@essa.example", msg.From.Address)
	require.Equal(t, "ESSA GARMENTS", msg.From.Name)
	require.Len(t, msg.Personalizations, 1)
	require.Equal(t, "buyer@example.com", msg.Personalizations[0].To[0].Address)

	require.Len(t, msg.Attachments, 1)
	att := msg.Attachments[0]
	require.Equal(t, "order_1042.pdf", att.Filename)
	require.Equal(t, "application/pdf", att.Type)
	require.Equal(t, "attachment", att.Disposition)

	decoded, err := base64.StdEncoding.DecodeString(att.Content)
	require.NoError(t, err)
	require.Equal(t, pdf, decoded)
}

func TestSendGridMailerRequiresConfiguration(t *testing.T) {
	ctx := context.Background()

	err := NewSendGridMailer("", "orders@essa.example", "ESSA", testLogger()).SendOrderForm(ctx, "a@b.c", "1", "f.pdf", nil)
	require.Error(t, err)

	err = NewSendGridMailer("key", "", "ESSA", testLogger()).SendOrderForm(ctx, "a@b.c", "1", "f.pdf", nil)
	require.Error(t, err)

	err = NewSendGridMailer("key", "orders@essa.example", "ESSA", testLogger()).SendOrderForm(ctx, "", "1", "f.pdf", nil)
	require.Error(t, err)
}
