package ticket_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fekuna/omnipos-terminal/config"
	"github.com/fekuna/omnipos-terminal/internal/api"
	"github.com/fekuna/omnipos-terminal/internal/model"
	"github.com/fekuna/omnipos-terminal/internal/ticket"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	wrote    [][]byte
	writeErr error
}

func (f *fakeTransport) Write(data []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.wrote = append(f.wrote, data)
	return nil
}

func printServer(t *testing.T, payload map[string]any) *api.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ticket/print-escpos", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "S1", body["saleId"])

		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": payload})
	}))
	t.Cleanup(srv.Close)
	return api.NewClient(&api.Config{BaseURL: srv.URL}, logger.NewNop())
}

func TestPrintTicketOverSerial(t *testing.T) {
	raw := []byte{0x1b, 0x40, 'T', 'O', 'T', 'A', 'L', ' ', '9', '.', '5', '0', '\n', 0x1d, 0x56, 0x00}
	client := printServer(t, map[string]any{
		"method":   "serial",
		"commands": base64.StdEncoding.EncodeToString(raw),
	})
	tr := &fakeTransport{}
	p := ticket.NewPrinter(client, tr, logger.NewNop())

	res, err := p.PrintTicket(context.Background(), "S1")
	require.NoError(t, err)

	assert.Equal(t, ticket.MethodSerial, res.Method)
	assert.Equal(t, len(raw), res.Bytes)
	require.Len(t, tr.wrote, 1)
	assert.Equal(t, raw, tr.wrote[0], "transport receives the decoded bytes untouched")
}

func TestPrintTicketDirectPrintShortCircuits(t *testing.T) {
	client := printServer(t, map[string]any{"method": "direct_print"})
	tr := &fakeTransport{}
	p := ticket.NewPrinter(client, tr, logger.NewNop())

	res, err := p.PrintTicket(context.Background(), "S1")
	require.NoError(t, err)

	assert.Equal(t, ticket.MethodDirectPrint, res.Method)
	assert.Empty(t, tr.wrote, "server-side printing must not touch the transport")
}

func TestPrintTicketNoCommands(t *testing.T) {
	client := printServer(t, map[string]any{"method": "serial", "commands": ""})
	p := ticket.NewPrinter(client, &fakeTransport{}, logger.NewNop())

	_, err := p.PrintTicket(context.Background(), "S1")
	assert.ErrorIs(t, err, ticket.ErrNoCommands)
}

func TestPrintTicketTransportFailure(t *testing.T) {
	client := printServer(t, map[string]any{
		"method":   "serial",
		"commands": base64.StdEncoding.EncodeToString([]byte("hi")),
	})
	tr := &fakeTransport{writeErr: errors.New("port busy")}
	p := ticket.NewPrinter(client, tr, logger.NewNop())

	_, err := p.PrintTicket(context.Background(), "S1")
	assert.ErrorContains(t, err, "port busy")
}

func TestPreviewTicketFiltersControlBytes(t *testing.T) {
	raw := []byte{0x1b, 0x40, 'C', 'A', 'F', 'E', '\n', 0x1b, 0x61, 0x01, '9', '.', '5', '0', 0x1d, 0x56, 0x00}
	client := printServer(t, map[string]any{
		"method":   "serial",
		"commands": base64.StdEncoding.EncodeToString(raw),
	})
	p := ticket.NewPrinter(client, &fakeTransport{}, logger.NewNop())

	var buf bytes.Buffer
	require.NoError(t, p.PreviewTicket(context.Background(), "S1", &buf))
	assert.Equal(t, "CAFE\n9.50", buf.String())
}

func TestRenderPreview(t *testing.T) {
	assert.Equal(t, "", ticket.RenderPreview(nil))
	assert.Equal(t, "ab\ncd", ticket.RenderPreview([]byte{0x00, 'a', 'b', '\n', 0x1b, 'c', 'd', 0x7f}))
}

func testSale() *model.Sale {
	return &model.Sale{
		ID:            "S1",
		PaymentMethod: "cash",
		Items: []model.SaleItem{
			{ProductID: "p1", Name: "Espresso", Quantity: 2, UnitPrice: 2.5, Subtotal: 5},
			{ProductID: "p2", Name: "Croissant", Quantity: 1, UnitPrice: 4.5, Subtotal: 4.5},
		},
		Subtotal:  9.5,
		Total:     9.5,
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestRenderTicketHTML(t *testing.T) {
	business := config.BusinessConfig{Name: "Cafe Central", Footer: "Thanks!"}

	html, err := ticket.RenderTicketHTML(testSale(), business, config.TicketConfig{PaperWidth: 58, FontSize: "small"})
	require.NoError(t, err)

	assert.Contains(t, html, "Cafe Central")
	assert.Contains(t, html, "Espresso")
	assert.Contains(t, html, "9.50")
	assert.Contains(t, html, "Payment: Cash")
	assert.Contains(t, html, "width: 220px")
	assert.Contains(t, html, "font-size: 10px")
	assert.NotContains(t, html, "Discount", "zero discount lines are omitted")

	wide, err := ticket.RenderTicketHTML(testSale(), business, config.TicketConfig{PaperWidth: 80, FontSize: "normal"})
	require.NoError(t, err)
	assert.Contains(t, wide, "width: 300px")
	assert.Contains(t, wide, "font-size: 12px")
}

func TestDownloadTicketWritesFile(t *testing.T) {
	client := printServer(t, nil) // unused by download
	p := ticket.NewPrinter(client, &fakeTransport{}, logger.NewNop())
	dir := t.TempDir()

	path, err := p.DownloadTicket(testSale(), config.BusinessConfig{Name: "Cafe"}, config.TicketConfig{PaperWidth: 80}, dir)
	require.NoError(t, err)

	base := strings.TrimSuffix(strings.TrimPrefix(path, dir+string(os.PathSeparator)), ".html")
	assert.True(t, strings.HasPrefix(base, "ticket-S1-"), "filename carries the sale id: %s", base)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Cafe")
	assert.Contains(t, string(content), "Ticket #S1")
}
