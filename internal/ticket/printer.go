package ticket

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fekuna/omnipos-terminal/internal/api"
	"github.com/fekuna/omnipos-terminal/pkg/logger"
	"go.uber.org/zap"
)

// ErrNoCommands means the server neither printed the ticket itself nor
// returned a command stream to transmit locally.
var ErrNoCommands = errors.New("no print commands received from server")

// Transport delivers raw ESC/POS bytes to the printer hardware. The bytes
// are opaque here; decoding and interpretation belong to the printer.
type Transport interface {
	Write(data []byte) error
}

// PrintMethod reports where the ticket physically came out.
type PrintMethod string

const (
	// MethodDirectPrint means the server printed the ticket itself.
	MethodDirectPrint PrintMethod = "direct_print"
	// MethodSerial means this client transmitted the bytes over serial.
	MethodSerial PrintMethod = "serial"
)

type PrintResult struct {
	Method PrintMethod
	Bytes  int
}

// printPayload is the data block of the print endpoint's response.
type printPayload struct {
	Method   string `json:"method"`
	Commands string `json:"commands"` // Base64 ESC/POS stream
}

// Printer orchestrates one print request: ask the server for the ticket,
// short-circuit if it already printed, otherwise decode and transmit.
type Printer struct {
	client    *api.Client
	transport Transport
	logger    logger.ZapLogger
	now       func() time.Time
}

func NewPrinter(client *api.Client, transport Transport, log logger.ZapLogger) *Printer {
	return &Printer{
		client:    client,
		transport: transport,
		logger:    log,
		now:       time.Now,
	}
}

func (p *Printer) fetchCommands(ctx context.Context, saleID string) (*printPayload, error) {
	var payload printPayload
	body := map[string]string{"saleId": saleID}
	if err := p.client.Post(ctx, "/ticket/print-escpos", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// PrintTicket prints the ticket for one sale. Exactly one print job exists
// per call; nothing is persisted.
func (p *Printer) PrintTicket(ctx context.Context, saleID string) (*PrintResult, error) {
	payload, err := p.fetchCommands(ctx, saleID)
	if err != nil {
		return nil, err
	}

	if payload.Method == string(MethodDirectPrint) {
		p.logger.Info("ticket printed server-side", zap.String("sale_id", saleID))
		return &PrintResult{Method: MethodDirectPrint}, nil
	}

	if payload.Commands == "" {
		return nil, ErrNoCommands
	}

	data, err := base64.StdEncoding.DecodeString(payload.Commands)
	if err != nil {
		return nil, fmt.Errorf("decode print commands: %w", err)
	}

	if err := p.transport.Write(data); err != nil {
		return nil, err
	}
	return &PrintResult{Method: MethodSerial, Bytes: len(data)}, nil
}

// PreviewTicket writes a human-readable rendering of the command stream to
// w. Best effort: control bytes are dropped, only printable ASCII and line
// feeds survive. Not a bit-exact simulation of thermal output.
func (p *Printer) PreviewTicket(ctx context.Context, saleID string, w io.Writer) error {
	payload, err := p.fetchCommands(ctx, saleID)
	if err != nil {
		return err
	}
	if payload.Commands == "" {
		return ErrNoCommands
	}

	data, err := base64.StdEncoding.DecodeString(payload.Commands)
	if err != nil {
		return fmt.Errorf("decode print commands: %w", err)
	}

	if _, err := io.WriteString(w, RenderPreview(data)); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return nil
}

// RenderPreview filters an ESC/POS stream down to its printable text.
func RenderPreview(data []byte) string {
	out := make([]byte, 0, len(data))
	for _, b := range data {
		switch {
		case b >= 32 && b <= 126:
			out = append(out, b)
		case b == '\n':
			out = append(out, '\n')
		}
	}
	return string(out)
}
