package ticket

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/fekuna/omnipos-terminal/config"
	"github.com/fekuna/omnipos-terminal/internal/model"
)

// ticketTemplate is the standalone HTML document offered for download. The
// layout mimics a thermal ticket: fixed width, monospace, centered header.
const ticketTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Ticket #{{.Sale.ID}}</title>
<style>
body { font-family: 'Courier New', monospace; font-size: {{.FontSize}}; }
.ticket { width: {{.WidthPx}}; margin: 0 auto; }
.center { text-align: center; }
.line { border-top: 1px dashed #000; margin: 6px 0; }
table { width: 100%; border-collapse: collapse; }
td.amount { text-align: right; }
.total { font-weight: bold; }
</style>
</head>
<body>
<div class="ticket">
  <div class="center">
    <strong>{{.Business.Name}}</strong><br>
    {{if .Business.Address}}{{.Business.Address}}<br>{{end}}
    {{if .Business.TaxID}}Tax ID: {{.Business.TaxID}}<br>{{end}}
    {{if .Business.Phone}}Tel: {{.Business.Phone}}<br>{{end}}
  </div>
  <div class="line"></div>
  Ticket #{{.Sale.ID}}<br>
  {{.Sale.CreatedAt.Format "02/01/2006 15:04"}}<br>
  <div class="line"></div>
  <table>
  {{range .Sale.Items}}
    <tr><td>{{printf "%g" .Quantity}} x {{.Name}}</td><td class="amount">{{printf "%.2f" .Subtotal}}</td></tr>
  {{end}}
  </table>
  <div class="line"></div>
  <table>
    <tr><td>Subtotal</td><td class="amount">{{printf "%.2f" .Sale.Subtotal}}</td></tr>
    {{if gt .Sale.Discount 0.0}}<tr><td>Discount</td><td class="amount">-{{printf "%.2f" .Sale.Discount}}</td></tr>{{end}}
    <tr class="total"><td>TOTAL</td><td class="amount">{{printf "%.2f" .Sale.Total}}</td></tr>
  </table>
  <div class="line"></div>
  Payment: {{.PaymentLabel}}<br>
  <div class="center">{{.Business.Footer}}</div>
</div>
</body>
</html>
`

var compiledTicket = template.Must(template.New("ticket").Parse(ticketTemplate))

type ticketData struct {
	Sale         *model.Sale
	Business     config.BusinessConfig
	WidthPx      string
	FontSize     string
	PaymentLabel string
}

// RenderTicketHTML produces the standalone document representation of a
// ticket. Purely local; no network involved.
func RenderTicketHTML(sale *model.Sale, business config.BusinessConfig, cfg config.TicketConfig) (string, error) {
	widthPx := "300px"
	if cfg.PaperWidth == 58 {
		widthPx = "220px"
	}
	fontSize := "12px"
	switch cfg.FontSize {
	case "small":
		fontSize = "10px"
	case "large":
		fontSize = "14px"
	}

	var sb strings.Builder
	err := compiledTicket.Execute(&sb, &ticketData{
		Sale:         sale,
		Business:     business,
		WidthPx:      widthPx,
		FontSize:     fontSize,
		PaymentLabel: model.PaymentMethodLabel(sale.PaymentMethod),
	})
	if err != nil {
		return "", fmt.Errorf("render ticket: %w", err)
	}
	return sb.String(), nil
}

// DownloadTicket renders the sale's ticket and saves it as a local HTML
// file named with the sale id and a timestamp. Returns the file path.
func (p *Printer) DownloadTicket(sale *model.Sale, business config.BusinessConfig, cfg config.TicketConfig, dir string) (string, error) {
	html, err := RenderTicketHTML(sale, business, cfg)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("ticket-%s-%d.html", sale.ID, p.now().UnixMilli())
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("save ticket: %w", err)
	}
	return path, nil
}
