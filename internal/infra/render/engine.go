package render

import (
	"bytes"
	"embed"
	"fmt"
	stdhtml "html"
	"html/template"
	"regexp"
	"strings"
	"time"

	"orderalert/internal/domain/dispatch"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var _ dispatch.Renderer = (*Engine)(nil)

//go:embed templates/*.html
var templateFS embed.FS

// placeholder renders in place of optional scalar fields the payload omits.
const placeholder = "-"

// idPrinter formats integers with Indonesian digit grouping (150000 → "150.000").
var idPrinter = message.NewPrinter(language.Indonesian)

// Engine renders order notifications using Go's html/template package. The
// plain-text fallback is derived from the rendered HTML, so both bodies
// carry the same facts by construction.
type Engine struct {
	templates *template.Template

	// Now supplies the wall clock used when the record carries no
	// timestamp. Overridable in tests; defaults to time.Now.
	Now func() time.Time
}

// NewEngine creates a new template engine from the embedded templates.
func NewEngine() (*Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Engine{templates: tmpl, Now: time.Now}, nil
}

// orderView is the flattened, display-ready projection of an OrderRecord.
type orderView struct {
	InvoiceNumber string
	FullName      string
	Email         string
	PhoneNumber   string
	Address       string
	ProductName   string
	SKU           string
	Quantity      string
	UnitPrice     string
	Total         string
	PaymentMethod string
	Status        string
	Courier       string
	Timestamp     string
	Notes         string
	Dropshipper   string
	Affiliate     string
}

// Render produces a subject line, HTML body, and plain-text fallback for
// the given order record.
func (e *Engine) Render(rec *dispatch.OrderRecord) (subject, html, text string, err error) {
	view := e.buildView(rec)

	subject = "Pemberitahuan Pesanan " + view.InvoiceNumber
	if rec.FullName.String() != "" {
		subject += " - " + rec.FullName.String()
	}

	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, "order.html", view); err != nil {
		return "", "", "", fmt.Errorf("executing order template: %w", err)
	}
	html = buf.String()

	text = stripHTML(html)

	return subject, html, text, nil
}

func (e *Engine) buildView(rec *dispatch.OrderRecord) orderView {
	timestamp := rec.Timestamp.String()
	if timestamp == "" {
		// Supplier-provided timestamps pass through verbatim; only the
		// substitute is formatted here.
		timestamp = e.Now().Format("02/01/2006 15.04")
	}

	unitPrice := placeholder
	if rec.UnitPrice.String() != "" {
		unitPrice = rupiah(rec.UnitPrice)
	}

	return orderView{
		InvoiceNumber: display(rec.InvoiceNumber),
		FullName:      display(rec.FullName),
		Email:         display(rec.Email),
		PhoneNumber:   display(rec.PhoneNumber),
		Address:       addressLine(rec.Address, rec.City),
		ProductName:   display(rec.ProductName),
		SKU:           display(rec.SKU),
		Quantity:      display(rec.Quantity),
		UnitPrice:     unitPrice,
		Total:         rupiah(rec.TotalPayment),
		PaymentMethod: display(rec.PaymentMethod),
		Status:        display(rec.Status),
		Courier:       display(rec.Courier),
		Timestamp:     timestamp,
		Notes:         rec.Notes.String(),
		Dropshipper:   rec.Dropshipper.String(),
		Affiliate:     rec.Affiliate.String(),
	}
}

// display returns the field's value or the placeholder when absent.
func display(f dispatch.Field) string {
	if f.String() == "" {
		return placeholder
	}
	return f.String()
}

// rupiah formats a currency field as a grouped integer with the Rp prefix.
// Non-numeric and missing amounts coerce to zero; this never fails.
func rupiah(f dispatch.Field) string {
	return idPrinter.Sprintf("Rp%d", f.Amount())
}

// addressLine joins street and city the way the storefront displays them.
func addressLine(address, city dispatch.Field) string {
	switch {
	case address.String() != "" && city.String() != "":
		return address.String() + ", " + city.String()
	case address.String() != "":
		return address.String()
	case city.String() != "":
		return city.String()
	default:
		return placeholder
	}
}

var (
	lineBreakRe = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|h[1-6]|tr|table|ul|ol|li|div)>`)
	tagRe       = regexp.MustCompile(`<[^>]*>`)
	hspaceRe    = regexp.MustCompile(`[ \t]+`)
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
)

// stripHTML converts the rendered HTML into a plain-text rendition: block
// boundaries become line breaks, remaining tags are removed, and entities
// are decoded.
func stripHTML(s string) string {
	text := lineBreakRe.ReplaceAllString(s, "\n")
	text = tagRe.ReplaceAllString(text, "")
	text = stdhtml.UnescapeString(text)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(hspaceRe.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
