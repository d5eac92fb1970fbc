// Package pdf renders an invoice as an A4 PDF document.
package pdf

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/angelofallars/sharebill/internal/invoice"
)

const (
	margin    = 10.0
	pageWidth = 210.0
	bodyWidth = pageWidth - 2*margin
	lineH     = 5.0
)

type document struct {
	pdf  *gofpdf.Fpdf
	tr   func(string) string
	data *invoice.Data
}

// Render writes data as a PDF to w. Derived amounts are printed as stored.
func Render(w io.Writer, data *invoice.Data) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreator("sharebill", true)
	pdf.SetTitle(invoiceTitle(data), true)
	pdf.AddPage()

	doc := &document{
		pdf:  pdf,
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
		data: data,
	}

	doc.header()
	doc.parties()
	doc.items()
	if data.VatTableSummaryIsVisible {
		doc.vatSummary()
	}
	doc.payment()
	doc.signatures()

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("Rendering PDF failed: %w", err)
	}
	return pdf.Output(w)
}

func invoiceTitle(d *invoice.Data) string {
	if d.InvoiceNumberObject == nil {
		return "Invoice"
	}
	return strings.TrimSpace(d.InvoiceNumberObject.Label + " " + d.InvoiceNumberObject.Value)
}

func (d *document) text(w float64, s string, align string) {
	d.pdf.CellFormat(w, lineH, d.tr(s), "", 0, align, false, 0, "")
}

func (d *document) line(s string) {
	d.pdf.MultiCell(0, lineH, d.tr(s), "", "L", false)
}

func (d *document) header() {
	data := d.data

	if logo := data.Logo; logo != "" {
		d.logo(logo)
	}

	d.pdf.SetFont("Helvetica", "B", 16)
	d.pdf.CellFormat(0, 10, d.tr(invoiceTitle(data)), "", 1, "L", false, 0, "")

	d.pdf.SetFont("Helvetica", "", 9)
	d.line("Date of issue: " + invoice.FormatDate(data.DateOfIssue, data.DateFormat))
	d.line("Date of sales/service: " + invoice.FormatDate(data.DateOfService, data.DateFormat))
	if data.InvoiceTypeFieldIsVisible && data.InvoiceType != "" {
		d.line("Invoice type: " + data.InvoiceType)
	}
	d.pdf.Ln(4)
}

// logo draws a data URI image in the top right corner. Remote URLs and
// unsupported formats are skipped.
func (d *document) logo(uri string) {
	rest, isData := strings.CutPrefix(uri, "data:")
	meta, payload, ok := strings.Cut(rest, ",")
	if !isData || !ok || !strings.HasSuffix(meta, ";base64") {
		return
	}

	var imageType string
	switch strings.TrimSuffix(meta, ";base64") {
	case "image/png":
		imageType = "PNG"
	case "image/jpeg", "image/jpg":
		imageType = "JPG"
	default:
		return
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	d.pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(raw))
	if d.pdf.Err() {
		// A broken image must not spoil the invoice.
		d.pdf.ClearError()
		return
	}
	d.pdf.ImageOptions("logo", pageWidth-margin-40, margin, 40, 0, false, opts, 0, "")
}

func (d *document) parties() {
	s, b := d.data.Seller, d.data.Buyer
	half := bodyWidth / 2

	seller := []string{s.Name, s.Address}
	if s.VatNoFieldIsVisible && s.VatNo != "" {
		seller = append(seller, s.VatNoLabelText+": "+s.VatNo)
	}
	if s.Email != "" {
		seller = append(seller, "e-mail: "+s.Email)
	}
	if s.AccountNumberFieldIsVisible && s.AccountNumber != "" {
		seller = append(seller, "Account number: "+s.AccountNumber)
	}
	if s.SwiftBicFieldIsVisible && s.SwiftBic != "" {
		seller = append(seller, "SWIFT/BIC: "+s.SwiftBic)
	}
	if s.NotesFieldIsVisible && s.Notes != "" {
		seller = append(seller, s.Notes)
	}

	buyer := []string{b.Name, b.Address}
	if b.VatNoFieldIsVisible && b.VatNo != "" {
		buyer = append(buyer, b.VatNoLabelText+": "+b.VatNo)
	}
	if b.Email != "" {
		buyer = append(buyer, "e-mail: "+b.Email)
	}
	if b.NotesFieldIsVisible && b.Notes != "" {
		buyer = append(buyer, b.Notes)
	}

	d.pdf.SetFont("Helvetica", "B", 10)
	d.text(half, "Seller", "L")
	d.text(half, "Buyer", "L")
	d.pdf.Ln(lineH + 1)

	d.pdf.SetFont("Helvetica", "", 9)
	for i := 0; i < max(len(seller), len(buyer)); i++ {
		d.text(half, at(seller, i), "L")
		d.text(half, at(buyer, i), "L")
		d.pdf.Ln(lineH)
	}
	d.pdf.Ln(4)
}

func at(lines []string, i int) string {
	if i < len(lines) {
		return lines[i]
	}
	return ""
}

// column is one column of the items table. weight sets its share of the
// table width.
type column struct {
	header string
	weight float64
	align  string
	value  func(n int, it invoice.Item) string
}

// columns lists the item table columns the invoice shows, in order.
func columns(data *invoice.Data) []column {
	var first invoice.Item
	if len(data.Items) > 0 {
		first = data.Items[0]
	}
	num := invoice.FormatNumber
	tax := data.TaxLabelText
	if tax == "" {
		tax = "VAT"
	}

	cols := []column{}
	add := func(visible bool, c column) {
		if visible {
			cols = append(cols, c)
		}
	}

	add(first.InvoiceItemNumberIsVisible, column{"No.", 0.5, "C", func(n int, _ invoice.Item) string { return strconv.Itoa(n) }})
	add(first.NameFieldIsVisible, column{"Name", 3, "L", func(_ int, it invoice.Item) string { return it.Name }})
	add(first.TypeOfGTUFieldIsVisible, column{"GTU", 0.7, "C", func(_ int, it invoice.Item) string { return it.TypeOfGTU }})
	add(first.AmountFieldIsVisible, column{"Amount", 0.8, "R", func(_ int, it invoice.Item) string {
		return strconv.FormatFloat(it.Amount, 'f', -1, 64)
	}})
	add(first.UnitFieldIsVisible, column{"Unit", 0.7, "C", func(_ int, it invoice.Item) string { return it.Unit }})
	add(first.NetPriceFieldIsVisible, column{"Net price", 1.2, "R", func(_ int, it invoice.Item) string { return num(it.NetPrice) }})
	add(first.VatFieldIsVisible, column{tax + " rate", 0.8, "C", func(_ int, it invoice.Item) string { return vatLabel(it.VAT) }})
	add(first.NetAmountFieldIsVisible, column{"Net amount", 1.2, "R", func(_ int, it invoice.Item) string { return num(it.NetAmount) }})
	add(first.VatAmountFieldIsVisible, column{tax + " amount", 1.2, "R", func(_ int, it invoice.Item) string { return num(it.VatAmount) }})
	add(first.PreTaxAmountFieldIsVisible, column{"Pre-tax amount", 1.3, "R", func(_ int, it invoice.Item) string { return num(it.PreTaxAmount) }})

	for _, cc := range data.CustomColumns {
		id := cc.ID
		add(cc.Visible, column{cc.Header, 1, "L", func(_ int, it invoice.Item) string { return it.CustomFields[id] }})
	}

	return cols
}

func vatLabel(v invoice.VAT) string {
	if v.IsNumeric() {
		return v.String() + "%"
	}
	return v.Code()
}

func (d *document) items() {
	cols := columns(d.data)
	if len(cols) == 0 {
		return
	}

	var total float64
	for _, c := range cols {
		total += c.weight
	}
	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = bodyWidth * c.weight / total
	}

	d.pdf.SetFont("Helvetica", "B", 8)
	d.pdf.SetFillColor(235, 235, 235)
	for i, c := range cols {
		d.pdf.CellFormat(widths[i], 7, d.tr(c.header), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Helvetica", "", 8)
	for n, it := range d.data.Items {
		for i, c := range cols {
			d.pdf.CellFormat(widths[i], 6, d.tr(c.value(n+1, it)), "1", 0, c.align, false, 0, "")
		}
		d.pdf.Ln(-1)

		if it.ItemNotesFieldIsVisible && it.ItemNotes != "" {
			d.pdf.SetFont("Helvetica", "I", 7)
			d.pdf.MultiCell(bodyWidth, 4, d.tr(it.ItemNotes), "LRB", "L", false)
			d.pdf.SetFont("Helvetica", "", 8)
		}
	}
	d.pdf.Ln(4)
}

func (d *document) vatSummary() {
	rows := d.data.VATSummary()
	if len(rows) == 0 {
		return
	}
	tax := d.data.TaxLabelText
	if tax == "" {
		tax = "VAT"
	}

	w := bodyWidth / 2 / 4
	d.pdf.SetX(margin + bodyWidth/2)
	d.pdf.SetFont("Helvetica", "B", 8)
	for _, h := range []string{tax + " rate", "Net", tax, "Pre-tax"} {
		d.pdf.CellFormat(w, 6, d.tr(h), "1", 0, "C", true, 0, "")
	}
	d.pdf.Ln(-1)

	d.pdf.SetFont("Helvetica", "", 8)
	for _, r := range rows {
		d.pdf.SetX(margin + bodyWidth/2)
		d.pdf.CellFormat(w, 6, d.tr(vatLabel(r.VAT)), "1", 0, "C", false, 0, "")
		d.pdf.CellFormat(w, 6, invoice.FormatNumber(r.NetAmount), "1", 0, "R", false, 0, "")
		d.pdf.CellFormat(w, 6, invoice.FormatNumber(r.VatAmount), "1", 0, "R", false, 0, "")
		d.pdf.CellFormat(w, 6, invoice.FormatNumber(r.PreTaxAmount), "1", 0, "R", false, 0, "")
		d.pdf.Ln(-1)
	}
	d.pdf.Ln(4)
}

func (d *document) payment() {
	data := d.data

	d.pdf.SetFont("Helvetica", "B", 11)
	d.line("To pay: " + invoice.FormatCurrency(data.Total, data.Currency))

	d.pdf.SetFont("Helvetica", "", 9)
	if data.PaymentMethodFieldIsVisible && data.PaymentMethod != "" {
		d.line("Payment method: " + data.PaymentMethod)
	}
	d.line("Payment due: " + invoice.FormatDate(data.PaymentDue, data.DateFormat))

	if data.Template == invoice.TemplateStripe && data.StripePayOnlineURL != "" {
		d.pdf.SetTextColor(40, 80, 200)
		d.pdf.CellFormat(0, lineH, "Pay online", "", 1, "L", false, 0, data.StripePayOnlineURL)
		d.pdf.SetTextColor(0, 0, 0)
	}

	if data.NotesFieldIsVisible && data.Notes != "" {
		d.pdf.Ln(2)
		d.line(data.Notes)
	}
	d.pdf.Ln(10)
}

func (d *document) signatures() {
	data := d.data
	if !data.PersonAuthorizedToReceiveFieldIsVisible && !data.PersonAuthorizedToIssueFieldIsVisible {
		return
	}

	half := bodyWidth / 2
	d.pdf.SetFont("Helvetica", "", 7)
	if data.PersonAuthorizedToReceiveFieldIsVisible {
		d.pdf.CellFormat(half-10, lineH, d.tr("Person authorized to receive"), "T", 0, "C", false, 0, "")
	} else {
		d.pdf.CellFormat(half-10, lineH, "", "", 0, "C", false, 0, "")
	}
	d.pdf.CellFormat(20, lineH, "", "", 0, "C", false, 0, "")
	if data.PersonAuthorizedToIssueFieldIsVisible {
		d.pdf.CellFormat(half-10, lineH, d.tr("Person authorized to issue"), "T", 0, "C", false, 0, "")
	}
	d.pdf.Ln(-1)
}
