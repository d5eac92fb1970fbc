package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/angelofallars/sharebill/internal/invoice"
)

// InvoiceRequest is an invoice posted either as a JSON body or, from the
// page form, as JSON text in the "invoice" form field.
type InvoiceRequest struct {
	Raw string `form:"invoice" json:"-"`

	*invoice.Data `form:"-"`
}

// InvoiceRequest satisfies [render.Binder]
func (ir *InvoiceRequest) Bind(r *http.Request) error {
	if ir.Raw != "" {
		ir.Data = &invoice.Data{}
		if err := json.Unmarshal([]byte(ir.Raw), ir.Data); err != nil {
			return fmt.Errorf("Invoice is not valid JSON: %w", err)
		}
	}

	if ir.Data == nil {
		return errors.New("Missing invoice")
	}

	d := ir.Data
	if !d.Language.Valid() {
		return fmt.Errorf("Unsupported language: %q", d.Language)
	}
	if !d.Currency.Valid() {
		return fmt.Errorf("Unsupported currency: %q", d.Currency)
	}
	if !d.DateFormat.Valid() {
		return fmt.Errorf("Unsupported date format: %q", d.DateFormat)
	}
	if !d.Template.Valid() {
		return fmt.Errorf("Unsupported template: %q", d.Template)
	}

	return nil
}

// ItemRequest is an invoice plus a line item to append to it. Numbers
// arrive as typed, so "2 h" is an amount of 2 and "23%" a 23% rate.
type ItemRequest struct {
	InvoiceRequest

	Name     string `form:"item_name" json:"itemName"`
	Unit     string `form:"item_unit" json:"itemUnit"`
	Amount   string `form:"item_amount" json:"itemAmount"`
	NetPrice string `form:"item_net_price" json:"itemNetPrice"`
	VAT      string `form:"item_vat" json:"itemVat"`
}

// ItemRequest satisfies [render.Binder]
func (ir *ItemRequest) Bind(r *http.Request) error {
	if err := ir.InvoiceRequest.Bind(r); err != nil {
		return err
	}
	if strings.TrimSpace(ir.Name) == "" {
		return errors.New("Item name is required")
	}
	return nil
}

// Item builds the line item from the request, filling in defaults for the
// fields left empty.
func (ir *ItemRequest) Item() invoice.Item {
	it := invoice.DefaultItem()
	it.Name = strings.TrimSpace(ir.Name)
	if ir.Unit != "" {
		it.Unit = ir.Unit
	}
	if ir.Amount != "" {
		it.Amount = invoice.ParseAmount(ir.Amount)
	}
	it.NetPrice = invoice.ParseAmount(ir.NetPrice)
	if ir.VAT != "" {
		it.VAT = invoice.ParseVAT(ir.VAT)
	}
	return it
}
