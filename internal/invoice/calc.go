package invoice

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ErrNotFinite is returned when an amount, or a value derived from it,
// does not fit in a float64.
var ErrNotFinite = errors.New("Amounts are too large to calculate.")

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return false
		}
	}
	return true
}

// Recalculate derives NetAmount, VatAmount and PreTaxAmount from Amount,
// NetPrice and VAT. A non-numeric VAT code yields no VAT amount. On error
// the item is left unchanged.
func (it *Item) Recalculate() error {
	if !finite(it.Amount, it.NetPrice, it.VAT.Rate()) {
		return ErrNotFinite
	}

	net := decimal.NewFromFloat(it.Amount).Mul(decimal.NewFromFloat(it.NetPrice))

	vat := decimal.Zero
	if it.VAT.IsNumeric() {
		vat = net.Mul(decimal.NewFromFloat(it.VAT.Rate())).Div(hundred)
	}

	netAmount := net.InexactFloat64()
	vatAmount := vat.InexactFloat64()
	preTaxAmount := net.Add(vat).InexactFloat64()
	if !finite(netAmount, vatAmount, preTaxAmount) {
		return ErrNotFinite
	}

	it.NetAmount = netAmount
	it.VatAmount = vatAmount
	it.PreTaxAmount = preTaxAmount
	return nil
}

// Recalculate recomputes every item and the invoice total. On error d is
// left unchanged.
func (d *Data) Recalculate() error {
	items := slices.Clone(d.Items)
	total := decimal.Zero
	for i := range items {
		if err := items[i].Recalculate(); err != nil {
			return fmt.Errorf("Item %d: %w", i+1, err)
		}
		total = total.Add(decimal.NewFromFloat(items[i].PreTaxAmount))
	}

	t := total.InexactFloat64()
	if !finite(t) {
		return ErrNotFinite
	}

	d.Items = items
	d.Total = t
	return nil
}

// Summary is one row of the VAT summary table: totals per VAT rate or
// code, in order of first appearance.
type Summary struct {
	VAT          VAT
	NetAmount    float64
	VatAmount    float64
	PreTaxAmount float64
}

// VATSummary groups the items' stored amounts by VAT. It does not
// recalculate.
func (d *Data) VATSummary() []Summary {
	type acc struct {
		vat              VAT
		net, tax, preTax decimal.Decimal
	}

	order := []string{}
	groups := map[string]*acc{}
	for _, it := range d.Items {
		key := it.VAT.String()
		if !it.VAT.IsNumeric() {
			key = "code:" + key
		}
		g, ok := groups[key]
		if !ok {
			g = &acc{vat: it.VAT}
			groups[key] = g
			order = append(order, key)
		}
		g.net = g.net.Add(decimal.NewFromFloat(it.NetAmount))
		g.tax = g.tax.Add(decimal.NewFromFloat(it.VatAmount))
		g.preTax = g.preTax.Add(decimal.NewFromFloat(it.PreTaxAmount))
	}

	rows := make([]Summary, 0, len(order))
	for _, key := range order {
		g := groups[key]
		rows = append(rows, Summary{
			VAT:          g.vat,
			NetAmount:    g.net.InexactFloat64(),
			VatAmount:    g.tax.InexactFloat64(),
			PreTaxAmount: g.preTax.InexactFloat64(),
		})
	}
	return rows
}
