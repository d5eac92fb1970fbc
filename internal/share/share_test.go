package share

import (
	"encoding/json"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/angelofallars/sharebill/internal/invoice"
	"github.com/angelofallars/sharebill/pkg/lzstring"
)

const page = "https://invoice.example.com/"

func compressed(t *testing.T, text string) string {
	t.Helper()
	payload, err := lzstring.CompressToEncodedURIComponent(text)
	if err != nil {
		t.Fatal(err)
	}
	return payload
}

func acmeInvoice() *invoice.Data {
	d := invoice.Default(time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC))
	d.Seller.Name = "Acme Corp"
	d.Seller.VatNo = "PL1234567890"
	d.Buyer.Name = "Client LLC"
	d.Items = []invoice.Item{{
		InvoiceItemNumberIsVisible: true,
		Name:                       "Consulting",
		NameFieldIsVisible:         true,
		Amount:                     10,
		AmountFieldIsVisible:       true,
		Unit:                       "h",
		NetPrice:                   150,
		VAT:                        invoice.NumericVAT(23),
		NetAmount:                  1500,
		VatAmount:                  345,
		PreTaxAmount:               1845,
	}}
	d.Total = 1845
	return d
}

func TestEndToEndScenario(t *testing.T) {
	original := acmeInvoice()

	shared, err := GenerateURL(page, original)
	if err != nil {
		t.Fatalf("GenerateURL: %v", err)
	}

	loaded, ok := LoadFromURL(shared)
	if !ok {
		t.Fatalf("LoadFromURL(%s) reported no data", shared)
	}

	if loaded.Seller.Name != "Acme Corp" {
		t.Errorf("seller name = %q", loaded.Seller.Name)
	}
	if len(loaded.Items) != 1 {
		t.Fatalf("len(items) = %d", len(loaded.Items))
	}
	if !reflect.DeepEqual(loaded.Items[0], original.Items[0]) {
		t.Errorf("item = %+v, want %+v", loaded.Items[0], original.Items[0])
	}
	if loaded.Total != 1845 {
		t.Errorf("total = %v, want 1845", loaded.Total)
	}
	if !reflect.DeepEqual(loaded, original) {
		t.Errorf("loaded invoice differs from the original\n got: %+v\nwant: %+v", loaded, original)
	}
}

func TestExemptionCodeIsNotRecalculated(t *testing.T) {
	original := acmeInvoice()
	original.Items[0].VAT = invoice.ExemptVAT("NP")
	// Deliberately inconsistent: the payload is trusted as rendered.
	original.Items[0].VatAmount = 12.34

	shared, err := GenerateURL(page, original)
	if err != nil {
		t.Fatalf("GenerateURL: %v", err)
	}
	loaded, ok := LoadFromURL(shared)
	if !ok {
		t.Fatal("no data")
	}

	vat := loaded.Items[0].VAT
	if vat.IsNumeric() || vat.Code() != "NP" {
		t.Errorf("vat = %#v, want code NP", vat)
	}
	if loaded.Items[0].VatAmount != 12.34 {
		t.Errorf("vatAmount = %v, want 12.34", loaded.Items[0].VatAmount)
	}
}

func TestRoundTripFullInvoice(t *testing.T) {
	d := acmeInvoice()
	d.Language = invoice.LanguagePL
	d.Currency = "PLN"
	d.DateFormat = invoice.DateFormatLongMonth
	d.Template = invoice.TemplateStripe
	d.StripePayOnlineURL = "https://buy.stripe.com/test?a=1&b=2"
	d.Notes = `Thanks! <b>"quoted"</b> & 🧾 zażółć`
	d.Seller.AccountNumber = "PL61 1090 1014 0000 0712 1981 2874"
	d.Seller.SwiftBic = "WBKPPLPP"
	d.CustomColumns = []invoice.CustomColumn{
		{ID: "c4f1a3", Header: "PO number", Visible: true},
		{ID: "9d2e77", Header: "Cost centre", Visible: false},
	}
	d.Items = append(d.Items, invoice.Item{
		Name:         "Licence",
		Amount:       0.5,
		NetPrice:     1999.99,
		VAT:          invoice.ExemptVAT("ZW"),
		NetAmount:    999.995,
		PreTaxAmount: 999.995,
		ItemNotes:    "annual",
		CustomFields: map[string]string{"c4f1a3": "PO-77", "9d2e77": ""},
	})
	d.Items[0].CustomFields = map[string]string{"c4f1a3": "PO-76"}
	d.Total = 2844.995

	payload, err := Encode(d)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	loaded, ok := LoadPayload(payload)
	if !ok {
		t.Fatal("no data")
	}
	if !reflect.DeepEqual(loaded, d) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", loaded, d)
	}
}

func TestPayloadUsesShortKeys(t *testing.T) {
	payload, err := Encode(acmeInvoice())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text, err := lzstring.DecompressFromEncodedURIComponent(payload)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if obj["a"] != "en" {
		t.Errorf(`language not stored under "a": %v`, obj)
	}
	if strings.Contains(text, `"seller"`) || strings.Contains(text, `"preTaxAmount"`) {
		t.Errorf("payload still contains long keys: %s", text)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	first, err := GenerateURL(page, acmeInvoice())
	if err != nil {
		t.Fatalf("GenerateURL: %v", err)
	}
	second, err := GenerateURL(first, acmeInvoice())
	if err != nil {
		t.Fatalf("GenerateURL: %v", err)
	}
	if first != second {
		t.Errorf("same invoice produced different links:\n%s\n%s", first, second)
	}
}

func TestGenerateURLPreservesTheRest(t *testing.T) {
	tests := []struct {
		name    string
		pageURL string
		prefix  string
		suffix  string
	}{
		{
			name:    "no query",
			pageURL: "https://example.com/app/invoice",
			prefix:  "https://example.com/app/invoice?data=",
		},
		{
			name:    "other parameters and fragment",
			pageURL: "https://example.com/app/invoice?lang=pl&utm_source=mail%20x#preview",
			prefix:  "https://example.com/app/invoice?lang=pl&utm_source=mail%20x&data=",
			suffix:  "#preview",
		},
		{
			name:    "existing data is replaced in place",
			pageURL: "http://localhost:3000/?a=1&data=OLD&b=2",
			prefix:  "http://localhost:3000/?a=1&data=",
			suffix:  "&b=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateURL(tt.pageURL, acmeInvoice())
			if err != nil {
				t.Fatalf("GenerateURL: %v", err)
			}
			if !strings.HasPrefix(got, tt.prefix) || !strings.HasSuffix(got, tt.suffix) {
				t.Errorf("GenerateURL() = %s, want %s...%s", got, tt.prefix, tt.suffix)
			}
			if strings.Contains(got, "OLD") {
				t.Errorf("old data parameter kept: %s", got)
			}

			u, err := url.Parse(got)
			if err != nil {
				t.Fatalf("result does not parse: %v", err)
			}
			if n := len(u.Query()[ParamName]); n != 1 {
				t.Errorf("result has %d data parameters", n)
			}
			if _, ok := LoadFromURL(got); !ok {
				t.Error("generated URL does not load")
			}
		})
	}
}

func TestGenerateURLRejectsBadPage(t *testing.T) {
	if _, err := GenerateURL("http://[::1", acmeInvoice()); err == nil {
		t.Error("expected an error for an unparseable page URL")
	}
}

func TestLoadFromURLWithoutData(t *testing.T) {
	for _, u := range []string{
		"https://example.com/",
		"https://example.com/?lang=pl",
		"https://example.com/?data=",
		"http://[::1",
	} {
		if data, ok := LoadFromURL(u); ok || data != nil {
			t.Errorf("LoadFromURL(%q) = %v, %v; want no data", u, data, ok)
		}
	}
}

func TestLoadFromURLCorrupted(t *testing.T) {
	valid, err := Encode(acmeInvoice())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tests := map[string]string{
		"not lz-string":    "this-is-not-compressed",
		"bad alphabet":     "%25%25%25!!",
		"truncated":        valid[:len(valid)/2],
		"compressed plain": compressed(t, "hello, not json"),
		"json array":       compressed(t, `[1,2,3]`),
		"json scalar":      compressed(t, `"text"`),
		"wrong shape":      compressed(t, `{"n":"not a number"}`),
		"trailing garbage": compressed(t, `{"a":"en"} {}`),
		"empty string":     compressed(t, ""),
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			if data, ok := LoadFromURL(page + "?data=" + payload); ok {
				t.Errorf("corrupted payload decoded to %+v", data)
			}
		})
	}
}

func TestDecodeKeepsUnknownKeys(t *testing.T) {
	payload, err := Encode(map[string]any{
		"language":    "de",
		"newerField":  map[string]any{"name": "x"},
		"currency":    "USD",
		"bigInvoices": json.Number("12345678901234567890"),
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	tree, ok := Decode(payload)
	if !ok {
		t.Fatal("no data")
	}
	want := map[string]any{
		"language":    "de",
		"newerField":  map[string]any{"name": "x"},
		"currency":    "USD",
		"bigInvoices": json.Number("12345678901234567890"),
	}
	if !reflect.DeepEqual(tree, want) {
		t.Errorf("Decode() = %#v, want %#v", tree, want)
	}

	// The typed loader ignores the unknown field but keeps the rest.
	data, ok := LoadPayload(payload)
	if !ok || data.Language != invoice.LanguageDE || data.Currency != "USD" {
		t.Errorf("LoadPayload() = %+v, %v", data, ok)
	}
}

func TestLoadPayloadFromHandBuiltLink(t *testing.T) {
	// A payload written with short keys only, the way any client using the
	// published key table would produce it.
	compact := `{"a":"en","c":"EUR","k":{"A":"Acme Corp"},"m":[{"A":"Consulting","N":10,"R":150,"T":23,"V":1500,"X":345,"Z":1845}],"n":1845}`
	payload := compressed(t, compact)

	data, ok := LoadFromURL(page + "?data=" + url.QueryEscape(payload))
	if !ok {
		t.Fatal("no data")
	}
	if data.Seller.Name != "Acme Corp" || data.Total != 1845 {
		t.Errorf("data = %+v", data)
	}
	it := data.Items[0]
	if it.Name != "Consulting" || it.VAT != invoice.NumericVAT(23) || it.PreTaxAmount != 1845 {
		t.Errorf("item = %+v", it)
	}
}

// A link produced by the browser client, keys in its insertion order.
const browserLink = "https://easyinvoicepdf.com/?template=default&data=N4IgjCBcIGoIIBUQBoQEMogA4BsUgCNMARYgOgFkKyBNOm-AY0wAUAZAOXwBNNuBTAGZoArjgAu%2BQVFAAPTADE0Aa3EiATmgAEAO3XRUAT0xgA9GAAMpgEwXrANhABfVAHNMthwFpLPgBz4ABYedvY%2BFl4AzBCoAFZQ4uoi-KjKMiDWmBwAkiz4cJiAgoAAz9yAXoBaAMoA9oLiAO5o6vxVWGRaAF5a1WQ9%2BABCmGLtLACW1YnK1fUAzsraYAA6OgCcERYWYFol5fgAwqxsYNaRACwArPYA7H5r%2BMQJSSkgAKKYBKMa1QAC-LJoAFtcPwyLh8ApDvYtpY1lpLGBTloNhskVdjnCVn4ttY-FdTvgAOKPZKoAASmAA6v0ANIsdh0-DZYnPSTQfAiZkuEB4SCgTLQBBoWRabIPVAFaB7HCjfg6cRaNhsPZaQB8G4A-3YGJi0FDQox0VUkqAekESJNemDQWG%2BjGlsvEZD%2BgOB%2BFZIHZnNQAKgAG1QBZmagAFIBkASkB7ao6GZicR69yoakhtiYfAUENcSCWVAAeRDeWgwVQAEUQwAlKBgc4WVCVENISAnVAAVRDMArVerIApIYAGlAzudUAwTU9UAAtCt%2BC4uP0h4Mjs1hl6yLDVdTymb8dQAN1GjH4%2BETC%2BeybZqDTx9QGesObzmELIBLl5A5cgKxWZEHIFrz-rIA4eTNq2Fbvqg3bPn2kCdsOprPBOmbvk4AC6qA6FAtinKcqDVCGWCYPUozNFoiRoFGghbvgACOIbqCE3hgGAXibC6JAdKMgCYgMoIixPwAKGAAhO6z7biG9SckAA"

func TestLoadFromBrowserLink(t *testing.T) {
	data, ok := LoadFromURL(browserLink)
	if !ok {
		t.Fatal("no data")
	}

	if data.Language != invoice.LanguagePL || data.DateFormat != invoice.DateFormatDayDot || data.Currency != "PLN" {
		t.Errorf("settings = %s %s %s", data.Language, data.DateFormat, data.Currency)
	}
	if n := data.InvoiceNumberObject; n == nil || n.Label != "Faktura nr:" || n.Value != "1/10/2026" {
		t.Errorf("invoice number = %+v", n)
	}
	if data.TaxLabelText != "VAT" || data.PaymentDue != "2026-11-01" || data.Total != 2044 {
		t.Errorf("data = %+v", data)
	}
	if data.Seller.Name != "Łódź Software Sp. z o.o." || data.Seller.Address != "ul. Piotrkowska 1\n90-001 Łódź" {
		t.Errorf("seller = %+v", data.Seller)
	}
	if data.Seller.VatNoLabelText != "NIP" || data.Seller.SwiftBic != "WBKPPLPP" {
		t.Errorf("seller = %+v", data.Seller)
	}
	if data.Buyer.Name != "Client LLC 🧾" {
		t.Errorf("buyer name = %q", data.Buyer.Name)
	}

	if len(data.Items) != 2 {
		t.Fatalf("len(items) = %d", len(data.Items))
	}
	first, second := data.Items[0], data.Items[1]
	if first.Name != "Consulting" || first.VAT != invoice.NumericVAT(23) || first.PreTaxAmount != 1845 {
		t.Errorf("first item = %+v", first)
	}
	if second.VAT != invoice.ExemptVAT("NP") || second.NetPrice != 99.5 || second.VatAmount != 0 || second.PreTaxAmount != 199 {
		t.Errorf("second item = %+v", second)
	}
}

func TestGenerateURLDropsEmptyQueryParts(t *testing.T) {
	got, err := GenerateURL("https://example.com/?a=1&&b=2&", acmeInvoice())
	if err != nil {
		t.Fatalf("GenerateURL: %v", err)
	}
	if strings.Contains(got, "&&") || !strings.HasPrefix(got, "https://example.com/?a=1&b=2&data=") {
		t.Errorf("GenerateURL() = %s", got)
	}
}
