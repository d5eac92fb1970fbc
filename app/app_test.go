package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/angelofallars/sharebill/app/component"
	"github.com/angelofallars/sharebill/app/header"
	"github.com/angelofallars/sharebill/internal/invoice"
	"github.com/angelofallars/sharebill/internal/keymap"
	"github.com/angelofallars/sharebill/internal/service"
	"github.com/angelofallars/sharebill/internal/share"
	"github.com/angelofallars/sharebill/internal/storage"
)

var fixedNow = time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *App {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewInvoice(storage.NewRepository(storage.NewMemory()), logger).
		WithClock(func() time.Time { return fixedNow })
	return New(logger, svc)
}

func acme() *invoice.Data {
	d := invoice.Default(fixedNow)
	d.Seller.Name = "Acme Corp"
	d.Buyer.Name = "Client LLC"
	d.Items[0].Name = "Consulting"
	d.Items[0].Amount = 10
	d.Items[0].Unit = "h"
	d.Items[0].NetPrice = 150
	return d
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	raw, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return strings.NewReader(string(raw))
}

func do(a *App, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.ServeHTTP(rec, req)
	return rec
}

var asJSON = map[string]string{"Content-Type": "application/json"}

func formInvoice(t *testing.T, d *invoice.Data) io.Reader {
	t.Helper()
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	return strings.NewReader(url.Values{"invoice": {string(raw)}}.Encode())
}

var asHTMXForm = map[string]string{
	"Content-Type":      "application/x-www-form-urlencoded",
	header.HXRequest:    "true",
	header.HXCurrentURL: "http://example.com/?lang=pl",
}

func TestPageHasSecurityHeaders(t *testing.T) {
	rec := do(newTestApp(t), http.MethodGet, "/", nil, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	csp := rec.Header().Get(header.ContentSecurityPolicy)
	if !strings.Contains(csp, "default-src 'none'") || !strings.Contains(csp, "img-src 'self' data:") {
		t.Errorf("CSP = %q", csp)
	}
	for h, want := range map[string]string{
		header.ContentTypeOptions: "nosniff",
		header.FrameOptions:       "DENY",
		header.ReferrerPolicy:     "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(h); got != want {
			t.Errorf("%s = %q, want %q", h, got, want)
		}
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "<!doctype html>") {
		t.Errorf("page starts with %.40q", body)
	}
	if !strings.Contains(body, `<textarea id="invoice"`) {
		t.Error("page has no invoice editor")
	}
	if !strings.Contains(body, `<script src="`+component.HTMXOrigin+`/`) {
		t.Error("htmx is not loaded from the origin the CSP allows")
	}
	if !strings.Contains(body, `<form id="item-form"`) || !strings.Contains(body, `<li class="empty">None yet.</li>`) {
		t.Error("page is missing the add-item form or the empty profile lists")
	}
}

func TestPageOpensSharedLink(t *testing.T) {
	a := newTestApp(t)

	link, err := share.GenerateURL("http://example.com/", acme())
	if err != nil {
		t.Fatal(err)
	}
	u, _ := url.Parse(link)

	rec := do(a, http.MethodGet, u.RequestURI(), nil, nil)
	body := rec.Body.String()
	if !strings.Contains(body, "Opened from a shared link.") {
		t.Error("page does not say it came from a link")
	}
	if !strings.Contains(body, "Acme Corp") {
		t.Error("linked seller not rendered")
	}

	rec = do(a, http.MethodGet, "/?data=broken!!", nil, nil)
	if rec.Code != http.StatusOK || strings.Contains(rec.Body.String(), "Opened from a shared link.") {
		t.Errorf("broken link: status %d, treated as a link", rec.Code)
	}
}

func TestShareJSON(t *testing.T) {
	a := newTestApp(t)

	rec := do(a, http.MethodPost, "/invoice/share", jsonBody(t, acme()), asJSON)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(resp.URL, "http://example.com/?data=") {
		t.Errorf("url = %s", resp.URL)
	}
	loaded, ok := share.LoadFromURL(resp.URL)
	if !ok || loaded.Seller.Name != "Acme Corp" {
		t.Errorf("share link does not carry the invoice: %+v", loaded)
	}
}

func TestShareHTMX(t *testing.T) {
	a := newTestApp(t)

	rec := do(a, http.MethodPost, "/invoice/share", formInvoice(t, acme()), asHTMXForm)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if !strings.Contains(rec.Body.String(), `value="http://example.com/?lang=pl&amp;data=`) {
		t.Errorf("share fragment = %s", rec.Body)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "share-link-created") {
		t.Errorf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
	}
}

func TestShareRefusesLogo(t *testing.T) {
	a := newTestApp(t)
	d := acme()
	d.Logo = "data:image/png;base64,AAAA"

	rec := do(a, http.MethodPost, "/invoice/share", jsonBody(t, d), asJSON)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), service.ErrLogoNotShareable.Error()) {
		t.Errorf("body = %s", rec.Body)
	}

	rec = do(a, http.MethodPost, "/invoice/share", formInvoice(t, d), asHTMXForm)
	trigger := rec.Header().Get("HX-Trigger")
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(trigger, "disable-share") || !strings.Contains(trigger, "Remove the logo first.") {
		t.Errorf("htmx: status %d, HX-Trigger %q", rec.Code, trigger)
	}
}

func TestRecalculate(t *testing.T) {
	a := newTestApp(t)

	rec := do(a, http.MethodPost, "/invoice/recalculate", jsonBody(t, acme()), asJSON)
	var got invoice.Data
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v (status %d)", err, rec.Code)
	}
	if got.Items[0].NetAmount != 1500 || got.Items[0].VatAmount != 345 || got.Total != 1845 {
		t.Errorf("item = %+v, total %v", got.Items[0], got.Total)
	}

	rec = do(a, http.MethodPost, "/invoice/recalculate", formInvoice(t, acme()), asHTMXForm)
	if !strings.Contains(rec.Body.String(), `<strong id="total">1 845.00 €</strong>`) {
		t.Errorf("editor fragment = %s", rec.Body)
	}
}

func TestRecalculateOverflow(t *testing.T) {
	a := newTestApp(t)
	d := acme()
	d.Items[0].Amount = 1e200
	d.Items[0].NetPrice = 1e200

	rec := do(a, http.MethodPost, "/invoice/recalculate", jsonBody(t, d), asJSON)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), invoice.ErrNotFinite.Error()) {
		t.Errorf("body = %s", rec.Body)
	}

	rec = do(a, http.MethodPost, "/invoice/recalculate", formInvoice(t, d), asHTMXForm)
	if trigger := rec.Header().Get("HX-Trigger"); !strings.Contains(trigger, "too large") {
		t.Errorf("htmx: status %d, HX-Trigger %q", rec.Code, trigger)
	}
}

func TestAddItem(t *testing.T) {
	a := newTestApp(t)

	raw, err := json.Marshal(acme())
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatal(err)
	}
	body["itemName"] = "Hosting"
	body["itemAmount"] = "2 months"
	body["itemUnit"] = "mo"
	body["itemNetPrice"] = "50"
	body["itemVat"] = "8%"

	rec := do(a, http.MethodPost, "/invoice/items", jsonBody(t, body), asJSON)
	var got invoice.Data
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v (status %d)", err, rec.Code)
	}
	if len(got.Items) != 2 {
		t.Fatalf("items = %+v", got.Items)
	}
	it := got.Items[1]
	if it.Name != "Hosting" || it.Amount != 2 || it.Unit != "mo" || it.VAT != invoice.NumericVAT(8) {
		t.Errorf("item = %+v", it)
	}
	if it.PreTaxAmount != 108 || got.Total != 1953 {
		t.Errorf("pre-tax %v, total %v", it.PreTaxAmount, got.Total)
	}

	form := url.Values{
		"invoice":        {string(raw)},
		"item_name":      {"Export service"},
		"item_net_price": {"100"},
		"item_vat":       {"NP"},
	}
	rec = do(a, http.MethodPost, "/invoice/items", strings.NewReader(form.Encode()), asHTMXForm)
	if !strings.Contains(rec.Body.String(), `<strong id="total">1 945.00 €</strong>`) {
		t.Errorf("editor fragment = %s", rec.Body)
	}
	if !strings.Contains(rec.Body.String(), "<td>Export service</td>") {
		t.Errorf("new item missing from preview")
	}
	for _, label := range []string{"<dd>English</dd>", "<dd>Euro</dd>", "<dd>Default Template</dd>"} {
		if !strings.Contains(rec.Body.String(), label) {
			t.Errorf("preview is missing %s", label)
		}
	}
}

func TestAddItemNeedsName(t *testing.T) {
	a := newTestApp(t)

	rec := do(a, http.MethodPost, "/invoice/items", formInvoice(t, acme()), asHTMXForm)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if trigger := rec.Header().Get("HX-Trigger"); !strings.Contains(trigger, "Item name is required") {
		t.Errorf("HX-Trigger = %q", trigger)
	}
}

func TestRejectsBadInvoice(t *testing.T) {
	a := newTestApp(t)

	bad := acme()
	bad.Currency = "XXX"

	tests := map[string]struct {
		body    io.Reader
		headers map[string]string
	}{
		"not json":        {strings.NewReader("{"), asJSON},
		"bad currency":    {jsonBody(t, bad), asJSON},
		"empty form":      {strings.NewReader(""), asHTMXForm},
		"bad form json":   {strings.NewReader("invoice=%7B"), asHTMXForm},
		"no content type": {jsonBody(t, acme()), nil},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := do(a, http.MethodPost, "/invoice/save", tt.body, tt.headers)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSaveThenReload(t *testing.T) {
	a := newTestApp(t)

	rec := do(a, http.MethodPost, "/invoice/save", jsonBody(t, acme()), asJSON)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("save status = %d", rec.Code)
	}

	rec = do(a, http.MethodGet, "/", nil, nil)
	if !strings.Contains(rec.Body.String(), "Acme Corp") {
		t.Error("saved invoice not loaded")
	}

	rec = do(a, http.MethodPost, "/invoice/reset", nil, nil)
	var reset invoice.Data
	if err := json.NewDecoder(rec.Body).Decode(&reset); err != nil {
		t.Fatal(err)
	}
	if reset.Seller.Name != "" || reset.DateOfIssue != "2026-10-18" {
		t.Errorf("reset = %+v", reset)
	}
}

func TestResetAll(t *testing.T) {
	a := newTestApp(t)

	do(a, http.MethodPost, "/sellers", jsonBody(t, acme()), asJSON)
	do(a, http.MethodPost, "/invoice/reset?all=true", nil, nil)

	rec := do(a, http.MethodGet, "/sellers", nil, nil)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Errorf("sellers after reset all = %s", rec.Body)
	}
}

func TestPDF(t *testing.T) {
	a := newTestApp(t)

	rec := do(a, http.MethodPost, "/invoice/pdf", formInvoice(t, acme()), map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get(header.ContentDisposition); cd != `attachment; filename="invoice-1-2024.pdf"` {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("body is not a PDF")
	}
}

func TestSellerProfiles(t *testing.T) {
	a := newTestApp(t)

	rec := do(a, http.MethodPost, "/sellers", jsonBody(t, acme()), asJSON)
	var sellers []invoice.SavedSeller
	if err := json.NewDecoder(rec.Body).Decode(&sellers); err != nil {
		t.Fatalf("decode: %v (status %d)", err, rec.Code)
	}
	if len(sellers) != 1 || sellers[0].Name != "Acme Corp" || sellers[0].ID == "" {
		t.Fatalf("sellers = %+v", sellers)
	}
	id := sellers[0].ID

	blank := invoice.Default(fixedNow)
	rec = do(a, http.MethodPost, "/sellers/"+id+"/apply", jsonBody(t, blank), asJSON)
	var applied invoice.Data
	if err := json.NewDecoder(rec.Body).Decode(&applied); err != nil {
		t.Fatal(err)
	}
	if applied.Seller.Name != "Acme Corp" {
		t.Errorf("applied seller = %+v", applied.Seller)
	}

	if rec := do(a, http.MethodPost, "/sellers", jsonBody(t, blank), asJSON); rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("nameless seller: status %d", rec.Code)
	}

	if rec := do(a, http.MethodDelete, "/sellers/"+id, nil, nil); rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}
	if rec := do(a, http.MethodDelete, "/sellers/"+id, nil, nil); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d", rec.Code)
	}
	if rec := do(a, http.MethodPost, "/sellers/"+id+"/apply", jsonBody(t, blank), asJSON); rec.Code != http.StatusNotFound {
		t.Errorf("apply deleted: status %d", rec.Code)
	}
}

func TestBuyerProfilesHTMX(t *testing.T) {
	a := newTestApp(t)

	rec := do(a, http.MethodPost, "/buyers", formInvoice(t, acme()), asHTMXForm)
	body := rec.Body.String()
	if !strings.Contains(body, `<section id="buyers">`) || !strings.Contains(body, "Client LLC") {
		t.Errorf("buyers fragment = %s", body)
	}
	if !strings.Contains(rec.Header().Get("HX-Trigger"), "profiles-changed") {
		t.Errorf("HX-Trigger = %q", rec.Header().Get("HX-Trigger"))
	}

	rec = do(a, http.MethodGet, "/buyers", nil, nil)
	var buyers []invoice.SavedBuyer
	if err := json.NewDecoder(rec.Body).Decode(&buyers); err != nil || len(buyers) != 1 {
		t.Errorf("buyers = %+v, %v", buyers, err)
	}
}

func TestKeymapArtifact(t *testing.T) {
	rec := do(newTestApp(t), http.MethodGet, "/keymap.json", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var artifact keymap.Artifact
	if err := json.NewDecoder(rec.Body).Decode(&artifact); err != nil {
		t.Fatal(err)
	}
	if artifact.Revision != keymap.Len() || artifact.Keys["language"] != "a" {
		t.Errorf("artifact = %+v", artifact)
	}
}

func TestStaticFiles(t *testing.T) {
	rec := do(newTestApp(t), http.MethodGet, "/static/app.js", nil, nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "set-err-message") {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestWithPublicURL(t *testing.T) {
	a := newTestApp(t).WithPublicURL("https://invoice.example.com/")

	rec := do(a, http.MethodPost, "/invoice/share", jsonBody(t, acme()), asJSON)
	var resp struct {
		URL string `json:"url"`
	}
	json.NewDecoder(rec.Body).Decode(&resp)
	if !strings.HasPrefix(resp.URL, "https://invoice.example.com/?data=") {
		t.Errorf("url = %s", resp.URL)
	}
}
