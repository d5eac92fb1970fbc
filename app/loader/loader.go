// Package loader resolves the invoice a request works on and keeps it in
// the request context.
package loader

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/render"

	"github.com/angelofallars/sharebill/app/event"
	"github.com/angelofallars/sharebill/app/header"
	"github.com/angelofallars/sharebill/internal/invoice"
	"github.com/angelofallars/sharebill/internal/service"
)

type Loader struct {
	svc       service.Invoice
	publicURL string
}

func New(svc service.Invoice) *Loader {
	return &Loader{svc: svc}
}

// WithPublicURL makes page URLs start with publicURL instead of the
// scheme and host of the request.
func (l *Loader) WithPublicURL(publicURL string) *Loader {
	l.publicURL = strings.TrimSuffix(publicURL, "/")
	return l
}

// Resolve loads the invoice for the requested page: from its share link,
// else from the local store, else defaults.
func (l *Loader) Resolve(f http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, source := l.svc.Load(r.Context(), l.RequestURL(r))

		r = r.WithContext(context.WithValue(r.Context(), loadedKey,
			&Loaded{Data: data, Source: source},
		))

		f(w, r)
	}
}

// RequireInvoice decodes the invoice posted in the request body. A body
// that is not an invoice is answered with an error message and the
// handler is not called.
func (l *Loader) RequireInvoice(f http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &InvoiceRequest{}
		if err := render.Bind(r, req); err != nil {
			Fail(w, r, http.StatusBadRequest, err)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), loadedKey,
			&Loaded{Data: req.Data, Source: SourceRequest},
		))

		f(w, r)
	}
}

// Fail answers an htmx request with an error message event and no swap,
// and any other request with a JSON error body.
func Fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	if r.Header.Get(header.HXRequest) != "true" {
		render.Status(r, code)
		render.JSON(w, r, errorResponse{Error: err.Error()})
		return
	}

	_ = htmx.NewResponse().
		StatusCode(code).
		Reswap(htmx.SwapNone).
		AddTrigger(event.TriggerSetErrMessage(err.Error())).
		Write(w)
}

type errorResponse struct {
	Error string `json:"error"`
}

func GetInvoice(c context.Context) (*Loaded, error) {
	loaded, ok := c.Value(loadedKey).(*Loaded)
	if !ok {
		return nil, errors.New("Invoice not found")
	}
	return loaded, nil
}

type Loaded struct {
	Data   *invoice.Data
	Source service.Source
}

// SourceRequest marks an invoice posted by the client.
const SourceRequest service.Source = "request"

// RequestURL is the absolute URL of the page the request is for.
func (l *Loader) RequestURL(r *http.Request) string {
	return l.base(r) + r.URL.RequestURI()
}

// PageURL is the URL of the page that sent an htmx request, falling back
// to the site root.
func (l *Loader) PageURL(r *http.Request) string {
	if current := r.Header.Get(header.HXCurrentURL); current != "" {
		return current
	}
	return l.base(r) + "/"
}

func (l *Loader) base(r *http.Request) string {
	if l.publicURL != "" {
		return l.publicURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get(header.ForwardedProto); proto == "http" || proto == "https" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

type key struct{}

var loadedKey = key{}
